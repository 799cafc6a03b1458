package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/server/http/dto"
)

// ScanHandler manages the counter mutation endpoints.
type ScanHandler struct {
	facade ScanFacade
}

// NewScanHandler constructs ScanHandler.
func NewScanHandler(facade ScanFacade) *ScanHandler {
	return &ScanHandler{facade: facade}
}

// Process handles POST /api/scans.
func (h *ScanHandler) Process(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.ProcessScan(c.Request.Context(), req.LineNumber, req.Vehicle)
	if err != nil {
		writeScanError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScanResponse(result))
}

// Decrement handles POST /api/scans/decrement.
func (h *ScanHandler) Decrement(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.DecrementScan(c.Request.Context(), req.LineNumber, req.Vehicle)
	if err != nil {
		writeScanError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScanResponse(result))
}

// Missing handles POST /api/scans/missing.
func (h *ScanHandler) Missing(c *gin.Context) {
	var req dto.MissingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.ReportMissing(c.Request.Context(), CurrentUserID(c), req.LineNumber, req.Amount, req.Reason, req.Comments)
	if err != nil {
		writeScanError(c, err)
		return
	}
	c.JSON(http.StatusOK, toScanResponse(result))
}

func writeScanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrInvalidArgument), errors.Is(err, domainErrors.ErrOverflow):
		c.Status(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrCapacityExceeded), errors.Is(err, domainErrors.ErrConflict):
		c.Status(http.StatusConflict)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toScanResponse(r *model.ScanResult) dto.ScanResponse {
	return dto.ScanResponse{
		LineNumber:            r.LineNumber,
		Vehicle:               r.Vehicle,
		ScannedCount:          r.ScannedCount,
		ReportedMissing:       r.ReportedMissing,
		TargetQuantity:        r.TargetQuantity,
		OrderComplete:         r.OrderComplete,
		VehicleScannedCount:   r.VehicleScannedCount,
		VehicleTotalCount:     r.VehicleTotalCount,
		CustomerPhaseComplete: r.CustomerPhaseComplete,
		VehicleModeComplete:   r.VehicleModeComplete,
		VehicleComplete:       r.VehicleComplete,
	}
}
