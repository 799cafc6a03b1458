package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/server/http/dto"
)

// VehicleHandler serves the vehicle boards and missing report views.
type VehicleHandler struct {
	facade BoardFacade
}

// NewVehicleHandler constructs VehicleHandler.
func NewVehicleHandler(facade BoardFacade) *VehicleHandler {
	return &VehicleHandler{facade: facade}
}

// List handles GET /api/vehicles.
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.facade.Vehicles(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(vehicles) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// Board handles GET /api/vehicles/:vehicle.
func (h *VehicleHandler) Board(c *gin.Context) {
	board, err := h.facade.VehicleBoard(c.Request.Context(), c.Param("vehicle"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidArgument):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.VehicleBoardResponse{
		Vehicle:      board.Vehicle,
		Heavy:        toOrderResponses(board.Heavy),
		Regular:      toOrderResponses(board.Regular),
		ScannedCount: board.ScannedCount,
		TotalCount:   board.TotalCount,
		Complete:     board.Complete,
	})
}

// MissingReports handles GET /api/vehicles/:vehicle/missing.
func (h *VehicleHandler) MissingReports(c *gin.Context) {
	reports, err := h.facade.MissingReports(c.Request.Context(), c.Param("vehicle"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidArgument):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	if len(reports) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.MissingReportResponse, 0, len(reports))
	for _, r := range reports {
		resp = append(resp, dto.MissingReportResponse{
			LineNumber:         r.LineNumber,
			ArticleDescription: r.ArticleDescription,
			Reason:             r.Reason,
			Amount:             r.Amount,
			Comments:           r.Comments,
			ReportedBy:         r.ReportedBy,
			ReportedAt:         r.ReportedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, dto.OrderResponse{
			OrderNo:            o.OrderNo,
			LineNumber:         o.LineNumber,
			CustomerName:       o.CustomerName,
			CustomerNumber:     o.CustomerNumber,
			ArticleDescription: o.ArticleDescription,
			Length:             o.Length,
			TargetQuantity:     o.TargetQuantity,
			ScannedCount:       o.ScannedCount,
			ReportedMissing:    o.ReportedMissing,
			Completed:          o.Completed,
			Sequence:           o.Sequence,
		})
	}
	return resp
}
