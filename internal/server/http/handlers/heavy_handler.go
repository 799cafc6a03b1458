package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/server/http/dto"
)

// HeavyHandler manages the heavy product name list endpoints.
type HeavyHandler struct {
	facade HeavyFacade
}

// NewHeavyHandler constructs HeavyHandler.
func NewHeavyHandler(facade HeavyFacade) *HeavyHandler {
	return &HeavyHandler{facade: facade}
}

// List handles GET /api/heavy-products.
func (h *HeavyHandler) List(c *gin.Context) {
	products, err := h.facade.HeavyProducts(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.HeavyProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, dto.HeavyProductResponse{ID: p.ID, Name: p.Name})
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/heavy-products.
func (h *HeavyHandler) Create(c *gin.Context) {
	var req dto.HeavyProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product, err := h.facade.AddHeavyProduct(c.Request.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidArgument):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.HeavyProductResponse{ID: product.ID, Name: product.Name})
}

// Delete handles DELETE /api/heavy-products/:id.
func (h *HeavyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RemoveHeavyProduct(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
