package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rvleeuwen/laadscan/internal/server/http/dto"
	"github.com/rvleeuwen/laadscan/internal/worker"
)

// ImportHandler accepts planning workbook uploads.
type ImportHandler struct {
	queue ImportQueue
}

// NewImportHandler constructs ImportHandler.
func NewImportHandler(queue ImportQueue) *ImportHandler {
	return &ImportHandler{queue: queue}
}

// Submit handles POST /api/imports with a multipart "file" field.
func (h *ImportHandler) Submit(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	file, err := header.Open()
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	id, err := h.queue.Submit(header.Filename, data)
	if err != nil {
		if errors.Is(err, worker.ErrQueueFull) {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusAccepted, dto.ImportSubmitResponse{ID: id})
}

// Status handles GET /api/imports/:id.
func (h *ImportHandler) Status(c *gin.Context) {
	status, ok := h.queue.Status(c.Param("id"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.ImportStatusResponse{
		ID:          status.ID,
		Filename:    status.Filename,
		State:       string(status.State),
		Inserted:    status.Inserted,
		Warnings:    status.Warnings,
		Error:       status.Error,
		SubmittedAt: status.SubmittedAt,
		FinishedAt:  status.FinishedAt,
	})
}
