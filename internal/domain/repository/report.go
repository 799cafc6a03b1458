package repository

import (
	"context"

	"github.com/rvleeuwen/laadscan/internal/domain/model"
)

// MissingReportRepository reads the append-only missing report log.
// Writes happen exclusively through OrderRepository.Update so that a report
// and the counter change it belongs to commit together.
type MissingReportRepository interface {
	ListByVehicle(ctx context.Context, vehicle string) ([]model.MissingReport, error)
}
