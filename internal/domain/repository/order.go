package repository

import (
	"context"

	"github.com/rvleeuwen/laadscan/internal/domain/model"
)

// OrderMutation adjusts an order inside a transaction. A non-nil returned
// MissingReport is appended in the same transaction as the order update.
type OrderMutation func(o *model.Order) (*model.MissingReport, error)

// OrderRepository describes persistence operations with order lines.
// An empty vehicle argument means "any vehicle" for lookups.
type OrderRepository interface {
	GetByLineNumber(ctx context.Context, lineNumber, vehicle string) (*model.Order, error)
	ListByVehicle(ctx context.Context, vehicle string) ([]model.Order, error)
	ListVehicles(ctx context.Context) ([]string, error)
	// Update loads the order under a row lock, applies fn and persists the
	// counters and completed flag atomically. The whole sequence runs in one
	// transaction; an error from fn rolls everything back.
	Update(ctx context.Context, lineNumber, vehicle string, fn OrderMutation) (*model.Order, error)
	// ReplaceVehicle swaps the full order set of a vehicle. It fails with
	// ErrInvalidState when the vehicle already has scan progress.
	ReplaceVehicle(ctx context.Context, vehicle string, orders []model.Order) (int, error)
}
