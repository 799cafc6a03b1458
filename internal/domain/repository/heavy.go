package repository

import (
	"context"

	"github.com/rvleeuwen/laadscan/internal/domain/model"
)

// HeavyProductRepository manages the configured heavy product name list.
type HeavyProductRepository interface {
	Names(ctx context.Context) ([]string, error)
	List(ctx context.Context) ([]model.HeavyProduct, error)
	Create(ctx context.Context, name string) (*model.HeavyProduct, error)
	Delete(ctx context.Context, id int64) error
}
