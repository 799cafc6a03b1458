package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/domain/repository"
)

// HeavyProductUseCase manages the configured heavy product name list.
type HeavyProductUseCase struct {
	heavy repository.HeavyProductRepository
}

// NewHeavyProductUseCase constructs HeavyProductUseCase.
func NewHeavyProductUseCase(heavy repository.HeavyProductRepository) *HeavyProductUseCase {
	return &HeavyProductUseCase{heavy: heavy}
}

// List returns all configured heavy product names.
func (u *HeavyProductUseCase) List(ctx context.Context) ([]model.HeavyProduct, error) {
	return u.heavy.List(ctx)
}

// Add registers a new heavy product name fragment.
func (u *HeavyProductUseCase) Add(ctx context.Context, name string) (*model.HeavyProduct, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.ErrInvalidArgument
	}
	return u.heavy.Create(ctx, name)
}

// Remove deletes a heavy product name by id.
func (u *HeavyProductUseCase) Remove(ctx context.Context, id int64) error {
	return u.heavy.Delete(ctx, id)
}
