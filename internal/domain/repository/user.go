package repository

import (
	"context"
	"time"

	"github.com/rvleeuwen/laadscan/internal/domain/model"
)

// UserRepository describes persistence operations for application accounts.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error
	GetByResetToken(ctx context.Context, token string) (*model.User, error)
	// UpdatePassword stores a new hash and clears any pending reset token.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}
