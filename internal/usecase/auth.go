package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/domain/repository"
	pkgAuth "github.com/rvleeuwen/laadscan/internal/pkg/auth"
)

const resetTokenTTL = 2 * time.Hour

// ResetMailer delivers password reset tokens to users.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}

// AuthUseCase handles accounts, sessions and password resets.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	mail   ResetMailer
	logger *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, mail ResetMailer, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, mail: mail, logger: logger}
}

// CreateUser registers an account with a role. Admin-only at the HTTP layer.
func (u *AuthUseCase) CreateUser(ctx context.Context, login, password string, role model.Role) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" || !model.ValidRole(role) {
		return nil, domainErrors.ErrInvalidArgument
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	return u.users.Create(ctx, login, hash, role)
}

// Authenticate validates credentials and returns the user with a session token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID, usr.Role)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the user id and role from a session token.
func (u *AuthUseCase) ParseToken(token string) (int64, model.Role, error) {
	if token == "" {
		return 0, "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches a user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// RequestPasswordReset issues a reset token and mails it to the account.
// Unknown logins succeed silently so the endpoint cannot be used to probe
// which accounts exist.
func (u *AuthUseCase) RequestPasswordReset(ctx context.Context, login string) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return domainErrors.ErrInvalidArgument
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.logger.Info("password reset requested for unknown login")
			return nil
		}
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	if err := u.users.SetResetToken(ctx, usr.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	return u.mail.SendPasswordReset(ctx, usr.Login, token)
}

// ResetPassword consumes a reset token and stores the new password hash.
func (u *AuthUseCase) ResetPassword(ctx context.Context, token, password string) error {
	if strings.TrimSpace(token) == "" || password == "" {
		return domainErrors.ErrInvalidArgument
	}

	usr, err := u.users.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if usr.ResetExpires.Before(time.Now()) {
		return domainErrors.ErrNotFound
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, usr.ID, hash)
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
