package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/server/http/dto"
	"github.com/rvleeuwen/laadscan/internal/server/http/middleware"
)

// AuthHandler processes login, password resets and account creation.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.LoginResponse{Login: user.Login, Role: string(user.Role)})
}

// Forgot handles POST /api/auth/forgot. It always answers 202 for valid
// payloads so account existence cannot be probed.
func (h *AuthHandler) Forgot(c *gin.Context) {
	var req dto.ForgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RequestPasswordReset(c.Request.Context(), req.Login); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidArgument):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusAccepted)
}

// Reset handles POST /api/auth/reset.
func (h *AuthHandler) Reset(c *gin.Context) {
	var req dto.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidArgument):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// CreateUser handles POST /api/users, admin only.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, err := h.facade.CreateUser(c.Request.Context(), req.Login, req.Password, model.Role(req.Role))
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

	c.JSON(http.StatusCreated, dto.UserResponse{ID: user.ID, Login: user.Login, Role: string(user.Role)})
}
