package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rvleeuwen/laadscan/internal/server/http/middleware"
)

// CurrentUserID returns the authenticated user id stored by the auth
// middleware, or 0 when the request carries no auth context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}
