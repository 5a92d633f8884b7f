package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicehub/internal/policy"
	"servicehub/internal/pkg/response"
)

// Authorize lets the request through only when the caller's role may perform action.
func Authorize(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		if role == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}
		if !policy.Allowed(role, action) {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			return
		}
		c.Next()
	}
}
