package middleware

import (
	"github.com/gin-gonic/gin"

	"membership-backend/internal/shared/response"
)

// RequireRoles allows the request through when the authenticated account
// holds one of the given roles. Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok {
			response.Forbidden(c, "access denied: no role")
			c.Abort()
			return
		}

		if _, ok := allowed[role]; !ok {
			response.Forbidden(c, "access denied: insufficient role")
			c.Abort()
			return
		}

		c.Next()
	}
}
