package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles is the authorization gate: a static per-route role requirement
// checked against the identity established by Auth. Failure is always 403.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":   false,
				"messages": "Forbidden",
			})
			return
		}

		for _, role := range roles {
			if user.HasRole(role) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":   false,
			"messages": "Forbidden",
		})
	}
}
