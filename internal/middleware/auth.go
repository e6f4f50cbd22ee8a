package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/security"
)

const currentUserKey = "current_user"

// UserSource resolves the user whose stored token textually matches the
// presented one.
type UserSource interface {
	FindByToken(ctx context.Context, token string) (models.User, error)
}

// UserCache is an optional read-through cache in front of UserSource, keyed
// by token string. A nil cache is skipped.
type UserCache interface {
	Get(ctx context.Context, token string) (models.User, bool)
	Set(ctx context.Context, token string, user models.User)
}

// Auth is the authentication gate. Outcomes, in order:
//
//	no or malformed Authorization header  -> 403
//	bad signature, format or embedded exp -> 401
//	no user stores this exact token       -> 401
//	server-recorded expiry passed         -> 403
//
// On success the user (roles included) is attached to the request context.
func Auth(keyring *security.Keyring, users UserSource, cache UserCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := security.ExtractBearer(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":   false,
				"messages": "Missing credential",
			})
			return
		}

		if _, err := keyring.Parse(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":   false,
				"messages": "Invalid token",
			})
			return
		}

		ctx := c.Request.Context()

		user, cached := models.User{}, false
		if cache != nil {
			user, cached = cache.Get(ctx, token)
		}
		if !cached {
			var err error
			user, err = users.FindByToken(ctx, token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"status":   false,
					"messages": "Invalid token",
				})
				return
			}
			if cache != nil {
				cache.Set(ctx, token, user)
			}
		}

		if user.TokenExpired(time.Now()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":   false,
				"messages": "Session expired",
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity established by Auth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}
