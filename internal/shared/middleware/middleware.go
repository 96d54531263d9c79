package middleware

import (
	"context"
	"net/http"
	"strings"

	"contactly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// UserResolver resolves a bearer token to an authenticated principal. The
// middleware never inspects the principal, it only carries it; keeping the
// value opaque here is what lets domain packages import this one freely.
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (any, error)
}

// RequireAuth gates a route group on a valid access token. All failures
// produce the same 401 so callers cannot tell which check rejected them.
func RequireAuth(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
			c.Abort()
			return
		}

		user, err := resolver.CurrentUser(c.Request.Context(), token)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Could not validate credentials", nil, nil)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the principal stored by RequireAuth, asserted to the
// caller's user type.
func CurrentUser[T any](c *gin.Context) (T, bool) {
	var zero T
	value, exists := c.Get(currentUserKey)
	if !exists {
		return zero, false
	}
	user, ok := value.(T)
	if !ok {
		return zero, false
	}
	return user, true
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
