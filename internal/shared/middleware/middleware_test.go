package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPrincipal stands in for a domain user type. The middleware must work
// against any principal type without importing the package that declares it.
type testPrincipal struct {
	Email string
}

type stubResolver struct {
	user *testPrincipal
	err  error

	gotToken string
}

func (s *stubResolver) CurrentUser(ctx context.Context, token string) (any, error) {
	s.gotToken = token
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func newAuthTestRouter(resolver UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", RequireAuth(resolver), func(c *gin.Context) {
		user, ok := CurrentUser[*testPrincipal](c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	return engine
}

func doRequest(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireAuthPassesUserThrough(t *testing.T) {
	alice := &testPrincipal{Email: "alice@example.com"}
	resolver := &stubResolver{user: alice}
	engine := newAuthTestRouter(resolver)

	w := doRequest(engine, "Bearer some-token")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "some-token", resolver.gotToken)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	resolver := &stubResolver{err: errors.New("should not be called")}
	engine := newAuthTestRouter(resolver)

	w := doRequest(engine, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, resolver.gotToken)
}

func TestRequireAuthRejectsNonBearerScheme(t *testing.T) {
	resolver := &stubResolver{}
	engine := newAuthTestRouter(resolver)

	for _, header := range []string{"Basic abc", "Bearer", "Bearer ", "token abc"} {
		w := doRequest(engine, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAuthRejectsResolverFailure(t *testing.T) {
	resolver := &stubResolver{err: errors.New("could not validate credentials")}
	engine := newAuthTestRouter(resolver)

	w := doRequest(engine, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Could not validate credentials")
}

func TestCurrentUserWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CurrentUser[*testPrincipal](c)
	assert.False(t, ok)
}

func TestCurrentUserRejectsWrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(currentUserKey, "not a principal")

	_, ok := CurrentUser[*testPrincipal](c)
	assert.False(t, ok)
}
