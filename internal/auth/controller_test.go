package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"contactly/internal/users"
)

type stubService struct {
	registerErr error
	loginResp   *AuthResponse
	loginErr    error
	refreshErr  error
	confirmErr  error
}

func (s *stubService) Register(ctx context.Context, req *SignupRequest) (*UserResponse, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &UserResponse{Email: req.Email, Username: req.Username}, nil
}

func (s *stubService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return &TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900}, nil
}

func (s *stubService) Logout(ctx context.Context, user *users.User) error {
	return nil
}

func (s *stubService) ConfirmEmail(ctx context.Context, token string) error {
	return s.confirmErr
}

func (s *stubService) RequestVerification(ctx context.Context, email string) error {
	return nil
}

func newControllerRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	controller := NewController(svc)

	engine.POST("/auth/signup", controller.Signup)
	engine.POST("/auth/login", controller.Login)
	engine.POST("/auth/refresh", controller.Refresh)
	engine.GET("/auth/confirm/:token", controller.ConfirmEmail)
	engine.POST("/auth/request-verification", controller.RequestVerification)
	return engine
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSignupReturnsConflictForDuplicate(t *testing.T) {
	engine := newControllerRouter(&stubService{registerErr: ErrUserAlreadyExists})

	w := postJSON(engine, "/auth/signup", `{"username":"alice","email":"alice@example.com","password":"qwerty"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupRejectsInvalidPayload(t *testing.T) {
	engine := newControllerRouter(&stubService{})

	w := postJSON(engine, "/auth/signup", `{"username":"alice","email":"not-an-email","password":"qwerty"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupCreated(t *testing.T) {
	engine := newControllerRouter(&stubService{})

	w := postJSON(engine, "/auth/signup", `{"username":"alice","email":"alice@example.com","password":"qwerty"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "check your email")
}

func TestLoginUnauthorizedForBadCredentials(t *testing.T) {
	engine := newControllerRouter(&stubService{loginErr: ErrInvalidCredentials})

	w := postJSON(engine, "/auth/login", `{"email":"alice@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestRefreshUnauthorizedForRevokedToken(t *testing.T) {
	engine := newControllerRouter(&stubService{refreshErr: ErrRefreshTokenRevoked})

	w := postJSON(engine, "/auth/refresh", `{"refresh_token":"stale"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired refresh token")
}

func TestRefreshSuccess(t *testing.T) {
	engine := newControllerRouter(&stubService{})

	w := postJSON(engine, "/auth/refresh", `{"refresh_token":"valid"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
}

func TestConfirmEmailStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"confirmed", nil, http.StatusOK},
		{"already confirmed", ErrEmailAlreadyConfirmed, http.StatusOK},
		{"invalid token", ErrInvalidVerificationToken, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newControllerRouter(&stubService{confirmErr: tt.serviceErr})

			req := httptest.NewRequest(http.MethodGet, "/auth/confirm/some-token", nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequestVerificationAlwaysSucceeds(t *testing.T) {
	engine := newControllerRouter(&stubService{})

	w := postJSON(engine, "/auth/request-verification", `{"email":"ghost@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Check your email")
}
