package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"contactly/internal/users"
	"contactly/pkg/gravatar"
	"contactly/pkg/logger"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrEmailAlreadyConfirmed = errors.New("email already confirmed")
	ErrRefreshTokenRevoked   = errors.New("refresh token has been revoked")
)

// EmailPublisher queues account emails for asynchronous delivery.
type EmailPublisher interface {
	PublishVerificationEmail(ctx context.Context, email, username, link string) error
	PublishWelcomeEmail(ctx context.Context, email, username string) error
}

// ProfileInvalidator drops cached user profiles after a mutation.
type ProfileInvalidator interface {
	InvalidateProfile(ctx context.Context, email string) error
}

type Service interface {
	Register(ctx context.Context, req *SignupRequest) (*UserResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, user *users.User) error
	ConfirmEmail(ctx context.Context, token string) error
	RequestVerification(ctx context.Context, email string) error
}

type service struct {
	repo      Repository
	hasher    PasswordHasher
	issuer    *Issuer
	resolver  *Resolver
	avatars   *gravatar.Client
	publisher EmailPublisher
	profiles  ProfileInvalidator
	baseURL   string
	log       *logger.Logger
}

// ServiceDeps bundles the collaborators of the auth service. Publisher and
// Profiles may be nil; the flows that use them degrade gracefully.
type ServiceDeps struct {
	Repo      Repository
	Hasher    PasswordHasher
	Issuer    *Issuer
	Resolver  *Resolver
	Avatars   *gravatar.Client
	Publisher EmailPublisher
	Profiles  ProfileInvalidator
	BaseURL   string
	Logger    *logger.Logger
}

func NewService(deps ServiceDeps) Service {
	if deps.Logger == nil {
		deps.Logger = logger.GetDefault()
	}
	return &service{
		repo:      deps.Repo,
		hasher:    deps.Hasher,
		issuer:    deps.Issuer,
		resolver:  deps.Resolver,
		avatars:   deps.Avatars,
		publisher: deps.Publisher,
		profiles:  deps.Profiles,
		baseURL:   deps.BaseURL,
		log:       deps.Logger,
	}
}

func (s *service) Register(ctx context.Context, req *SignupRequest) (*UserResponse, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	// Avatar lookup is best effort; a gravatar outage must not block signup.
	avatar := ""
	if s.avatars != nil {
		url, err := s.avatars.ImageURL(ctx, req.Email)
		if err != nil {
			s.log.Warn("gravatar lookup failed", slog.String("email", req.Email), slog.Any("error", err))
		}
		avatar = url
	}

	user := &users.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Avatar:   avatar,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.sendVerificationEmail(ctx, user.Email, user.Username)

	resp := NewUserResponse(user)
	return &resp, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	resp := NewUserResponse(user)
	return &AuthResponse{
		User:         resp,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// Refresh exchanges a refresh token for a new access/refresh pair. The
// presented token must match the persisted mirror; a mismatch means the
// token was superseded or the session was logged out, so the mirror is
// cleared and the exchange refused.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	email, err := s.resolver.DecodeRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		if err := s.repo.UpdateRefreshToken(ctx, user.ID.String(), nil); err != nil {
			s.log.Warn("failed to clear refresh token mirror", slog.String("email", email), slog.Any("error", err))
		}
		s.invalidateProfile(ctx, user.Email)
		return nil, ErrRefreshTokenRevoked
	}

	return s.issueTokenPair(ctx, user)
}

func (s *service) Logout(ctx context.Context, user *users.User) error {
	if err := s.repo.UpdateRefreshToken(ctx, user.ID.String(), nil); err != nil {
		return err
	}
	s.invalidateProfile(ctx, user.Email)
	return nil
}

// ConfirmEmail marks the account confirmed using the token from the
// verification link. The flag is set exactly once.
func (s *service) ConfirmEmail(ctx context.Context, token string) error {
	email, err := s.resolver.DecodeEmailToken(token)
	if err != nil {
		return err
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidVerificationToken
		}
		return err
	}
	if user.Confirmed {
		return ErrEmailAlreadyConfirmed
	}

	if err := s.repo.ConfirmEmail(ctx, email); err != nil {
		return err
	}
	s.invalidateProfile(ctx, email)

	if s.publisher != nil {
		if err := s.publisher.PublishWelcomeEmail(ctx, user.Email, user.Username); err != nil {
			s.log.Warn("failed to queue welcome email", slog.String("email", email), slog.Any("error", err))
		}
	}
	return nil
}

// RequestVerification re-sends the verification link. It reports success for
// unknown or already-confirmed addresses too, so it cannot be used to probe
// which emails have accounts.
func (s *service) RequestVerification(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}
	if user.Confirmed {
		return nil
	}

	s.sendVerificationEmail(ctx, user.Email, user.Username)
	return nil
}

func (s *service) issueTokenPair(ctx context.Context, user *users.User) (*TokenPair, error) {
	accessToken, err := s.issuer.IssueAccessToken(user.Email, 0)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.issuer.IssueRefreshToken(user.Email, 0)
	if err != nil {
		return nil, err
	}

	// Mirror the refresh token so it can be invalidated server-side.
	if err := s.repo.UpdateRefreshToken(ctx, user.ID.String(), &refreshToken); err != nil {
		return nil, err
	}
	s.invalidateProfile(ctx, user.Email)

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.issuer.accessTTL.Seconds()),
	}, nil
}

func (s *service) sendVerificationEmail(ctx context.Context, email, username string) {
	if s.publisher == nil {
		return
	}
	token, err := s.issuer.IssueEmailToken(email)
	if err != nil {
		s.log.Error("failed to issue email verification token", slog.String("email", email), slog.Any("error", err))
		return
	}
	link := fmt.Sprintf("%s/api/v1/auth/confirm/%s", s.baseURL, token)
	if err := s.publisher.PublishVerificationEmail(ctx, email, username, link); err != nil {
		s.log.Warn("failed to queue verification email", slog.String("email", email), slog.Any("error", err))
	}
}

func (s *service) invalidateProfile(ctx context.Context, email string) {
	if s.profiles == nil {
		return
	}
	if err := s.profiles.InvalidateProfile(ctx, email); err != nil {
		s.log.Warn("failed to invalidate cached profile", slog.String("email", email), slog.Any("error", err))
	}
}
