package users

import (
	"context"
	"fmt"
	"time"

	"contactly/pkg/cache"
)

// Service owns read access to user profiles. Lookups go through a redis
// cache-aside layer because every authenticated request resolves the bearer
// token's subject back to a user row.
type Service interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateAvatar(ctx context.Context, email, url string) (*User, error)
	InvalidateProfile(ctx context.Context, email string) error
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

// NewService builds the profile service. A nil cache disables caching; every
// lookup then hits the database directly.
func NewService(repo Repository, cacheSvc cache.Service, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
	}
}

func profileCacheKey(email string) string {
	return fmt.Sprintf("contactly:users:email:%s", email)
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if s.cache == nil {
		return s.repo.GetByEmail(ctx, email)
	}

	var user User
	err := s.cache.GetOrSet(ctx, profileCacheKey(email), s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetByEmail(ctx, email)
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *service) UpdateAvatar(ctx context.Context, email, url string) (*User, error) {
	user, err := s.repo.UpdateAvatar(ctx, email, url)
	if err != nil {
		return nil, err
	}
	if err := s.InvalidateProfile(ctx, email); err != nil {
		return user, err
	}
	return user, nil
}

func (s *service) InvalidateProfile(ctx context.Context, email string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, profileCacheKey(email))
}
