package contacts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"contactly/pkg/logger"
)

var (
	ErrContactNotFound = errors.New("contact not found")
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
	birthdayWindow   = 7
)

// Service owns contact business rules. All operations are scoped to the
// caller's user id; a contact belonging to another user behaves exactly like
// a missing one.
type Service interface {
	ListContacts(ctx context.Context, userID uuid.UUID, offset, limit int) ([]Contact, int64, error)
	GetContact(ctx context.Context, id, userID uuid.UUID) (*Contact, error)
	CreateContact(ctx context.Context, userID uuid.UUID, req CreateContactRequest) (*Contact, error)
	UpdateContact(ctx context.Context, id, userID uuid.UUID, req UpdateContactRequest) (*Contact, error)
	DeleteContact(ctx context.Context, id, userID uuid.UUID) error
	SearchContacts(ctx context.Context, userID uuid.UUID, query string) ([]Contact, error)
	UpcomingBirthdays(ctx context.Context, userID uuid.UUID) ([]Contact, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (s *service) ListContacts(ctx context.Context, userID uuid.UUID, offset, limit int) ([]Contact, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.repo.List(ctx, userID, offset, limit)
}

func (s *service) GetContact(ctx context.Context, id, userID uuid.UUID) (*Contact, error) {
	contact, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (s *service) CreateContact(ctx context.Context, userID uuid.UUID, req CreateContactRequest) (*Contact, error) {
	contact := &Contact{
		Name:           req.Name,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		BirthDate:      req.BirthDate,
		AdditionalData: req.AdditionalData,
		UserID:         userID,
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}

	s.log.LogContactCreated(ctx, contact.ID.String(), userID.String())
	return contact, nil
}

func (s *service) UpdateContact(ctx context.Context, id, userID uuid.UUID, req UpdateContactRequest) (*Contact, error) {
	updates := map[string]interface{}{}

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.BirthDate != nil {
		updates["birth_date"] = *req.BirthDate
	}
	if req.AdditionalData != nil {
		updates["additional_data"] = *req.AdditionalData
	}

	if len(updates) == 0 {
		return s.GetContact(ctx, id, userID)
	}

	contact, err := s.repo.Update(ctx, id, userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (s *service) DeleteContact(ctx context.Context, id, userID uuid.UUID) error {
	err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}

func (s *service) SearchContacts(ctx context.Context, userID uuid.UUID, query string) ([]Contact, error) {
	return s.repo.Search(ctx, userID, query)
}

func (s *service) UpcomingBirthdays(ctx context.Context, userID uuid.UUID) ([]Contact, error) {
	return s.repo.UpcomingBirthdays(ctx, userID, s.now(), birthdayWindow)
}
