package contacts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	contacts map[uuid.UUID]*Contact

	lastOffset int
	lastLimit  int
	lastFrom   time.Time
	lastDays   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{contacts: make(map[uuid.UUID]*Contact)}
}

func (r *fakeRepository) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]Contact, int64, error) {
	r.lastOffset = offset
	r.lastLimit = limit

	var owned []Contact
	for _, c := range r.contacts {
		if c.UserID == userID {
			owned = append(owned, *c)
		}
	}
	return owned, int64(len(owned)), nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Contact, error) {
	c, ok := r.contacts[id]
	if !ok || c.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeRepository) Create(ctx context.Context, contact *Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	r.contacts[contact.ID] = contact
	return nil
}

func (r *fakeRepository) Update(ctx context.Context, id, userID uuid.UUID, updates map[string]interface{}) (*Contact, error) {
	c, ok := r.contacts[id]
	if !ok || c.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		c.Name = name
	}
	if email, ok := updates["email"].(string); ok {
		c.Email = email
	}
	if phone, ok := updates["phone_number"].(string); ok {
		c.PhoneNumber = phone
	}
	if bd, ok := updates["birth_date"].(time.Time); ok {
		c.BirthDate = &bd
	}
	if extra, ok := updates["additional_data"].(string); ok {
		c.AdditionalData = extra
	}
	return c, nil
}

func (r *fakeRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	c, ok := r.contacts[id]
	if !ok || c.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.contacts, id)
	return nil
}

func (r *fakeRepository) Search(ctx context.Context, userID uuid.UUID, query string) ([]Contact, error) {
	q := strings.ToLower(query)
	var matched []Contact
	for _, c := range r.contacts {
		if c.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q) {
			matched = append(matched, *c)
		}
	}
	return matched, nil
}

func (r *fakeRepository) UpcomingBirthdays(ctx context.Context, userID uuid.UUID, from time.Time, days int) ([]Contact, error) {
	r.lastFrom = from
	r.lastDays = days
	return nil, nil
}

func newFixture() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, nil), repo
}

func createContact(t *testing.T, svc Service, owner uuid.UUID, name string) *Contact {
	t.Helper()
	contact, err := svc.CreateContact(context.Background(), owner, CreateContactRequest{
		Name:        name,
		Email:       strings.ToLower(name) + "@example.com",
		PhoneNumber: "+1-202-555-0101",
	})
	require.NoError(t, err)
	return contact
}

func TestCreateContactAssignsOwner(t *testing.T) {
	svc, repo := newFixture()
	owner := uuid.New()

	contact := createContact(t, svc, owner, "Dave")
	assert.Equal(t, owner, contact.UserID)
	assert.Contains(t, repo.contacts, contact.ID)
}

func TestGetContactEnforcesOwnership(t *testing.T) {
	svc, _ := newFixture()
	owner := uuid.New()
	other := uuid.New()

	contact := createContact(t, svc, owner, "Dave")

	got, err := svc.GetContact(context.Background(), contact.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, contact.ID, got.ID)

	// Another user's id behaves exactly like a missing contact.
	_, err = svc.GetContact(context.Background(), contact.ID, other)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestUpdateContactAppliesOnlyProvidedFields(t *testing.T) {
	svc, _ := newFixture()
	owner := uuid.New()
	contact := createContact(t, svc, owner, "Dave")

	newName := "David"
	updated, err := svc.UpdateContact(context.Background(), contact.ID, owner, UpdateContactRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "David", updated.Name)
	assert.Equal(t, "dave@example.com", updated.Email)
}

func TestUpdateContactWithNoFieldsReturnsCurrent(t *testing.T) {
	svc, _ := newFixture()
	owner := uuid.New()
	contact := createContact(t, svc, owner, "Dave")

	updated, err := svc.UpdateContact(context.Background(), contact.ID, owner, UpdateContactRequest{})
	require.NoError(t, err)
	assert.Equal(t, contact.ID, updated.ID)
	assert.Equal(t, "Dave", updated.Name)
}

func TestUpdateContactEnforcesOwnership(t *testing.T) {
	svc, _ := newFixture()
	owner := uuid.New()
	contact := createContact(t, svc, owner, "Dave")

	newName := "Mallory"
	_, err := svc.UpdateContact(context.Background(), contact.ID, uuid.New(), UpdateContactRequest{
		Name: &newName,
	})
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestDeleteContactEnforcesOwnership(t *testing.T) {
	svc, repo := newFixture()
	owner := uuid.New()
	contact := createContact(t, svc, owner, "Dave")

	err := svc.DeleteContact(context.Background(), contact.ID, uuid.New())
	assert.ErrorIs(t, err, ErrContactNotFound)
	assert.Contains(t, repo.contacts, contact.ID)

	require.NoError(t, svc.DeleteContact(context.Background(), contact.ID, owner))
	assert.NotContains(t, repo.contacts, contact.ID)
}

func TestListContactsClampsPagination(t *testing.T) {
	svc, repo := newFixture()
	owner := uuid.New()

	_, _, err := svc.ListContacts(context.Background(), owner, -5, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.lastOffset)
	assert.Equal(t, defaultPageLimit, repo.lastLimit)

	_, _, err = svc.ListContacts(context.Background(), owner, 10, 10000)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastOffset)
	assert.Equal(t, maxPageLimit, repo.lastLimit)
}

func TestListContactsScopedToOwner(t *testing.T) {
	svc, _ := newFixture()
	owner := uuid.New()
	other := uuid.New()

	createContact(t, svc, owner, "Dave")
	createContact(t, svc, owner, "Erin")
	createContact(t, svc, other, "Grace")

	owned, total, err := svc.ListContacts(context.Background(), owner, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, owned, 2)
}

func TestSearchContactsScopedToOwner(t *testing.T) {
	svc, _ := newFixture()
	owner := uuid.New()
	other := uuid.New()

	createContact(t, svc, owner, "Dave")
	createContact(t, svc, other, "Davina")

	matched, err := svc.SearchContacts(context.Background(), owner, "dav")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Dave", matched[0].Name)
}

func TestUpcomingBirthdaysUsesSevenDayWindow(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil).(*service)

	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.UpcomingBirthdays(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, now, repo.lastFrom)
	assert.Equal(t, birthdayWindow, repo.lastDays)
}
