package contacts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is filtered persistence for contacts. Every query carries the
// owning user's id; there is no unscoped access path.
type Repository interface {
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]Contact, int64, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Contact, error)
	Create(ctx context.Context, contact *Contact) error
	Update(ctx context.Context, id, userID uuid.UUID, updates map[string]interface{}) (*Contact, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Search(ctx context.Context, userID uuid.UUID, query string) ([]Contact, error)
	UpcomingBirthdays(ctx context.Context, userID uuid.UUID, from time.Time, days int) ([]Contact, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]Contact, int64, error) {
	var contacts []Contact
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Contact{}).Where("user_id = ?", userID)

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&contacts).Error

	return contacts, totalCount, err
}

func (r *repository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Contact, error) {
	var contact Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *repository) Create(ctx context.Context, contact *Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *repository) Update(ctx context.Context, id, userID uuid.UUID, updates map[string]interface{}) (*Contact, error) {
	var contact Contact

	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&contact).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&contact).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&contact).Error; err != nil {
		return nil, err
	}

	return &contact, nil
}

func (r *repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Contact{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Search(ctx context.Context, userID uuid.UUID, query string) ([]Contact, error) {
	var contacts []Contact
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND (name ILIKE ? OR email ILIKE ?)", userID, pattern, pattern).
		Order("name ASC").
		Find(&contacts).Error
	return contacts, err
}

// UpcomingBirthdays returns contacts whose birthday (month/day) falls within
// the window [from, from+days]. The year on birth_date is ignored.
func (r *repository) UpcomingBirthdays(ctx context.Context, userID uuid.UUID, from time.Time, days int) ([]Contact, error) {
	var contacts []Contact
	end := from.AddDate(0, 0, days)

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND birth_date IS NOT NULL AND ("+
			"(EXTRACT(MONTH FROM birth_date) = ? AND EXTRACT(DAY FROM birth_date) >= ?) OR "+
			"(EXTRACT(MONTH FROM birth_date) = ? AND EXTRACT(DAY FROM birth_date) <= ?))",
			userID,
			int(from.Month()), from.Day(),
			int(end.Month()), end.Day()).
		Order("birth_date ASC").
		Find(&contacts).Error

	return contacts, err
}
