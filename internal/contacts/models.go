package contacts

import (
	"time"

	"github.com/google/uuid"

	"contactly/internal/users"
)

// Contact is owned by exactly one user. UserID is set at creation and never
// changes; rows are removed with their owner via the cascade FK.
type Contact struct {
	ID             uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name           string     `json:"name" gorm:"not null;size:50"`
	Email          string     `json:"email" gorm:"not null;size:50"`
	PhoneNumber    string     `json:"phone_number" gorm:"not null;size:50"`
	BirthDate      *time.Time `json:"birth_date"`
	AdditionalData string     `json:"additional_data" gorm:"size:150"`
	UserID         uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	User           users.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Contact) TableName() string {
	return "contacts"
}

func (c *Contact) ToResponse() ContactResponse {
	return ContactResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		Email:          c.Email,
		PhoneNumber:    c.PhoneNumber,
		BirthDate:      c.BirthDate,
		AdditionalData: c.AdditionalData,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
