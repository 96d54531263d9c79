package users

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record. Email is the primary lookup key for all token
// subjects. RefreshToken mirrors the last issued refresh token so it can be
// invalidated by overwriting the field.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Username     string    `json:"username" gorm:"size:50"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;size:250"`
	Password     string    `json:"-" gorm:"not null;size:255"` // hide in json
	Avatar       string    `json:"avatar" gorm:"size:255"`
	RefreshToken *string   `json:"-" gorm:"size:512"`
	Confirmed    bool      `json:"confirmed" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
