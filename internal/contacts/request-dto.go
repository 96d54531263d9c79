package contacts

import "time"

type CreateContactRequest struct {
	Name           string     `json:"name" validate:"required,min=1,max=50"`
	Email          string     `json:"email" validate:"required,email,max=50"`
	PhoneNumber    string     `json:"phone_number" validate:"required,min=3,max=50"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	AdditionalData string     `json:"additional_data,omitempty" validate:"max=150"`
}

// UpdateContactRequest uses pointers so absent fields are left untouched.
type UpdateContactRequest struct {
	Name           *string    `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Email          *string    `json:"email,omitempty" validate:"omitempty,email,max=50"`
	PhoneNumber    *string    `json:"phone_number,omitempty" validate:"omitempty,min=3,max=50"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	AdditionalData *string    `json:"additional_data,omitempty" validate:"omitempty,max=150"`
}
