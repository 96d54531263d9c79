package contacts

import "time"

type ContactResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PhoneNumber    string     `json:"phone_number"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	AdditionalData string     `json:"additional_data,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ContactListResponse struct {
	Contacts   []ContactResponse `json:"contacts"`
	TotalCount int64             `json:"total_count"`
	Offset     int               `json:"offset"`
	Limit      int               `json:"limit"`
}

func NewContactListResponse(contacts []Contact, total int64, offset, limit int) ContactListResponse {
	items := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		items = append(items, contacts[i].ToResponse())
	}
	return ContactListResponse{
		Contacts:   items,
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
	}
}
