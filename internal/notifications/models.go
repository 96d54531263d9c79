package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeEmailVerification NotificationType = "email_verification"
	NotificationTypeWelcome           NotificationType = "welcome"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusQueued  NotificationStatus = "queued"
	NotificationStatusSending NotificationStatus = "sending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// EmailNotification is the message carried through the email topic. Everything
// the worker needs to render and send the email travels in TemplateData, so
// consumers never call back into the database.
type EmailNotification struct {
	ID             uuid.UUID              `json:"id"`
	Type           NotificationType       `json:"type"`
	RecipientEmail string                 `json:"recipient_email"`
	RecipientName  string                 `json:"recipient_name"`
	Subject        string                 `json:"subject"`
	TemplateData   map[string]interface{} `json:"template_data,omitempty"`
	Status         NotificationStatus     `json:"status"`
	Attempts       int                    `json:"attempts"`
	LastError      *string                `json:"last_error,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

func newNotification(nType NotificationType, email, name, subject string, data map[string]interface{}) *EmailNotification {
	now := time.Now()
	return &EmailNotification{
		ID:             uuid.New(),
		Type:           nType,
		RecipientEmail: email,
		RecipientName:  name,
		Subject:        subject,
		TemplateData:   data,
		Status:         NotificationStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// NewVerificationNotification builds the account confirmation email. The link
// is the full confirmation URL, token included.
func NewVerificationNotification(email, username, link string) *EmailNotification {
	return newNotification(NotificationTypeEmailVerification, email, username,
		"Confirm your Contactly account",
		map[string]interface{}{"verification_link": link})
}

func NewWelcomeNotification(email, username string) *EmailNotification {
	return newNotification(NotificationTypeWelcome, email, username,
		"Welcome to Contactly!", nil)
}

func (n *EmailNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func FromJSON(data []byte) (*EmailNotification, error) {
	var n EmailNotification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// PartitionKey routes all messages for one recipient to the same partition so
// their emails stay ordered.
func (n *EmailNotification) PartitionKey() string {
	return n.RecipientEmail
}

func (n *EmailNotification) MarkSent() {
	n.Status = NotificationStatusSent
	n.UpdatedAt = time.Now()
}

func (n *EmailNotification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	msg := err.Error()
	n.LastError = &msg
	n.UpdatedAt = time.Now()
}
