package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerificationNotification(t *testing.T) {
	n := NewVerificationNotification("alice@example.com", "alice", "http://localhost:8080/api/v1/auth/confirm/tok")

	assert.Equal(t, NotificationTypeEmailVerification, n.Type)
	assert.Equal(t, "alice@example.com", n.RecipientEmail)
	assert.Equal(t, NotificationStatusPending, n.Status)
	assert.Equal(t, "http://localhost:8080/api/v1/auth/confirm/tok", n.TemplateData["verification_link"])
	assert.Equal(t, "alice@example.com", n.PartitionKey())
}

func TestNotificationSurvivesTransport(t *testing.T) {
	n := NewWelcomeNotification("alice@example.com", "alice")

	raw, err := n.ToJSON()
	require.NoError(t, err)

	decoded, err := FromJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, n.ID, decoded.ID)
	assert.Equal(t, NotificationTypeWelcome, decoded.Type)
	assert.Equal(t, "alice", decoded.RecipientName)
}

func TestRenderContentIncludesVerificationLink(t *testing.T) {
	link := "http://localhost:8080/api/v1/auth/confirm/tok"
	n := NewVerificationNotification("alice@example.com", "alice", link)

	htmlBody, textBody := renderContent(n)
	assert.Contains(t, htmlBody, link)
	assert.Contains(t, textBody, link)
	assert.Contains(t, htmlBody, "alice")
}

func TestRenderContentWelcome(t *testing.T) {
	n := NewWelcomeNotification("alice@example.com", "alice")

	htmlBody, textBody := renderContent(n)
	assert.Contains(t, htmlBody, "Welcome")
	assert.Contains(t, textBody, "alice")
}

func TestMarkFailedRecordsError(t *testing.T) {
	n := NewWelcomeNotification("alice@example.com", "alice")

	n.MarkFailed(assert.AnError)
	assert.Equal(t, NotificationStatusFailed, n.Status)
	require.NotNil(t, n.LastError)
	assert.Equal(t, assert.AnError.Error(), *n.LastError)
}
