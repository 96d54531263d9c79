package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"contactly/pkg/logger"
)

// EmailSender delivers a rendered notification to its recipient.
type EmailSender interface {
	Send(ctx context.Context, notification *EmailNotification) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}

// IsConfigured reports whether the config is complete enough to open an SMTP
// session. An unconfigured setup falls back to the mock sender.
func (c *SMTPConfig) IsConfigured() bool {
	return c != nil && c.Host != "" && c.Username != "" && c.FromEmail != ""
}

type smtpSender struct {
	config *SMTPConfig
	log    *logger.Logger
}

func NewSMTPSender(config *SMTPConfig, log *logger.Logger) (EmailSender, error) {
	if !config.IsConfigured() {
		return nil, fmt.Errorf("incomplete SMTP configuration: host, username and from address are required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &smtpSender{config: config, log: log}, nil
}

func (s *smtpSender) Send(ctx context.Context, notification *EmailNotification) error {
	htmlBody, textBody := renderContent(notification)
	message := s.buildMessage(notification.RecipientEmail, notification.Subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, notification.RecipientEmail, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{notification.RecipientEmail}, message)
	}
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpSender) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		ServerName: s.config.Host,
	}
	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}

func (s *smtpSender) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	message := fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	message += fmt.Sprintf("To: %s\r\n", to)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "MIME-Version: 1.0\r\n"
	message += fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	message += fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s\r\n", boundary)
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n\r\n"
		message += textBody + "\r\n"
	}
	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n\r\n"
		message += htmlBody + "\r\n"
	}
	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

func renderContent(notification *EmailNotification) (string, string) {
	switch notification.Type {
	case NotificationTypeEmailVerification:
		link, _ := notification.TemplateData["verification_link"].(string)
		htmlBody := fmt.Sprintf(`
			<h2>Confirm your email</h2>
			<p>Hi %s,</p>
			<p>Thanks for signing up for Contactly. Please confirm your email address by clicking the link below:</p>
			<p><a href="%s">Confirm my email</a></p>
			<p>If you did not create an account, you can safely ignore this message.</p>
			<p>The Contactly Team</p>
		`, notification.RecipientName, link)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nThanks for signing up for Contactly. Please confirm your email address by opening this link:\n\n%s\n\nIf you did not create an account, you can safely ignore this message.\n\nThe Contactly Team",
			notification.RecipientName, link)

		return htmlBody, textBody

	case NotificationTypeWelcome:
		htmlBody := fmt.Sprintf(`
			<h2>Welcome to Contactly!</h2>
			<p>Hi %s,</p>
			<p>Your email is confirmed and your account is ready. You can now start adding contacts.</p>
			<p>The Contactly Team</p>
		`, notification.RecipientName)

		textBody := fmt.Sprintf(
			"Hi %s,\n\nYour email is confirmed and your account is ready. You can now start adding contacts.\n\nThe Contactly Team",
			notification.RecipientName)

		return htmlBody, textBody

	default:
		htmlBody := fmt.Sprintf("<h2>%s</h2><p>Hi %s,</p><p>This is a notification from Contactly.</p>",
			notification.Subject, notification.RecipientName)
		textBody := fmt.Sprintf("Hi %s,\n\nThis is a notification from Contactly.",
			notification.RecipientName)
		return htmlBody, textBody
	}
}

// MockSender logs instead of sending. Used in development when SMTP is not
// configured.
type MockSender struct {
	log *logger.Logger
}

func NewMockSender(log *logger.Logger) *MockSender {
	if log == nil {
		log = logger.GetDefault()
	}
	return &MockSender{log: log}
}

func (s *MockSender) Send(ctx context.Context, notification *EmailNotification) error {
	s.log.InfoContext(ctx, "mock email delivery",
		"type", notification.Type,
		"recipient", notification.RecipientEmail,
		"subject", notification.Subject,
	)
	return nil
}
