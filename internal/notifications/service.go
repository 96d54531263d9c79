package notifications

import (
	"context"
	"fmt"
	"sync"

	"contactly/internal/shared/config"
	"contactly/pkg/logger"
)

// Service ties the producer and consumer together and exposes the two account
// emails the auth flow publishes. With Kafka disabled it skips the broker and
// hands notifications straight to the sender.
type Service struct {
	producer Producer
	consumer Consumer
	sender   EmailSender
	workers  int
	log      *logger.Logger

	mu        sync.Mutex
	isRunning bool
}

func NewService(kafkaCfg config.KafkaConfig, emailCfg config.EmailConfig, log *logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.GetDefault()
	}

	smtpCfg := &SMTPConfig{
		Host:      emailCfg.SMTPHost,
		Port:      emailCfg.SMTPPort,
		Username:  emailCfg.SMTPUsername,
		Password:  emailCfg.SMTPPassword,
		FromEmail: emailCfg.FromEmail,
		FromName:  emailCfg.FromName,
		UseTLS:    true,
	}

	var sender EmailSender
	if smtpCfg.IsConfigured() {
		s, err := NewSMTPSender(smtpCfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create SMTP sender: %w", err)
		}
		sender = s
	} else {
		log.Warn("SMTP not configured, using mock email sender")
		sender = NewMockSender(log)
	}

	svc := &Service{
		sender:  sender,
		workers: kafkaCfg.Workers,
		log:     log,
	}

	if !kafkaCfg.Enabled {
		log.Info("Kafka disabled, emails will be sent synchronously")
		return svc, nil
	}

	producerCfg := DefaultProducerConfig()
	producerCfg.Brokers = kafkaCfg.Brokers
	producerCfg.Topic = kafkaCfg.Topic

	producer, err := NewKafkaProducer(producerCfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerCfg := DefaultConsumerConfig()
	consumerCfg.Brokers = kafkaCfg.Brokers
	consumerCfg.Topics = []string{kafkaCfg.Topic}
	consumerCfg.GroupID = kafkaCfg.GroupID

	consumer, err := NewKafkaConsumer(consumerCfg, sender, log)
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	svc.producer = producer
	svc.consumer = consumer
	return svc, nil
}

func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	if s.consumer != nil {
		workers := s.workers
		if workers <= 0 {
			workers = 1
		}
		if err := s.consumer.Start(ctx, workers); err != nil {
			return fmt.Errorf("failed to start consumers: %w", err)
		}
	}

	s.isRunning = true
	return nil
}

func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			s.log.Error("error stopping consumer", "error", err)
		}
	}
	if s.producer != nil {
		if err := s.producer.Close(); err != nil {
			s.log.Error("error closing producer", "error", err)
		}
	}

	s.isRunning = false
	return nil
}

// PublishVerificationEmail queues the account confirmation email.
func (s *Service) PublishVerificationEmail(ctx context.Context, email, username, link string) error {
	return s.publish(ctx, NewVerificationNotification(email, username, link))
}

// PublishWelcomeEmail queues the post-confirmation welcome email.
func (s *Service) PublishWelcomeEmail(ctx context.Context, email, username string) error {
	return s.publish(ctx, NewWelcomeNotification(email, username))
}

func (s *Service) publish(ctx context.Context, notification *EmailNotification) error {
	if s.producer != nil {
		return s.producer.Publish(ctx, notification)
	}
	return s.sender.Send(ctx, notification)
}
