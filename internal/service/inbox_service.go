package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/pawscout-api/internal/domain"
	"github.com/phrazzld/pawscout-api/internal/platform/logger"
	"github.com/phrazzld/pawscout-api/internal/store"
)

// ContactService stores messages from the public contact form.
type ContactService struct {
	messages store.ContactStore
	logger   *slog.Logger
}

// NewContactService creates a ContactService.
func NewContactService(messages store.ContactStore, logger *slog.Logger) (*ContactService, error) {
	if messages == nil {
		return nil, fmt.Errorf("contact store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactService{
		messages: messages,
		logger:   logger.With(slog.String("component", "contact_service")),
	}, nil
}

// Send validates and stores a message.
func (s *ContactService) Send(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	m.Email = domain.NormalizeEmail(m.Email)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.CreatedAt = time.Now().UTC()

	if err := s.messages.Create(ctx, m); err != nil {
		log.Error("failed to store contact message", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	log.Info("contact message received", slog.Int64("message_id", m.ID))
	return m, nil
}

// List returns every message, newest first.
func (s *ContactService) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	msgs, err := s.messages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}

// Delete removes a message.
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("contact message deleted", slog.Int64("message_id", id))
	return nil
}

// SubscriptionService manages newsletter sign-ups.
type SubscriptionService struct {
	subscriptions store.SubscriptionStore
	logger        *slog.Logger
}

// NewSubscriptionService creates a SubscriptionService.
func NewSubscriptionService(subscriptions store.SubscriptionStore, logger *slog.Logger) (*SubscriptionService, error) {
	if subscriptions == nil {
		return nil, fmt.Errorf("subscription store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SubscriptionService{
		subscriptions: subscriptions,
		logger:        logger.With(slog.String("component", "subscription_service")),
	}, nil
}

// Subscribe signs up email. An address already on the list yields
// store.ErrEmailExists.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) (*domain.Subscription, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sub := &domain.Subscription{
		Email:     domain.NormalizeEmail(email),
		CreatedAt: time.Now().UTC(),
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.subscriptions.Create(ctx, sub); err != nil {
		if !errors.Is(err, store.ErrDuplicate) {
			log.Error("failed to store subscription", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	log.Info("subscription created", slog.Int64("subscription_id", sub.ID))
	return sub, nil
}

// List returns every subscription, newest first.
func (s *SubscriptionService) List(ctx context.Context) ([]*domain.Subscription, error) {
	subs, err := s.subscriptions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

// Delete removes a subscription.
func (s *SubscriptionService) Delete(ctx context.Context, id int64) error {
	if err := s.subscriptions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("subscription deleted", slog.Int64("subscription_id", id))
	return nil
}
