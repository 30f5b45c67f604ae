package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	newsletterRepo "ciba/database/repository/newsletter"
	"ciba/metrics"
	"ciba/services/notification"
)

var (
	// ErrInvalidEmail marks a malformed subscription address.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrMailerNotConfigured is returned when no SMTP relay is wired in.
	ErrMailerNotConfigured = errors.New("mailer not configured")
)

// NewsletterService manages subscriptions and broadcasts.
type NewsletterService interface {
	Subscribe(ctx context.Context, email string) error
	Broadcast(ctx context.Context, subject, htmlBody string) (int, error)
}

// DefaultNewsletterService is the production implementation. Broadcast
// walks subscribers sequentially behind a rate limiter so a large list
// cannot flood the SMTP relay.
type DefaultNewsletterService struct {
	Repo    newsletterRepo.SubscriberRepository
	Mailer  notification.Mailer
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

// Subscribe records a recipient; repeated subscriptions are idempotent.
func (s *DefaultNewsletterService) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	if err := s.Repo.Upsert(ctx, email); err != nil {
		return fmt.Errorf("failed to store subscription: %w", err)
	}
	return nil
}

// Broadcast sends the newsletter to every subscriber, pacing sends and
// carrying on past per-recipient failures. It returns the delivered count.
func (s *DefaultNewsletterService) Broadcast(ctx context.Context, subject, htmlBody string) (int, error) {
	if s.Mailer == nil {
		return 0, ErrMailerNotConfigured
	}

	subscribers, err := s.Repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load subscribers: %w", err)
	}

	sent := 0
	for _, sub := range subscribers {
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				return sent, fmt.Errorf("broadcast interrupted: %w", err)
			}
		}
		if err := s.Mailer.Send(sub.Email, subject, htmlBody); err != nil {
			s.Logger.Warn("newsletter delivery failed",
				zap.String("email", sub.Email), zap.Error(err))
			metrics.IncNewsletterSent("failed")
			continue
		}
		metrics.IncNewsletterSent("ok")
		sent++
	}

	s.Logger.Info("newsletter broadcast finished",
		zap.Int("sent", sent), zap.Int("total", len(subscribers)))
	return sent, nil
}
