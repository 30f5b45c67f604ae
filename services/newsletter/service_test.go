package newsletter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ciba/models"
)

type fakeSubscriberRepo struct {
	upserts   []string
	upsertErr error
	listed    []models.Subscriber
	listErr   error
}

func (f *fakeSubscriberRepo) EnsureIndexes() error { return nil }

func (f *fakeSubscriberRepo) Upsert(ctx context.Context, email string) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, email)
	return nil
}

func (f *fakeSubscriberRepo) List(ctx context.Context) ([]models.Subscriber, error) {
	return f.listed, f.listErr
}

type fakeMailer struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	if f.failFor[to] {
		return errors.New("smtp said no")
	}
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeMailer) SendBookingConfirmation(b *models.Booking) error { return nil }

func TestSubscribeNormalizesEmail(t *testing.T) {
	repo := &fakeSubscriberRepo{}
	svc := &DefaultNewsletterService{Repo: repo, Logger: zap.NewNop()}

	require.NoError(t, svc.Subscribe(context.Background(), "  Founder@Startup.COM "))
	require.Len(t, repo.upserts, 1)
	assert.Equal(t, "founder@startup.com", repo.upserts[0])
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	svc := &DefaultNewsletterService{Repo: &fakeSubscriberRepo{}, Logger: zap.NewNop()}

	for _, email := range []string{"", "no-at-sign"} {
		err := svc.Subscribe(context.Background(), email)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	}
}

func TestSubscribeStoreFailure(t *testing.T) {
	repo := &fakeSubscriberRepo{upsertErr: errors.New("mongo down")}
	svc := &DefaultNewsletterService{Repo: repo, Logger: zap.NewNop()}

	err := svc.Subscribe(context.Background(), "founder@startup.com")
	require.Error(t, err)
	// A store outage must not look like caller input trouble.
	assert.NotErrorIs(t, err, ErrInvalidEmail)
}

func TestBroadcastWithoutMailer(t *testing.T) {
	repo := &fakeSubscriberRepo{
		listed: []models.Subscriber{{Email: "a@example.com"}},
	}
	svc := &DefaultNewsletterService{Repo: repo, Logger: zap.NewNop()}

	sent, err := svc.Broadcast(context.Background(), "CIBA monthly", "<p>news</p>")
	require.ErrorIs(t, err, ErrMailerNotConfigured)
	assert.Zero(t, sent)
}

func TestBroadcastContinuesPastFailures(t *testing.T) {
	repo := &fakeSubscriberRepo{
		listed: []models.Subscriber{
			{Email: "a@example.com"},
			{Email: "b@example.com"},
			{Email: "c@example.com"},
		},
	}
	mailer := &fakeMailer{failFor: map[string]bool{"b@example.com": true}}
	svc := &DefaultNewsletterService{Repo: repo, Mailer: mailer, Logger: zap.NewNop()}

	sent, err := svc.Broadcast(context.Background(), "CIBA monthly", "<p>news</p>")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []string{"a@example.com", "c@example.com"}, mailer.sent)
}

func TestBroadcastListFailure(t *testing.T) {
	repo := &fakeSubscriberRepo{listErr: errors.New("mongo down")}
	svc := &DefaultNewsletterService{Repo: repo, Mailer: &fakeMailer{}, Logger: zap.NewNop()}

	_, err := svc.Broadcast(context.Background(), "subject", "body")
	assert.Error(t, err)
}
