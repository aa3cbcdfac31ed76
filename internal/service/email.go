package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"

	"github.com/devfolio/devfolio/internal/model"
	"github.com/devfolio/devfolio/internal/repository"
	"github.com/devfolio/devfolio/internal/subscribe"
)

const MsgSubscribed = "Thank you for subscribing!"

var ErrEmailNotConfigured = errors.New("email service not configured (missing RESEND_API_KEY)")

var alreadySubscribed = subscribe.Result{Status: subscribe.StatusAlreadySubscribed}

type EmailOptions struct {
	APIKey     string
	AudienceID string
	FromEmail  string
	SiteName   string
	SiteURL    string
	IsDev      bool
}

// EmailService is the mailing-list provider. Every address is recorded locally
// first and then added as a contact to the Resend audience. In development, or
// without an API key, Resend is never called and the contact is only logged.
type EmailService struct {
	subscribers repository.SubscriberRepository
	opts        EmailOptions

	addContact func(ctx context.Context, email string) error
	sendEmail  func(ctx context.Context, to, subject, body string) error
}

var _ subscribe.Provider = (*EmailService)(nil)

func NewEmailService(subscribers repository.SubscriberRepository, opts EmailOptions) *EmailService {
	s := &EmailService{subscribers: subscribers, opts: opts}

	if opts.APIKey == "" || opts.IsDev {
		s.addContact = s.logContact
		s.sendEmail = s.logEmail
		return s
	}

	client := resend.NewClient(opts.APIKey)
	s.addContact = func(ctx context.Context, email string) error {
		if opts.AudienceID == "" {
			return fmt.Errorf("%w: no audience configured", ErrEmailNotConfigured)
		}
		_, err := client.Contacts.CreateWithContext(ctx, &resend.CreateContactRequest{
			Email:      email,
			AudienceId: opts.AudienceID,
		})
		return err
	}
	s.sendEmail = func(ctx context.Context, to, subject, body string) error {
		_, err := client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
			From:    opts.FromEmail,
			To:      []string{to},
			Subject: subject,
			Text:    body,
		})
		return err
	}
	return s
}

// Subscribe records email and forwards it to the audience. An address that is
// already subscribed gets a non-success result; one left pending by an
// earlier failure is forwarded again.
func (s *EmailService) Subscribe(ctx context.Context, email string) (subscribe.Result, error) {
	sub, err := s.subscribers.ByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrSubscriberNotFound):
		sub, err = s.record(ctx, email)
		if errors.Is(err, repository.ErrAlreadySubscribed) {
			return alreadySubscribed, nil
		}
		if err != nil {
			return subscribe.Result{}, err
		}
	case err != nil:
		return subscribe.Result{}, fmt.Errorf("failed to look up subscriber: %w", err)
	case sub.IsSubscribed():
		return alreadySubscribed, nil
	}

	err = s.addContact(ctx, email)
	if err != nil {
		return subscribe.Result{}, fmt.Errorf("failed to add contact: %w", err)
	}

	err = s.subscribers.UpdateStatus(ctx, sub.ID, model.SubscriberStatusSubscribed)
	if err != nil {
		return subscribe.Result{}, fmt.Errorf("failed to update subscriber: %w", err)
	}
	slog.Info("newsletter subscription successful", "email", email)

	s.sendWelcome(ctx, email)

	return subscribe.Result{Status: subscribe.StatusSuccess, Msg: MsgSubscribed}, nil
}

func (s *EmailService) record(ctx context.Context, email string) (*model.Subscriber, error) {
	now := time.Now().UTC()
	sub := &model.Subscriber{
		ID:        uuid.NewString(),
		Email:     email,
		Status:    model.SubscriberStatusPending,
		Source:    model.SubscriberSourceForm,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.subscribers.Create(ctx, sub)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// sendWelcome is best effort: the subscription already succeeded.
func (s *EmailService) sendWelcome(ctx context.Context, email string) {
	if s.opts.FromEmail == "" {
		return
	}

	subject, body := welcomeEmailTemplate(s.opts.SiteName, s.opts.SiteURL)
	err := s.sendEmail(ctx, email, subject, body)
	if err != nil {
		slog.Warn("welcome email failed", "error", err, "to", email)
	}
}

func (s *EmailService) logContact(ctx context.Context, email string) error {
	slog.Info("newsletter subscription (dev mode)", "email", email, "audience", s.opts.AudienceID)
	return nil
}

func (s *EmailService) logEmail(ctx context.Context, to, subject, body string) error {
	slog.Info("email sent (dev mode)", "type", "welcome", "to", to, "subject", subject)
	return nil
}
