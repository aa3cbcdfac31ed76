package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/devfolio/devfolio/internal/db"
	"github.com/devfolio/devfolio/internal/model"
	"github.com/devfolio/devfolio/internal/repository"
	"github.com/devfolio/devfolio/internal/subscribe"
)

func newTestEmailService(t *testing.T) (*EmailService, repository.SubscriberRepository) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "subscribers.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.Migrate(ctx, conn.DB, "sqlite"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := repository.NewSubscriberRepository(conn)
	return NewEmailService(repo, EmailOptions{SiteName: "Ana", SiteURL: "http://localhost:8090", IsDev: true}), repo
}

func TestEmailService_Subscribe(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestEmailService(t)

	res, err := svc.Subscribe(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if res.Status != subscribe.StatusSuccess || res.Msg != MsgSubscribed {
		t.Errorf("result = %+v", res)
	}

	sub, err := repo.ByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("ByEmail: %v", err)
	}
	if !sub.IsSubscribed() {
		t.Errorf("status = %q", sub.Status)
	}

	res, err = svc.Subscribe(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("second Subscribe: %v", err)
	}
	if res.Status != subscribe.StatusAlreadySubscribed || res.Msg != "" {
		t.Errorf("duplicate result = %+v", res)
	}
}

func TestEmailService_FailedContactStaysPending(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestEmailService(t)

	calls := 0
	svc.addContact = func(ctx context.Context, email string) error {
		calls++
		if calls == 1 {
			return errors.New("resend unavailable")
		}
		return nil
	}

	if _, err := svc.Subscribe(ctx, "ana@example.com"); err == nil {
		t.Fatal("expected error from failing provider")
	}
	sub, err := repo.ByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("ByEmail: %v", err)
	}
	if sub.Status != model.SubscriberStatusPending {
		t.Errorf("status = %q, want pending", sub.Status)
	}

	res, err := svc.Subscribe(ctx, "ana@example.com")
	if err != nil || res.Status != subscribe.StatusSuccess {
		t.Fatalf("retry = %+v, %v", res, err)
	}
	if calls != 2 {
		t.Errorf("contact calls = %d, want 2", calls)
	}
}

func TestEmailService_WelcomeEmail(t *testing.T) {
	svc, _ := newTestEmailService(t)
	svc.opts.FromEmail = "hello@example.com"

	var to, subject string
	svc.sendEmail = func(ctx context.Context, addr, subj, body string) error {
		to, subject = addr, subj
		return errors.New("smtp down")
	}

	res, err := svc.Subscribe(context.Background(), "ana@example.com")
	if err != nil || res.Status != subscribe.StatusSuccess {
		t.Fatalf("welcome failure must not fail subscription: %+v, %v", res, err)
	}
	if to != "ana@example.com" || subject != "Thanks for subscribing to Ana" {
		t.Errorf("welcome to=%q subject=%q", to, subject)
	}
}
