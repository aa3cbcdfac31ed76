package subscribe

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type stubProvider struct {
	calls  int
	emails []string
	result Result
	err    error
}

func (s *stubProvider) Subscribe(ctx context.Context, email string) (Result, error) {
	s.calls++
	s.emails = append(s.emails, email)
	return s.result, s.err
}

func TestSubmit_InvalidEmailSkipsProvider(t *testing.T) {
	for _, email := range []string{"", "   ", "not-an-email", "a@b", "a b@c.d"} {
		p := &stubProvider{result: Result{Status: StatusSuccess}}
		st := NewForm(p).Submit(context.Background(), email)

		if st.Error != MsgInvalidEmail {
			t.Errorf("%q: error = %q", email, st.Error)
		}
		if st.Phase() != Invalid {
			t.Errorf("%q: phase = %s", email, st.Phase())
		}
		if p.calls != 0 {
			t.Errorf("%q: provider called %d times", email, p.calls)
		}
	}
}

func TestSubmit_Success(t *testing.T) {
	p := &stubProvider{result: Result{Status: StatusSuccess, Msg: "Thank you for subscribing!"}}
	st := NewForm(p).Submit(context.Background(), "  ana@example.com ")

	if p.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", p.calls)
	}
	if p.emails[0] != "ana@example.com" {
		t.Errorf("email = %q, want trimmed", p.emails[0])
	}
	if st.Success != "Thank you for subscribing!" || st.Error != "" {
		t.Errorf("state = %+v", st)
	}
	if st.Phase() != Succeeded {
		t.Errorf("phase = %s", st.Phase())
	}
}

func TestSubmit_ProviderFailures(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		err    error
	}{
		{"error", Result{}, errors.New("connection refused")},
		{"already subscribed", Result{Status: StatusAlreadySubscribed}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProvider{result: tt.result, err: tt.err}
			st := NewForm(p).Submit(context.Background(), "ana@example.com")

			if p.calls != 1 {
				t.Errorf("provider calls = %d, want 1 (no retry)", p.calls)
			}
			if st.Error != MsgFailed || st.Success != "" {
				t.Errorf("state = %+v", st)
			}
			if st.Email != "ana@example.com" {
				t.Errorf("email not kept for retry: %q", st.Email)
			}
			if st.Phase() != Failed {
				t.Errorf("phase = %s", st.Phase())
			}
		})
	}
}

func TestSubmit_LogsRejectionStatus(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	p := &stubProvider{result: Result{Status: StatusAlreadySubscribed}}
	NewForm(p).Submit(context.Background(), "ana@example.com")

	if !strings.Contains(buf.String(), "status=already_subscribed") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestSubmit_ProviderGetsDeadline(t *testing.T) {
	var deadline time.Time
	var ok bool
	p := ProviderFunc(func(ctx context.Context, email string) (Result, error) {
		deadline, ok = ctx.Deadline()
		return Result{Status: StatusSuccess, Msg: "ok"}, nil
	})

	f := NewForm(p)
	f.Timeout = time.Minute
	f.Submit(context.Background(), "ana@example.com")

	if !ok {
		t.Fatal("provider context has no deadline")
	}
	if time.Until(deadline) > time.Minute {
		t.Errorf("deadline too far: %v", time.Until(deadline))
	}
}

func TestStatePhaseIdle(t *testing.T) {
	if (State{}).Phase() != Idle {
		t.Error("zero state should be idle")
	}
}
