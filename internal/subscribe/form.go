// Package subscribe implements the newsletter signup form: local validation,
// one call to the mailing-list provider, and the state the form renders next.
package subscribe

import (
	"context"
	"log/slog"
	"time"

	"github.com/devfolio/devfolio/internal/validation"
)

const (
	MsgInvalidEmail = "Please enter a valid email address!"
	MsgFailed       = "Something went wrong. Please try again later."
)

const DefaultTimeout = 10 * time.Second

const (
	StatusSuccess           = "success"
	StatusAlreadySubscribed = "already_subscribed"
)

// Result is the provider's answer. Status "success" means the address was
// accepted and Msg is shown to the visitor. Any other status is logged and
// the visitor sees MsgFailed.
type Result struct {
	Status string
	Msg    string
}

type Provider interface {
	Subscribe(ctx context.Context, email string) (Result, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, email string) (Result, error)

func (f ProviderFunc) Subscribe(ctx context.Context, email string) (Result, error) {
	return f(ctx, email)
}

type Phase int

const (
	Idle Phase = iota
	Invalid
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Invalid:
		return "invalid"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// State is what the form shows after a submission. At most one of Error and
// Success is set.
type State struct {
	Email   string
	Error   string
	Success string
}

func (s State) Phase() Phase {
	switch {
	case s.Success != "":
		return Succeeded
	case s.Error == MsgInvalidEmail:
		return Invalid
	case s.Error != "":
		return Failed
	default:
		return Idle
	}
}

type Form struct {
	Provider Provider
	Timeout  time.Duration
}

func NewForm(p Provider) *Form {
	return &Form{Provider: p, Timeout: DefaultTimeout}
}

// Submit validates email and, if it looks like an address, hands it to the
// provider exactly once. Provider failures are not retried.
func (f *Form) Submit(ctx context.Context, email string) State {
	email = validation.NormalizeEmail(email)

	err := validation.ValidateEmail(email)
	if err != nil {
		return State{Email: email, Error: MsgInvalidEmail}
	}

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := f.Provider.Subscribe(ctx, email)
	if err != nil {
		slog.Warn("subscription failed", "error", err)
		return State{Email: email, Error: MsgFailed}
	}
	if res.Status != StatusSuccess {
		slog.Warn("subscription rejected", "status", res.Status)
		return State{Email: email, Error: MsgFailed}
	}

	return State{Success: res.Msg}
}
