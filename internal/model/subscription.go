package model

import (
	"time"
)

// Subscriber is an email list member recorded before it is forwarded to the
// mailing-list provider.
type Subscriber struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Status    string    `db:"status"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const (
	SubscriberStatusPending    = "pending"
	SubscriberStatusSubscribed = "subscribed"
)

const (
	SubscriberSourceForm = "form"
)

func (s *Subscriber) IsSubscribed() bool {
	return s.Status == SubscriberStatusSubscribed
}
