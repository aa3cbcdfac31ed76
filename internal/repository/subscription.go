package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/devfolio/devfolio/internal/model"
)

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrAlreadySubscribed  = errors.New("email is already subscribed")
)

type SubscriberRepository interface {
	Create(ctx context.Context, sub *model.Subscriber) error
	ByEmail(ctx context.Context, email string) (*model.Subscriber, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type subscriberRepository struct {
	db *sqlx.DB
}

func NewSubscriberRepository(db *sqlx.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, sub *model.Subscriber) error {
	query := `
		INSERT INTO subscribers (id, email, status, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.Email,
		sub.Status,
		sub.Source,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrAlreadySubscribed
	}
	return err
}

func (r *subscriberRepository) ByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	sub := &model.Subscriber{}
	query := `SELECT * FROM subscribers WHERE email = $1`

	err := r.db.GetContext(ctx, sub, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubscriberNotFound
	}
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (r *subscriberRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE subscribers SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSubscriberNotFound
	}

	return nil
}

// isUniqueViolation matches postgres unique_violation (23505) and the sqlite
// "UNIQUE constraint failed" error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
