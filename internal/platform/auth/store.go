package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"loantracker-backend/internal/platform/db"
)

// Account is an operator allowed to call the privileged routes.
type Account struct {
	ID           string
	PasswordHash string
	Role         string
	IsDisabled   bool
	CreatedAt    time.Time
}

type AccountStore interface {
	// Find returns ErrNotFound when id is unknown.
	Find(ctx context.Context, id string) (*Account, error)
	// Insert returns ErrAlreadyExists when id is taken.
	Insert(ctx context.Context, a Account) error
	Remove(ctx context.Context, id string) error
}

type Store struct{ db db.DBTX }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

func (s *Store) Find(ctx context.Context, id string) (*Account, error) {
	var a Account
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password_hash, role, is_disabled, created_at FROM auth_accounts WHERE id = ?`, id,
	).Scan(&a.ID, &a.PasswordHash, &a.Role, &a.IsDisabled, &a.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}
	return &a, nil
}

func (s *Store) Insert(ctx context.Context, a Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO auth_accounts (id, password_hash, role, is_disabled, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.PasswordHash, a.Role, a.IsDisabled, a.CreatedAt,
	)
	if db.IsDuplicateKey(err) {
		return ErrAlreadyExists
	}
	return err
}

func (s *Store) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM auth_accounts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
