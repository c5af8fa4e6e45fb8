package holders

import (
	"context"
	"database/sql"
	"errors"

	"loantracker-backend/internal/platform/db"
)

// Repository is the persistence boundary of the holder registry.
type Repository interface {
	List(ctx context.Context) ([]Holder, error)
	GetByULID(ctx context.Context, holderULID string) (*Holder, error)
	Create(ctx context.Context, h *Holder) error
	Delete(ctx context.Context, holderULID string) error
}

type Store struct {
	db *sql.DB
}

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

func (s *Store) List(ctx context.Context) ([]Holder, error) {
	const q = `
	SELECT h.holder_id, h.holder_ulid, h.name, h.email, h.password_hash, h.created_at,
	       COALESCE(a.n, 0) AS active_loans
	FROM holders h
	LEFT JOIN (
	  SELECT holder_id, COUNT(*) AS n FROM loan_records WHERE returned = 0 GROUP BY holder_id
	) a ON a.holder_id = h.holder_id
	ORDER BY h.name`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Holder, 0, 32)
	for rows.Next() {
		var h Holder
		if err := rows.Scan(&h.HolderID, &h.HolderULID, &h.Name, &h.Email, &h.PasswordHash, &h.CreatedAt, &h.ActiveLoans); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) GetByULID(ctx context.Context, holderULID string) (*Holder, error) {
	const q = `
	SELECT holder_id, holder_ulid, name, email, password_hash, created_at
	FROM holders WHERE holder_ulid = ?`
	var h Holder
	err := s.db.QueryRowContext(ctx, q, holderULID).Scan(
		&h.HolderID, &h.HolderULID, &h.Name, &h.Email, &h.PasswordHash, &h.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound("holder not found")
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Store) Create(ctx context.Context, h *Holder) error {
	const q = `
	INSERT INTO holders (holder_ulid, name, email, password_hash, created_at)
	VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, h.HolderULID, h.Name, nullStrOrNil(h.Email), h.PasswordHash, h.CreatedAt)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return ErrConflict("holder name already registered")
		}
		return err
	}
	id, _ := res.LastInsertId()
	h.HolderID = uint64(id)
	return nil
}

// Delete refuses while the holder still has items on loan; returned history
// goes with the holder.
func (s *Store) Delete(ctx context.Context, holderULID string) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		var holderID uint64
		err := tx.QueryRowContext(ctx,
			`SELECT holder_id FROM holders WHERE holder_ulid = ? FOR UPDATE`, holderULID,
		).Scan(&holderID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound("holder not found")
		}
		if err != nil {
			return err
		}

		var active int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM loan_records WHERE holder_id = ? AND returned = 0`, holderID,
		).Scan(&active); err != nil {
			return err
		}
		if active > 0 {
			return ErrConflict("holder has items on loan")
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM loan_records WHERE holder_id = ?`, holderID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM holders WHERE holder_id = ?`, holderID)
		return err
	})
}

func nullStrOrNil(ns sql.NullString) any {
	if ns.Valid {
		return ns.String
	}
	return nil
}
