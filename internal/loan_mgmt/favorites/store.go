package favorites

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"loantracker-backend/internal/platform/db"
)

// Repository is the persistence boundary of saved item lists.
type Repository interface {
	List(ctx context.Context) ([]List, error)
	GetByULID(ctx context.Context, listULID string) (*List, error)
	HolderCredential(ctx context.Context, holderULID string) (holderID uint64, hash string, err error)
	Create(ctx context.Context, l *List, itemULIDs []string) error
	Update(ctx context.Context, l *List, itemULIDs []string) error
	Delete(ctx context.Context, listULID string) error
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

func (s *Store) List(ctx context.Context) ([]List, error) {
	const q = `
	SELECT f.list_id, f.list_ulid, f.name, f.created_at, f.updated_at,
	       h.holder_id, h.holder_ulid, h.name,
	       (SELECT COUNT(*) FROM favorite_list_items e WHERE e.list_id = f.list_id) AS item_count
	FROM favorite_lists f
	JOIN holders h ON h.holder_id = f.holder_id
	ORDER BY f.updated_at DESC, f.list_id DESC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]List, 0, 16)
	for rows.Next() {
		var l List
		if err := rows.Scan(&l.ListID, &l.ListULID, &l.Name, &l.CreatedAt, &l.UpdatedAt,
			&l.HolderID, &l.HolderULID, &l.HolderName, &l.ItemCount); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) GetByULID(ctx context.Context, listULID string) (*List, error) {
	const q = `
	SELECT f.list_id, f.list_ulid, f.name, f.created_at, f.updated_at,
	       h.holder_id, h.holder_ulid, h.name, h.password_hash
	FROM favorite_lists f
	JOIN holders h ON h.holder_id = f.holder_id
	WHERE f.list_ulid = ?`
	var l List
	err := s.db.QueryRowContext(ctx, q, listULID).Scan(
		&l.ListID, &l.ListULID, &l.Name, &l.CreatedAt, &l.UpdatedAt,
		&l.HolderID, &l.HolderULID, &l.HolderName, &l.HolderHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound("list not found")
	}
	if err != nil {
		return nil, err
	}

	const qe = `
	SELECT i.item_ulid, c.code, i.name, i.extra,
	       EXISTS (SELECT 1 FROM loan_records r WHERE r.item_id = i.item_id AND r.returned = 0) AS on_loan
	FROM favorite_list_items e
	JOIN items i ON i.item_id = e.item_id
	JOIN categories c ON c.category_id = i.category_id
	WHERE e.list_id = ?
	ORDER BY e.position`
	rows, err := s.db.QueryContext(ctx, qe, l.ListID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ItemULID, &e.CategoryCode, &e.Name, &e.Extra, &e.OnLoan); err != nil {
			return nil, err
		}
		l.Entries = append(l.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	l.ItemCount = len(l.Entries)
	return &l, nil
}

func (s *Store) HolderCredential(ctx context.Context, holderULID string) (uint64, string, error) {
	var id uint64
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT holder_id, password_hash FROM holders WHERE holder_ulid = ?`, holderULID,
	).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", ErrNotFound("holder not found")
	}
	if err != nil {
		return 0, "", err
	}
	return id, hash, nil
}

func (s *Store) Create(ctx context.Context, l *List, itemULIDs []string) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		ids, err := resolveItems(ctx, tx, itemULIDs)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
		INSERT INTO favorite_lists (list_ulid, holder_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`, l.ListULID, l.HolderID, l.Name, l.CreatedAt, l.UpdatedAt)
		if err != nil {
			if db.IsDuplicateKey(err) {
				return ErrConflict("holder already has a list with this name")
			}
			return err
		}
		id, _ := res.LastInsertId()
		l.ListID = uint64(id)
		l.ItemCount = len(ids)
		return insertEntries(ctx, tx, l.ListID, ids)
	})
}

// Update replaces the name and the entries of l.ListULID.
func (s *Store) Update(ctx context.Context, l *List, itemULIDs []string) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		err := tx.QueryRowContext(ctx,
			`SELECT list_id FROM favorite_lists WHERE list_ulid = ? FOR UPDATE`, l.ListULID,
		).Scan(&l.ListID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound("list not found")
		}
		if err != nil {
			return err
		}

		ids, err := resolveItems(ctx, tx, itemULIDs)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE favorite_lists SET name = ?, updated_at = ? WHERE list_id = ?`,
			l.Name, l.UpdatedAt, l.ListID,
		); err != nil {
			if db.IsDuplicateKey(err) {
				return ErrConflict("holder already has a list with this name")
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM favorite_list_items WHERE list_id = ?`, l.ListID); err != nil {
			return err
		}
		l.ItemCount = len(ids)
		return insertEntries(ctx, tx, l.ListID, ids)
	})
}

func (s *Store) Delete(ctx context.Context, listULID string) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		var listID uint64
		err := tx.QueryRowContext(ctx,
			`SELECT list_id FROM favorite_lists WHERE list_ulid = ? FOR UPDATE`, listULID,
		).Scan(&listID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound("list not found")
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM favorite_list_items WHERE list_id = ?`, listID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM favorite_lists WHERE list_id = ?`, listID)
		return err
	})
}

// resolveItems maps item ULIDs to internal ids in the given order.
func resolveItems(ctx context.Context, tx db.DBTX, itemULIDs []string) ([]uint64, error) {
	args := make([]any, len(itemULIDs))
	for i, u := range itemULIDs {
		args[i] = u
	}
	q := `SELECT item_id, item_ulid FROM items WHERE item_ulid IN (` + placeholders(len(itemULIDs)) + `)`
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]uint64, len(itemULIDs))
	for rows.Next() {
		var id uint64
		var u string
		if err := rows.Scan(&id, &u); err != nil {
			return nil, err
		}
		found[u] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(itemULIDs))
	for _, u := range itemULIDs {
		id, ok := found[u]
		if !ok {
			return nil, ErrNotFound("item not found: " + u)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func insertEntries(ctx context.Context, tx db.DBTX, listID uint64, itemIDs []uint64) error {
	for pos, id := range itemIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO favorite_list_items (list_id, item_id, position) VALUES (?, ?, ?)`,
			listID, id, pos,
		); err != nil {
			return err
		}
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
