package items

import (
	"context"
	"database/sql"
	"errors"

	"loantracker-backend/internal/platform/db"
)

type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategoryByCode(ctx context.Context, code string) (*Category, error)
	ListItemsByCategory(ctx context.Context, categoryID uint64) ([]Item, error)
	CreateItem(ctx context.Context, it *Item) error
	DeleteItem(ctx context.Context, itemULID string) error
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category_id, code, name, color FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]Category, 0, 16)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.CategoryID, &c.Code, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (s *Store) GetCategoryByCode(ctx context.Context, code string) (*Category, error) {
	var c Category
	err := s.db.QueryRowContext(ctx,
		`SELECT category_id, code, name, color FROM categories WHERE code = ?`, code,
	).Scan(&c.CategoryID, &c.Code, &c.Name, &c.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound("category not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListItemsByCategory(ctx context.Context, categoryID uint64) ([]Item, error) {
	const q = `
	SELECT i.item_id, i.item_ulid, i.category_id, c.code, i.name, i.extra, i.created_at,
	       EXISTS (SELECT 1 FROM loan_records r WHERE r.item_id = i.item_id AND r.returned = 0) AS on_loan
	FROM items i
	JOIN categories c ON c.category_id = i.category_id
	WHERE i.category_id = ?
	ORDER BY i.name`

	rows, err := s.db.QueryContext(ctx, q, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]Item, 0, 32)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ItemID, &it.ItemULID, &it.CategoryID, &it.CategoryCode,
			&it.Name, &it.Extra, &it.CreatedAt, &it.OnLoan); err != nil {
			return nil, err
		}
		res = append(res, it)
	}
	return res, rows.Err()
}

func (s *Store) CreateItem(ctx context.Context, it *Item) error {
	const q = `
	INSERT INTO items (item_ulid, category_id, name, extra, created_at)
	VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, it.ItemULID, it.CategoryID, it.Name, nullStrOrNil(it.Extra), it.CreatedAt)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return ErrConflict("item already exists in this category")
		}
		return err
	}
	id, _ := res.LastInsertId()
	it.ItemID = uint64(id)
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, itemULID string) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		var itemID uint64
		err := tx.QueryRowContext(ctx, `SELECT item_id FROM items WHERE item_ulid = ? FOR UPDATE`, itemULID).Scan(&itemID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound("item not found")
		}
		if err != nil {
			return err
		}

		var onLoan bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM loan_records WHERE item_id = ? AND returned = 0)`, itemID,
		).Scan(&onLoan); err != nil {
			return err
		}
		if onLoan {
			return ErrConflict("item is on loan")
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM loan_records WHERE item_id = ?`, itemID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM items WHERE item_id = ?`, itemID)
		if db.IsForeignKeyViolation(err) {
			return ErrConflict("item is still referenced")
		}
		return err
	})
}

func nullStrOrNil(ns sql.NullString) any {
	if ns.Valid {
		return ns.String
	}
	return nil
}
