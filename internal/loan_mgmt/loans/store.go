package loans

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"loantracker-backend/internal/platform/auth"
	"loantracker-backend/internal/platform/db"
)

// Repository is the persistence boundary of the loan log. Both Exec methods
// are all-or-nothing.
type Repository interface {
	ListRecords(ctx context.Context, onlyActive bool) ([]Record, error)
	ExecCreateLoan(ctx context.Context, l *NewLoan) error
	ExecReturn(ctx context.Context, r *BatchReturn) (int, error)
	DeleteRecord(ctx context.Context, recordULID string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type Store struct {
	db    *sql.DB
	check CredentialCheck
}

func NewStore(conn *sql.DB) *Store { return &Store{db: conn, check: auth.CheckPassword} }

func (s *Store) ListRecords(ctx context.Context, onlyActive bool) ([]Record, error) {
	sb := strings.Builder{}
	sb.WriteString(`
	SELECT
	r.record_id, r.record_ulid, r.holder_id, h.holder_ulid, h.name,
	i.item_ulid, i.name, i.extra, c.code,
	r.acquired_at, r.returned, r.returned_at, r.comment
	FROM loan_records r
	JOIN holders h ON h.holder_id = r.holder_id
	JOIN items i ON i.item_id = r.item_id
	LEFT JOIN categories c ON c.category_id = i.category_id
`)
	if onlyActive {
		sb.WriteString(` WHERE r.returned = 0`)
	}
	sb.WriteString(` ORDER BY r.acquired_at DESC, r.record_id`)

	rows, err := s.db.QueryContext(ctx, sb.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0, 64)
	for rows.Next() {
		var m Record
		if err := rows.Scan(
			&m.RecordID, &m.RecordULID, &m.HolderID, &m.HolderULID, &m.HolderName,
			&m.ItemULID, &m.ItemName, &m.ItemExtra, &m.CategoryCode,
			&m.AcquiredAt, &m.Returned, &m.ReturnedAt, &m.Comment,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// loanTx makes every statement read the latest committed rows, so a check run
// after a lock wait sees what the previous lock holder wrote.
var loanTx = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

// ExecCreateLoan locks the wanted items, verifies the holder, checks the items
// are free and inserts one record per line.
func (s *Store) ExecCreateLoan(ctx context.Context, l *NewLoan) error {
	return db.RunInTx(ctx, s.db, loanTx, func(ctx context.Context, tx db.DBTX) error {
		want := make([]string, len(l.Lines))
		for i, ln := range l.Lines {
			want[i] = ln.ItemULID
		}
		found, err := lockItems(ctx, tx, want)
		if err != nil {
			return err
		}

		var holderID uint64
		var hash string
		err = tx.QueryRowContext(ctx,
			`SELECT holder_id, password_hash FROM holders WHERE holder_ulid = ? FOR SHARE`, l.HolderULID,
		).Scan(&holderID, &hash)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound("holder not found")
		}
		if err != nil {
			return err
		}
		if !s.check(hash, l.Credential) {
			return ErrUnauthorized("holder credential rejected")
		}

		itemIDs, err := checkLendable(want, found)
		if err != nil {
			return err
		}

		const q = `
		INSERT INTO loan_records
		(record_ulid, holder_id, item_id, acquired_at, returned, returned_at, comment)
		VALUES
		(?, ?, ?, ?, 0, NULL, ?)`
		for _, ln := range l.Lines {
			if _, err := tx.ExecContext(ctx, q,
				ln.RecordULID, holderID, itemIDs[ln.ItemULID], l.AcquiredAt, nullStrOrNil(l.Comment),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// lockItems takes the item row locks first, then reads their active loans with
// a locking read so the answer reflects the latest commit.
func lockItems(ctx context.Context, tx db.DBTX, itemULIDs []string) ([]lockedItem, error) {
	rows, err := tx.QueryContext(ctx, `
	SELECT item_id, item_ulid
	FROM items
	WHERE item_ulid IN (`+placeholders(len(itemULIDs))+`)
	ORDER BY item_id
	FOR UPDATE`, toArgs(itemULIDs)...)
	if err != nil {
		return nil, err
	}
	var out []lockedItem
	for rows.Next() {
		var it lockedItem
		if err := rows.Scan(&it.ItemID, &it.ItemULID); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]any, len(out))
	for i, it := range out {
		ids[i] = it.ItemID
	}
	active, err := tx.QueryContext(ctx, `
	SELECT DISTINCT item_id
	FROM loan_records
	WHERE returned = 0 AND item_id IN (`+placeholders(len(ids))+`)
	FOR SHARE`, ids...)
	if err != nil {
		return nil, err
	}
	defer active.Close()

	onLoan := make(map[uint64]bool)
	for active.Next() {
		var id uint64
		if err := active.Scan(&id); err != nil {
			return nil, err
		}
		onLoan[id] = true
	}
	for i := range out {
		out[i].OnLoan = onLoan[out[i].ItemID]
	}
	return out, active.Err()
}

// ExecReturn locks every requested record, validates the whole batch and then
// marks all of them returned at one instant.
func (s *Store) ExecReturn(ctx context.Context, r *BatchReturn) (int, error) {
	var n int
	err := db.RunInTx(ctx, s.db, loanTx, func(ctx context.Context, tx db.DBTX) error {
		found, err := lockRecords(ctx, tx, r.RecordULIDs)
		if err != nil {
			return err
		}
		ids, err := checkReturnable(r.RecordULIDs, found, r.Credential, s.check)
		if err != nil {
			return err
		}

		args := make([]any, 0, len(ids)+1)
		args = append(args, r.ReturnedAt)
		for _, id := range ids {
			args = append(args, id)
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE loan_records SET returned = 1, returned_at = ?
			 WHERE returned = 0 AND record_id IN (`+placeholders(len(ids))+`)`, args...)
		if err != nil {
			return err
		}
		aff, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if int(aff) != len(ids) {
			return ErrConflict("records changed during return")
		}
		n = len(ids)
		return nil
	})
	return n, err
}

func lockRecords(ctx context.Context, tx db.DBTX, recordULIDs []string) ([]lockedRecord, error) {
	q := `
	SELECT r.record_id, r.record_ulid, r.holder_id, h.password_hash, r.returned
	FROM loan_records r
	JOIN holders h ON h.holder_id = r.holder_id
	WHERE r.record_ulid IN (` + placeholders(len(recordULIDs)) + `)
	FOR UPDATE`

	rows, err := tx.QueryContext(ctx, q, toArgs(recordULIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []lockedRecord
	for rows.Next() {
		var m lockedRecord
		if err := rows.Scan(&m.RecordID, &m.RecordULID, &m.HolderID, &m.PasswordHash, &m.Returned); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) DeleteRecord(ctx context.Context, recordULID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM loan_records WHERE record_ulid = ?`, recordULID)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return ErrNotFound("record not found")
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM loan_records`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// helpers

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toArgs(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func nullStrOrNil(ns sql.NullString) any {
	if ns.Valid {
		return ns.String
	}
	return nil
}
