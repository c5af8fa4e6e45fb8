package loans

import (
	"database/sql"
	"time"
)

// Record is one row of loan_records joined with its holder, item and category.
type Record struct {
	RecordID     uint64
	RecordULID   string
	HolderID     uint64
	HolderULID   string
	HolderName   string
	ItemULID     string
	ItemName     string
	ItemExtra    sql.NullString
	CategoryCode sql.NullString
	AcquiredAt   time.Time
	Returned     bool
	ReturnedAt   sql.NullTime
	Comment      sql.NullString
}

// NewLoan is one loan transaction: every line shares AcquiredAt and Comment.
type NewLoan struct {
	HolderULID string
	Credential string
	Lines      []LoanLine
	AcquiredAt time.Time
	Comment    sql.NullString
}

type LoanLine struct {
	ItemULID   string
	RecordULID string
}

type BatchReturn struct {
	RecordULIDs []string
	Credential  string
	ReturnedAt  time.Time
}

// rows locked inside the write transactions
type lockedItem struct {
	ItemID   uint64
	ItemULID string
	OnLoan   bool
}

type lockedRecord struct {
	RecordID     uint64
	RecordULID   string
	HolderID     uint64
	PasswordHash string
	Returned     bool
}
