package favorites

import (
	"database/sql"
	"time"
)

// List is a named set of items a holder saved to borrow together.
type List struct {
	ListID     uint64
	ListULID   string
	HolderID   uint64
	HolderULID string
	HolderName string
	HolderHash string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ItemCount  int
	Entries    []Entry
}

// Entry is one item of a list, with its current loan state.
type Entry struct {
	ItemULID     string
	CategoryCode string
	Name         string
	Extra        sql.NullString
	OnLoan       bool
}
