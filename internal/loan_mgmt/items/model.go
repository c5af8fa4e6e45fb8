package items

import (
	"database/sql"
	"time"
)

// Category groups items; the seeded categories are the clans.
type Category struct {
	CategoryID uint64
	Code       string
	Name       string
	Color      sql.NullString
}

type Item struct {
	ItemID       uint64
	ItemULID     string
	CategoryID   uint64
	CategoryCode string
	Name         string
	Extra        sql.NullString
	CreatedAt    time.Time
	OnLoan       bool
}
