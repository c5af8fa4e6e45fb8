package holders

import (
	"database/sql"
	"time"
)

// Holder is a registered trainer who can take items on loan.
type Holder struct {
	HolderID     uint64
	HolderULID   string
	Name         string
	Email        sql.NullString
	PasswordHash string
	CreatedAt    time.Time
	ActiveLoans  int
}
