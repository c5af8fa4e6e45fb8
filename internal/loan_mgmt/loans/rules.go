package loans

import (
	"fmt"
	"strings"
)

// CredentialCheck reports whether password matches the stored hash.
type CredentialCheck func(hash, password string) bool

// checkLendable resolves the wanted items against the locked rows. Every item
// must exist and none may be on loan.
func checkLendable(want []string, found []lockedItem) (map[string]uint64, error) {
	byULID := make(map[string]lockedItem, len(found))
	for _, it := range found {
		byULID[it.ItemULID] = it
	}

	var missing, onLoan []string
	ids := make(map[string]uint64, len(want))
	for _, w := range want {
		it, ok := byULID[w]
		switch {
		case !ok:
			missing = append(missing, w)
		case it.OnLoan:
			onLoan = append(onLoan, w)
		default:
			ids[w] = it.ItemID
		}
	}
	if len(missing) > 0 {
		return nil, ErrNotFound("item not found: " + strings.Join(missing, ", "))
	}
	if len(onLoan) > 0 {
		return nil, ErrConflict("item already on loan: " + strings.Join(onLoan, ", "))
	}
	return ids, nil
}

// checkReturnable validates a batch return: existence, single ownership, the
// credential, and only then whether each record is still on loan.
func checkReturnable(want []string, found []lockedRecord, credential string, check CredentialCheck) ([]uint64, error) {
	byULID := make(map[string]lockedRecord, len(found))
	for _, r := range found {
		byULID[r.RecordULID] = r
	}

	var missing []string
	holders := make(map[uint64]string)
	for _, w := range want {
		r, ok := byULID[w]
		if !ok {
			missing = append(missing, w)
			continue
		}
		holders[r.HolderID] = r.PasswordHash
	}
	if len(missing) > 0 {
		return nil, ErrNotFound("record not found: " + strings.Join(missing, ", "))
	}
	if len(holders) != 1 {
		return nil, ErrInvalid(fmt.Sprintf("records belong to %d different holders", len(holders)))
	}
	for _, hash := range holders {
		if !check(hash, credential) {
			return nil, ErrUnauthorized("holder credential rejected")
		}
	}

	var returned []string
	ids := make([]uint64, 0, len(want))
	for _, w := range want {
		r := byULID[w]
		if r.Returned {
			returned = append(returned, w)
			continue
		}
		ids = append(ids, r.RecordID)
	}
	if len(returned) > 0 {
		return nil, ErrConflict("record already returned: " + strings.Join(returned, ", "))
	}
	return ids, nil
}
