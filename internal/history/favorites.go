package history

import "context"

// FavoriteList is a holder's saved set of items, as served by the backend.
type FavoriteList struct {
	ID         string         `json:"list_id"`
	Name       string         `json:"name"`
	HolderID   string         `json:"holder_id"`
	HolderName string         `json:"holder_name"`
	Items      []FavoriteItem `json:"items"`
}

type FavoriteItem struct {
	ItemID       string  `json:"item_id"`
	CategoryCode string  `json:"category_code"`
	Name         string  `json:"name"`
	Extra        *string `json:"extra,omitempty"`
	OnLoan       bool    `json:"on_loan"`
}

// Available splits the list into items that can be lent and items on loan.
func (l FavoriteList) Available() (free, onLoan []FavoriteItem) {
	for _, it := range l.Items {
		if it.OnLoan {
			onLoan = append(onLoan, it)
		} else {
			free = append(free, it)
		}
	}
	return free, onLoan
}

// BorrowFavorites lends every available item of list to its holder as one
// transaction. Items on loan are skipped and returned to the caller.
func (s *Session) BorrowFavorites(ctx context.Context, list FavoriteList, credential string, comment *string) (LoanResult, []FavoriteItem, error) {
	free, skipped := list.Available()
	if len(free) == 0 {
		return LoanResult{}, skipped, validationf("no item of %q is available", list.Name)
	}
	ids := make([]string, len(free))
	for i, it := range free {
		ids[i] = it.ItemID
	}
	res, err := s.SubmitLoan(ctx, LoanRequest{
		HolderID:         list.HolderID,
		HolderCredential: credential,
		ItemIDs:          ids,
		Comment:          comment,
	})
	return res, skipped, err
}
