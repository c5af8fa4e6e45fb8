package items

import "time"

type CategoryResponse struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

type CreateItemRequest struct {
	Name  string  `json:"name"`
	Extra *string `json:"extra,omitempty"`
}

type ItemResponse struct {
	ItemID       string    `json:"item_id"`
	CategoryCode string    `json:"category_code"`
	Name         string    `json:"name"`
	Extra        *string   `json:"extra,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	OnLoan       bool      `json:"on_loan"`
}

type ListItemsResult struct {
	Category CategoryResponse `json:"category"`
	Items    []ItemResponse   `json:"items"`
	Total    int              `json:"total"`
	OnLoan   int              `json:"on_loan"`
}
