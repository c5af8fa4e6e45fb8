package favorites

import "time"

type CreateListRequest struct {
	HolderID       string   `json:"holder_id"`
	HolderPassword string   `json:"holder_password"`
	Name           string   `json:"name"`
	ItemIDs        []string `json:"item_ids"`
}

type UpdateListRequest struct {
	HolderPassword string   `json:"holder_password"`
	Name           string   `json:"name"`
	ItemIDs        []string `json:"item_ids"`
}

type DeleteListRequest struct {
	HolderPassword string `json:"holder_password"`
}

type ListSummary struct {
	ListID     string    `json:"list_id"`
	Name       string    `json:"name"`
	HolderID   string    `json:"holder_id"`
	HolderName string    `json:"holder_name"`
	ItemCount  int       `json:"item_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListItem struct {
	ItemID       string  `json:"item_id"`
	CategoryCode string  `json:"category_code"`
	Name         string  `json:"name"`
	Extra        *string `json:"extra,omitempty"`
	OnLoan       bool    `json:"on_loan"`
}

type ListDetail struct {
	ListID     string     `json:"list_id"`
	Name       string     `json:"name"`
	HolderID   string     `json:"holder_id"`
	HolderName string     `json:"holder_name"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Items      []ListItem `json:"items"`
	Available  int        `json:"available"`
}

type ListListsResult struct {
	Items []ListSummary `json:"items"`
	Total int           `json:"total"`
}
