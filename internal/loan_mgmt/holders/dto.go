package holders

import "time"

type CreateHolderRequest struct {
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Password string  `json:"password"`
}

type HolderResponse struct {
	HolderID    string    `json:"holder_id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ActiveLoans int       `json:"active_loans"`
}

type ListHoldersResult struct {
	Items []HolderResponse `json:"items"`
	Total int              `json:"total"`
}
