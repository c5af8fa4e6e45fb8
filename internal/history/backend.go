package history

import "context"

// Backend is the backing store the engine reads from and writes through.
// Every mutation, successful or not, is followed by a full refresh.
type Backend interface {
	FetchAllLoanRecords(ctx context.Context) ([]LoanRecord, error)
	FetchActiveLoanGroups(ctx context.Context) ([]LoanGroup, error)
	SubmitLoan(ctx context.Context, req LoanRequest) (LoanResult, error)
	SubmitBatchReturn(ctx context.Context, recordIDs []string, holderCredential string) (ReturnResult, error)
	DeleteLoanRecord(ctx context.Context, id string) error
	DeleteAllRecords(ctx context.Context) error
}

// LoanRequest creates one record per item, all sharing one acquisition instant
// and the comment.
type LoanRequest struct {
	HolderID         string   `json:"holder_id"`
	HolderCredential string   `json:"holder_password"`
	ItemIDs          []string `json:"item_ids"`
	Comment          *string  `json:"comment,omitempty"`
}

type LoanResult struct {
	RecordIDs []string `json:"record_ids"`
	Message   string   `json:"message,omitempty"`
}

type ReturnResult struct {
	Returned int    `json:"returned"`
	Message  string `json:"message,omitempty"`
}

// Authorizer asks the operator for a credential. It returns ErrPromptCancelled
// when the operator declines.
type Authorizer interface {
	Credential(ctx context.Context, prompt string) (string, error)
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context, prompt string) (string, error)

func (f AuthorizerFunc) Credential(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
