package history_test

import (
	"context"
	"errors"
	"time"

	"loantracker-backend/internal/history"
)

var t0 = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func rec(id, holder string, at time.Time, item string, returned bool) history.LoanRecord {
	r := history.LoanRecord{
		ID:         id,
		HolderID:   "h-" + holder,
		HolderName: holder,
		ItemID:     "i-" + item,
		ItemName:   item,
		CategoryID: "volcanic",
		AcquiredAt: at,
		Returned:   returned,
	}
	if returned {
		ra := at.Add(time.Hour)
		r.ReturnedAt = &ra
	}
	return r
}

// fakeBackend is an in-memory history.Backend that counts calls.
type fakeBackend struct {
	records     []history.LoanRecord
	active      []history.LoanGroup
	fetchErr    error
	activeErr   error
	returnErr   error
	loanErr     error
	deleteErr   map[string]error
	credential  string
	fetchCalls  int
	activeCalls int
	returnCalls int
	loanCalls   int
	deleted     []string
	deletedAll  bool
	lastReturn  []string
	lastLoan    history.LoanRequest
}

func (f *fakeBackend) FetchAllLoanRecords(context.Context) ([]history.LoanRecord, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]history.LoanRecord(nil), f.records...), nil
}

func (f *fakeBackend) FetchActiveLoanGroups(context.Context) ([]history.LoanGroup, error) {
	f.activeCalls++
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	return append([]history.LoanGroup(nil), f.active...), nil
}

func (f *fakeBackend) SubmitLoan(_ context.Context, req history.LoanRequest) (history.LoanResult, error) {
	f.loanCalls++
	f.lastLoan = req
	if f.loanErr != nil {
		return history.LoanResult{}, f.loanErr
	}
	return history.LoanResult{RecordIDs: req.ItemIDs}, nil
}

func (f *fakeBackend) SubmitBatchReturn(_ context.Context, ids []string, cred string) (history.ReturnResult, error) {
	f.returnCalls++
	f.lastReturn = append([]string(nil), ids...)
	if f.returnErr != nil {
		return history.ReturnResult{}, f.returnErr
	}
	if f.credential != "" && cred != f.credential {
		return history.ReturnResult{}, &history.Error{Kind: history.KindAuthorization, Message: "wrong holder password"}
	}
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	for i := range f.records {
		if set[f.records[i].ID] {
			f.records[i].Returned = true
			ra := t0.Add(24 * time.Hour)
			f.records[i].ReturnedAt = &ra
		}
	}
	return history.ReturnResult{Returned: len(ids)}, nil
}

func (f *fakeBackend) DeleteLoanRecord(_ context.Context, id string) error {
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	kept := f.records[:0]
	for _, r := range f.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeBackend) DeleteAllRecords(context.Context) error {
	f.deletedAll = true
	f.records = nil
	return nil
}

var errNetwork = errors.New("connection reset by peer")

// ctxBackend honours ctx on every call. Its batch return lands server-side and
// then reports the deadline, like a response lost to a client timeout.
type ctxBackend struct {
	*fakeBackend
	sharedActive bool
}

func (b *ctxBackend) FetchAllLoanRecords(ctx context.Context) ([]history.LoanRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.fakeBackend.FetchAllLoanRecords(ctx)
}

func (b *ctxBackend) FetchActiveLoanGroups(ctx context.Context) ([]history.LoanGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.sharedActive {
		b.activeCalls++
		return b.active, nil
	}
	return b.fakeBackend.FetchActiveLoanGroups(ctx)
}

func (b *ctxBackend) SubmitBatchReturn(ctx context.Context, ids []string, cred string) (history.ReturnResult, error) {
	if _, err := b.fakeBackend.SubmitBatchReturn(ctx, ids, cred); err != nil {
		return history.ReturnResult{}, err
	}
	return history.ReturnResult{}, context.DeadlineExceeded
}

func (b *ctxBackend) DeleteAllRecords(ctx context.Context) error {
	_ = b.fakeBackend.DeleteAllRecords(ctx)
	return ctx.Err()
}
