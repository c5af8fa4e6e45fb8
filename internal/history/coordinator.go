package history

import (
	"context"
	"errors"
	"strings"
	"time"
)

// RefreshTimeout bounds the refresh that follows a mutation attempt.
const RefreshTimeout = 15 * time.Second

// Coordinator submits mutations and restores consistency afterwards. It never
// patches local state: every attempt, successful or not, ends with a full
// refresh of the record cache and the active view.
type Coordinator struct {
	backend Backend
	cache   *RecordCache
	active  *ActiveView
}

func NewCoordinator(b Backend, cache *RecordCache, active *ActiveView) *Coordinator {
	return &Coordinator{backend: b, cache: cache, active: active}
}

// Outcome describes a confirmed partial return.
type Outcome struct {
	// Submitted are the ids sent in the batch request.
	Submitted []string
	// Ignored are selected ids that were no longer eligible in the snapshot.
	Ignored  []string
	Returned int
	// CloseDialog is true only when the return succeeded.
	CloseDialog bool
	// RefreshErr is set when the post-mutation refresh failed; prior data stays visible.
	RefreshErr error
}

// resolve keeps the selected ids that are active members of the target group
// in the current snapshot.
func (c *Coordinator) resolve(sel *Selection) (keep, ignored []string) {
	byID := make(map[string]LoanRecord)
	for _, r := range c.cache.Snapshot().Records {
		byID[r.ID] = r
	}
	target := sel.Target()
	for _, id := range sel.IDs() {
		r, ok := byID[id]
		if !ok || !r.Active() || missingField(r) != "" {
			ignored = append(ignored, id)
			continue
		}
		if !(GroupKey{HolderName: r.HolderName, AcquiredAt: r.AcquiredAt}).Equal(target) {
			ignored = append(ignored, id)
			continue
		}
		keep = append(keep, id)
	}
	return keep, ignored
}

// ConfirmReturn validates locally, sends one batch return, then refreshes.
// On success the selection is cleared; on failure it is left untouched so the
// operator can retry.
func (c *Coordinator) ConfirmReturn(ctx context.Context, sel *Selection, credential string) (Outcome, error) {
	if sel == nil || sel.Len() == 0 {
		return Outcome{}, validationf("select at least one item to return")
	}
	if strings.TrimSpace(credential) == "" {
		return Outcome{}, validationf("holder credential is required")
	}
	ids, ignored := c.resolve(sel)
	if len(ids) == 0 {
		return Outcome{Ignored: ignored}, validationf("none of the selected items is still on loan")
	}

	res, err := c.backend.SubmitBatchReturn(ctx, ids, credential)
	out := Outcome{Submitted: ids, Ignored: ignored}
	out.RefreshErr = c.refreshAfter(ctx)
	if err != nil {
		return out, asTransport(err, "batch return")
	}
	out.Returned = res.Returned
	out.CloseDialog = true
	sel.Clear()
	return out, nil
}

// SubmitLoan validates, submits, and refreshes on any outcome.
func (c *Coordinator) SubmitLoan(ctx context.Context, req LoanRequest) (LoanResult, error) {
	if strings.TrimSpace(req.HolderID) == "" {
		return LoanResult{}, validationf("holder is required")
	}
	if strings.TrimSpace(req.HolderCredential) == "" {
		return LoanResult{}, validationf("holder credential is required")
	}
	if len(req.ItemIDs) == 0 {
		return LoanResult{}, validationf("select at least one item to lend")
	}
	for _, id := range req.ItemIDs {
		if strings.TrimSpace(id) == "" {
			return LoanResult{}, validationf("item id must not be empty")
		}
	}
	var res LoanResult
	err := c.mutate(ctx, "submit loan", func(ctx context.Context) error {
		var err error
		res, err = c.backend.SubmitLoan(ctx, req)
		return err
	})
	return res, err
}

// DeleteRecords deletes each record individually, then refreshes once.
// Every id is attempted; failures are joined.
func (c *Coordinator) DeleteRecords(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return validationf("nothing to delete")
	}
	return c.mutate(ctx, "delete loan records", func(ctx context.Context) error {
		var errs []error
		for _, id := range ids {
			if err := c.backend.DeleteLoanRecord(ctx, id); err != nil {
				errs = append(errs, asTransport(err, "delete loan record "+id))
			}
		}
		return errors.Join(errs...)
	})
}

func (c *Coordinator) DeleteAll(ctx context.Context) error {
	return c.mutate(ctx, "delete all loan records", c.backend.DeleteAllRecords)
}

// mutate runs fn and then refreshes regardless of its result. Only fn's error
// is returned; a refresh failure is left on the cache and the active view.
func (c *Coordinator) mutate(ctx context.Context, what string, fn func(context.Context) error) error {
	err := fn(ctx)
	_ = c.refreshAfter(ctx)
	if err != nil {
		return asTransport(err, what)
	}
	return nil
}

// refreshAfter refreshes once a mutation attempt has finished. It outlives a
// cancelled or expired ctx, since the attempt may still have landed server-side.
func (c *Coordinator) refreshAfter(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), RefreshTimeout)
	defer cancel()
	return c.Refresh(ctx)
}

// Refresh invalidates and refetches both views. Both are attempted even when
// the first fails.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.cache.Invalidate()
	errCache := c.cache.Refresh(ctx)
	var errActive error
	if c.active != nil {
		errActive = c.active.Refresh(ctx)
	}
	return errors.Join(errCache, errActive)
}
