package history

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// Snapshot is one atomically published copy of the flat record list.
type Snapshot struct {
	Records   []LoanRecord
	FetchedAt time.Time
}

// RecordCache holds the most recently fetched record list. A refresh replaces
// the snapshot wholesale; a failed refresh keeps the previous one and records
// the error. Overlapping refreshes are last-write-wins.
type RecordCache struct {
	backend Backend
	clock   func() time.Time

	snap    atomic.Pointer[Snapshot]
	lastErr atomic.Pointer[error]
	stale   atomic.Bool
	fetches atomic.Int64
}

func NewRecordCache(b Backend) *RecordCache {
	c := &RecordCache{backend: b, clock: time.Now}
	c.stale.Store(true)
	return c
}

// Snapshot returns the current snapshot; never nil.
func (c *RecordCache) Snapshot() *Snapshot {
	if s := c.snap.Load(); s != nil {
		return s
	}
	return &Snapshot{}
}

// Invalidate marks the snapshot stale without discarding it.
func (c *RecordCache) Invalidate() { c.stale.Store(true) }

func (c *RecordCache) Stale() bool { return c.stale.Load() }

// LastError is the error of the latest refresh, or nil if it succeeded.
func (c *RecordCache) LastError() error {
	if p := c.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Fetches counts refresh attempts.
func (c *RecordCache) Fetches() int64 { return c.fetches.Load() }

// Refresh fetches the full history and publishes it.
func (c *RecordCache) Refresh(ctx context.Context) error {
	c.fetches.Add(1)
	recs, err := c.backend.FetchAllLoanRecords(ctx)
	if err != nil {
		err = asTransport(err, "fetch loan history")
		c.lastErr.Store(&err)
		return err
	}
	if recs == nil {
		recs = []LoanRecord{}
	}
	c.snap.Store(&Snapshot{Records: recs, FetchedAt: c.clock()})
	c.lastErr.Store(nil)
	c.stale.Store(false)
	return nil
}

// ActiveView holds the backend's pre-aggregated "currently on loan" groups.
// Like RecordCache it keeps its previous contents when a refresh fails.
type ActiveView struct {
	backend Backend
	groups  atomic.Pointer[[]LoanGroup]
	lastErr atomic.Pointer[error]
}

func NewActiveView(b Backend) *ActiveView { return &ActiveView{backend: b} }

func (v *ActiveView) Groups() []LoanGroup {
	if p := v.groups.Load(); p != nil {
		return *p
	}
	return nil
}

func (v *ActiveView) LastError() error {
	if p := v.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

func (v *ActiveView) Refresh(ctx context.Context) error {
	groups, err := v.backend.FetchActiveLoanGroups(ctx)
	if err != nil {
		err = asTransport(err, "fetch active loans")
		v.lastErr.Store(&err)
		return err
	}
	groups = append([]LoanGroup(nil), groups...)
	SortNewestFirst(groups)
	v.groups.Store(&groups)
	v.lastErr.Store(nil)
	return nil
}

// asTransport keeps typed errors and wraps anything else as a transport failure.
func asTransport(err error, msg string) error {
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	return &Error{Kind: KindTransport, Message: msg, Err: err}
}
