package history

import (
	"context"
	"errors"
	"log"
	"strings"
)

// Session is the state of one operator's use of the loan history: the cached
// records, the filter, the current page, and at most one open partial-return
// selection. A Session is not safe for concurrent use.
type Session struct {
	cache    *RecordCache
	active   *ActiveView
	coord    *Coordinator
	pageSize int
	logf     func(format string, args ...any)

	query     Query
	page      int
	selection *Selection

	// aggregation of the last snapshot seen
	aggSnap   *Snapshot
	aggGroups []LoanGroup
}

type Option func(*Session)

func WithPageSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogf replaces log.Printf for warnings such as dropped records.
func WithLogf(fn func(format string, args ...any)) Option {
	return func(s *Session) {
		if fn != nil {
			s.logf = fn
		}
	}
}

func NewSession(b Backend, opts ...Option) *Session {
	cache := NewRecordCache(b)
	active := NewActiveView(b)
	s := &Session{
		cache:    cache,
		active:   active,
		coord:    NewCoordinator(b, cache, active),
		pageSize: DefaultPageSize,
		logf:     log.Printf,
		query:    Query{Status: StatusAll},
		page:     1,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load refreshes the record cache and the active view.
func (s *Session) Load(ctx context.Context) error {
	return s.coord.Refresh(ctx)
}

// LoadHistory refreshes only the record cache.
func (s *Session) LoadHistory(ctx context.Context) error {
	return s.cache.Refresh(ctx)
}

// LoadActive refreshes only the active view.
func (s *Session) LoadActive(ctx context.Context) error {
	return s.active.Refresh(ctx)
}

func (s *Session) Cache() *RecordCache { return s.cache }

func (s *Session) ActiveView() *ActiveView { return s.active }

// LastError reports the latest refresh failure of either view, if any.
func (s *Session) LastError() error {
	return errors.Join(s.cache.LastError(), s.active.LastError())
}

// Groups aggregates the current snapshot. The result is reused until the
// snapshot is replaced.
func (s *Session) Groups() []LoanGroup {
	snap := s.cache.Snapshot()
	if snap == s.aggSnap && s.aggGroups != nil {
		return s.aggGroups
	}
	groups, dropped := Aggregate(snap.Records)
	for _, d := range dropped {
		s.logf("[WARN] history: dropped record %q at index %d: %s", d.ID, d.Index, d.Reason)
	}
	if groups == nil {
		groups = []LoanGroup{}
	}
	s.aggSnap, s.aggGroups = snap, groups
	return groups
}

func (s *Session) FindGroup(key GroupKey) (LoanGroup, bool) {
	for _, g := range s.Groups() {
		if g.Key().Equal(key) {
			return g, true
		}
	}
	return LoanGroup{}, false
}

func (s *Session) Query() Query { return s.query }

func (s *Session) CurrentPage() int { return s.page }

// SetFilter changes the status filter and search text and resets to page 1.
func (s *Session) SetFilter(status Status, search string) {
	if status == "" {
		status = StatusAll
	}
	s.query = Query{Status: status, Search: strings.TrimSpace(search)}
	s.page = 1
}

// SetPage requests page n; values below 1 become 1. Values above the last
// page are corrected by the next GetPage.
func (s *Session) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.page = n
}

// GetPage runs aggregate, filter and paginate over one snapshot. A clamped
// page number is written back to the session.
func (s *Session) GetPage() Page {
	p := Paginate(Filter(s.Groups(), s.query), s.pageSize, s.page)
	if p.Clamped {
		s.page = p.Page
	}
	return p
}

// Active returns the pre-aggregated active loans.
func (s *Session) Active() []LoanGroup { return s.active.Groups() }

// OpenReturn starts a partial-return selection for the group with key,
// replacing any selection already open.
func (s *Session) OpenReturn(key GroupKey) (*Selection, error) {
	g, ok := s.FindGroup(key)
	if !ok {
		return nil, validationf("loan %s not found", key)
	}
	if len(g.EligibleIDs()) == 0 {
		return nil, validationf("loan %s has nothing left to return", key)
	}
	s.selection = NewSelection(g)
	return s.selection, nil
}

// Selection returns the open selection or nil.
func (s *Session) Selection() *Selection { return s.selection }

func (s *Session) requireSelection() (*Selection, error) {
	if s.selection == nil {
		return nil, validationf("no return in progress")
	}
	return s.selection, nil
}

func (s *Session) ToggleSelection(id string) (bool, error) {
	sel, err := s.requireSelection()
	if err != nil {
		return false, err
	}
	return sel.Toggle(id), nil
}

func (s *Session) SelectAllEligible() (CheckState, error) {
	sel, err := s.requireSelection()
	if err != nil {
		return CheckNone, err
	}
	sel.SelectAllEligible()
	return sel.State(), nil
}

// CancelReturn discards the open selection.
func (s *Session) CancelReturn() { s.selection = nil }

// ConfirmReturn submits the open selection. The selection is discarded only
// when the return succeeds.
func (s *Session) ConfirmReturn(ctx context.Context, credential string) (Outcome, error) {
	out, err := s.coord.ConfirmReturn(ctx, s.selection, credential)
	if err == nil && out.CloseDialog {
		s.selection = nil
	}
	return out, err
}

// ConfirmReturnWith asks auth for the holder credential first. A cancelled
// prompt returns ErrPromptCancelled and leaves everything as it was.
func (s *Session) ConfirmReturnWith(ctx context.Context, auth Authorizer) (Outcome, error) {
	if s.selection == nil || s.selection.Len() == 0 {
		return Outcome{}, validationf("select at least one item to return")
	}
	cred, err := auth.Credential(ctx, "holder password for "+s.selection.Target().HolderName)
	if err != nil {
		return Outcome{}, err
	}
	return s.ConfirmReturn(ctx, cred)
}

func (s *Session) SubmitLoan(ctx context.Context, req LoanRequest) (LoanResult, error) {
	return s.coord.SubmitLoan(ctx, req)
}

// DeleteGroup deletes every record of the transaction with key. This does not
// return items still on loan.
func (s *Session) DeleteGroup(ctx context.Context, key GroupKey) error {
	g, ok := s.FindGroup(key)
	if !ok {
		return validationf("loan %s not found", key)
	}
	if s.selection != nil && s.selection.Target().Equal(key) {
		s.selection = nil
	}
	return s.coord.DeleteRecords(ctx, g.RecordIDs())
}

func (s *Session) DeleteAll(ctx context.Context) error {
	s.selection = nil
	return s.coord.DeleteAll(ctx)
}
