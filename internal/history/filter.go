package history

import (
	"strings"

	"golang.org/x/text/cases"
)

// Status selects groups by their derived return status.
type Status string

const (
	StatusAll      Status = "all"
	StatusActive   Status = "active"
	StatusReturned Status = "returned"
)

// ParseStatus accepts "", "all", "active" and "returned" in any case.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusActive:
		return StatusActive, nil
	case StatusReturned:
		return StatusReturned, nil
	}
	return "", validationf("unknown status filter %q", s)
}

// Query is the pair of inputs the filter stage depends on.
type Query struct {
	Status Status
	Search string
}

func (q Query) statusMatches(g LoanGroup) bool {
	switch q.Status {
	case StatusActive:
		return !g.FullyReturned()
	case StatusReturned:
		return g.FullyReturned()
	}
	return true
}

// Filter keeps the groups that pass both the status and the search predicate,
// preserving input order. It never modifies the groups.
func Filter(groups []LoanGroup, q Query) []LoanGroup {
	m := newMatcher(q.Search)
	out := make([]LoanGroup, 0, len(groups))
	for _, g := range groups {
		if !q.statusMatches(g) {
			continue
		}
		if !m.matchGroup(g) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// matcher does case-insensitive substring search using Unicode case folding,
// so "POKÉ" finds "poké".
type matcher struct {
	fold   cases.Caser
	needle string
}

func newMatcher(search string) matcher {
	m := matcher{fold: cases.Fold()}
	m.needle = m.fold.String(strings.TrimSpace(search))
	return m
}

func (m matcher) contains(s string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(m.fold.String(s), m.needle)
}

func (m matcher) matchGroup(g LoanGroup) bool {
	if m.needle == "" {
		return true
	}
	if m.contains(g.HolderName) || m.contains(g.commentText()) {
		return true
	}
	for _, r := range g.Records {
		if m.contains(r.ItemName) || m.contains(r.extra()) {
			return true
		}
	}
	return false
}
