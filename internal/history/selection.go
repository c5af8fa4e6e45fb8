package history

import "sort"

// CheckState is the tri-state of a "select all" control.
type CheckState int

const (
	CheckNone CheckState = iota
	CheckPartial
	CheckAll
)

func (s CheckState) String() string {
	switch s {
	case CheckAll:
		return "checked"
	case CheckPartial:
		return "indeterminate"
	}
	return "empty"
}

// Selection is the set of record ids chosen for a partial return of one group.
// Only ids of the group's active records are eligible; anything else is
// ignored on entry.
type Selection struct {
	target   GroupKey
	eligible []string
	allowed  map[string]struct{}
	ids      map[string]struct{}
}

// NewSelection opens an empty selection scoped to g.
func NewSelection(g LoanGroup) *Selection {
	eligible := g.EligibleIDs()
	allowed := make(map[string]struct{}, len(eligible))
	for _, id := range eligible {
		allowed[id] = struct{}{}
	}
	return &Selection{
		target:   g.Key(),
		eligible: eligible,
		allowed:  allowed,
		ids:      make(map[string]struct{}),
	}
}

func (s *Selection) Target() GroupKey { return s.target }

// Eligible returns the eligible ids in group order.
func (s *Selection) Eligible() []string {
	return append([]string(nil), s.eligible...)
}

func (s *Selection) IsEligible(id string) bool {
	_, ok := s.allowed[id]
	return ok
}

func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int { return len(s.ids) }

// Toggle flips membership of id and reports whether it is selected afterwards.
// Ineligible ids are never selected.
func (s *Selection) Toggle(id string) bool {
	if !s.IsEligible(id) {
		return false
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// SetAll replaces the selection with the eligible subset of ids.
func (s *Selection) SetAll(ids []string) {
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if s.IsEligible(id) {
			s.ids[id] = struct{}{}
		}
	}
}

func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// SelectAllEligible selects every eligible id unless all are already selected,
// in which case it deselects them.
func (s *Selection) SelectAllEligible() {
	if s.State() == CheckAll {
		for _, id := range s.eligible {
			delete(s.ids, id)
		}
		return
	}
	for _, id := range s.eligible {
		s.ids[id] = struct{}{}
	}
}

// State derives the select-all control state.
func (s *Selection) State() CheckState {
	n := 0
	for _, id := range s.eligible {
		if s.Has(id) {
			n++
		}
	}
	switch {
	case n == 0:
		return CheckNone
	case n == len(s.eligible):
		return CheckAll
	default:
		return CheckPartial
	}
}

// IDs returns the selected ids, sorted.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
