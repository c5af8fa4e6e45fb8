package history

import (
	"sort"
	"strings"
	"time"
)

// LoanRecord is one item's entry in the flat loan log.
type LoanRecord struct {
	ID                 string     `json:"id"`
	HolderID           string     `json:"holder_id"`
	HolderName         string     `json:"holder_name"`
	ItemID             string     `json:"item_id"`
	ItemName           string     `json:"item_name"`
	ItemExtra          *string    `json:"item_extra,omitempty"`
	CategoryID         string     `json:"category_id"`
	AcquiredAt         time.Time  `json:"acquired_at"`
	Returned           bool       `json:"returned"`
	ReturnedAt         *time.Time `json:"returned_at,omitempty"`
	TransactionComment *string    `json:"comment,omitempty"`
}

// Active reports whether the record is still on loan.
func (r LoanRecord) Active() bool { return !r.Returned }

func (r LoanRecord) extra() string {
	if r.ItemExtra == nil {
		return ""
	}
	return *r.ItemExtra
}

func (r LoanRecord) comment() string {
	if r.TransactionComment == nil {
		return ""
	}
	return *r.TransactionComment
}

// GroupKey identifies one loan transaction: exact holder name plus exact
// acquisition instant.
type GroupKey struct {
	HolderName string
	AcquiredAt time.Time
}

// String renders the key in a form ParseGroupKey accepts.
func (k GroupKey) String() string {
	return k.AcquiredAt.UTC().Format(time.RFC3339Nano) + "|" + k.HolderName
}

// ParseGroupKey is the inverse of GroupKey.String.
func ParseGroupKey(s string) (GroupKey, error) {
	ts, name, ok := strings.Cut(s, "|")
	if !ok || name == "" {
		return GroupKey{}, validationf("malformed group key %q", s)
	}
	at, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return GroupKey{}, validationf("malformed group key %q", s)
	}
	return GroupKey{HolderName: name, AcquiredAt: at}, nil
}

// Equal compares holder names exactly and instants with time.Equal.
func (k GroupKey) Equal(o GroupKey) bool {
	return k.HolderName == o.HolderName && k.AcquiredAt.Equal(o.AcquiredAt)
}

// map key; time.Time is not safe as a map key across locations
type groupID struct {
	holder string
	nanos  int64
}

func (k GroupKey) id() groupID {
	return groupID{holder: k.HolderName, nanos: k.AcquiredAt.UnixNano()}
}

// LoanGroup is a derived, never persisted view of every record created together
// for one holder at one instant.
type LoanGroup struct {
	HolderID   string       `json:"holder_id"`
	HolderName string       `json:"holder_name"`
	AcquiredAt time.Time    `json:"acquired_at"`
	Comment    *string      `json:"comment,omitempty"`
	Records    []LoanRecord `json:"records"`
}

func (g LoanGroup) Key() GroupKey {
	return GroupKey{HolderName: g.HolderName, AcquiredAt: g.AcquiredAt}
}

// FullyReturned is recomputed from the members on every call.
func (g LoanGroup) FullyReturned() bool {
	for _, r := range g.Records {
		if r.Active() {
			return false
		}
	}
	return true
}

func (g LoanGroup) ActiveRecords() []LoanRecord {
	out := make([]LoanRecord, 0, len(g.Records))
	for _, r := range g.Records {
		if r.Active() {
			out = append(out, r)
		}
	}
	return out
}

func (g LoanGroup) ReturnedRecords() []LoanRecord {
	out := make([]LoanRecord, 0, len(g.Records))
	for _, r := range g.Records {
		if !r.Active() {
			out = append(out, r)
		}
	}
	return out
}

// EligibleIDs lists the ids that may enter a partial-return selection.
func (g LoanGroup) EligibleIDs() []string {
	out := make([]string, 0, len(g.Records))
	for _, r := range g.Records {
		if r.Active() {
			out = append(out, r.ID)
		}
	}
	return out
}

func (g LoanGroup) RecordIDs() []string {
	out := make([]string, 0, len(g.Records))
	for _, r := range g.Records {
		out = append(out, r.ID)
	}
	return out
}

func (g LoanGroup) commentText() string {
	if g.Comment == nil {
		return ""
	}
	return *g.Comment
}

// ReturnBatch is a set of members returned at the same instant.
// At is nil for returned records that carry no timestamp.
type ReturnBatch struct {
	At      *time.Time
	Records []LoanRecord
}

// ReturnBatches groups returned members by return instant, newest first,
// undated records last.
func (g LoanGroup) ReturnBatches() []ReturnBatch {
	var batches []ReturnBatch
	index := map[int64]int{}
	undated := -1
	for _, r := range g.Records {
		if r.Active() {
			continue
		}
		if r.ReturnedAt == nil {
			if undated < 0 {
				undated = len(batches)
				batches = append(batches, ReturnBatch{})
			}
			batches[undated].Records = append(batches[undated].Records, r)
			continue
		}
		n := r.ReturnedAt.UnixNano()
		i, ok := index[n]
		if !ok {
			at := *r.ReturnedAt
			i = len(batches)
			index[n] = i
			batches = append(batches, ReturnBatch{At: &at})
		}
		batches[i].Records = append(batches[i].Records, r)
	}
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i].At, batches[j].At
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return batches
}

// UnknownCategory labels records without a category.
const UnknownCategory = "unknown"

// CategoryRecords is the slice of members belonging to one category.
type CategoryRecords struct {
	Category string
	Records  []LoanRecord
}

// ByCategory groups the group's still-active members by category.
func (g LoanGroup) ByCategory() []CategoryRecords { return ByCategory(g.ActiveRecords()) }

// ByCategory groups the given records by category; categories are sorted
// case-insensitively with UnknownCategory last.
func ByCategory(records []LoanRecord) []CategoryRecords {
	var out []CategoryRecords
	index := map[string]int{}
	for _, r := range records {
		c := r.CategoryID
		if c == "" {
			c = UnknownCategory
		}
		i, ok := index[c]
		if !ok {
			i = len(out)
			index[c] = i
			out = append(out, CategoryRecords{Category: c})
		}
		out[i].Records = append(out[i].Records, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Category, out[j].Category
		if a == UnknownCategory {
			return false
		}
		if b == UnknownCategory {
			return true
		}
		return strings.ToLower(a) < strings.ToLower(b)
	})
	return out
}
