package history

import "sort"

// Dropped describes a record left out of aggregation.
type Dropped struct {
	Index  int
	ID     string
	Reason string
}

func missingField(r LoanRecord) string {
	switch {
	case r.HolderName == "":
		return "missing holder name"
	case r.AcquiredAt.IsZero():
		return "missing acquisition time"
	case r.ItemName == "":
		return "missing item name"
	}
	return ""
}

// Aggregate groups records by (holder name, acquisition instant) in a single
// pass. Malformed records are reported in dropped and do not affect any group.
// Groups come back newest transaction first; equal instants keep first-seen order.
func Aggregate(records []LoanRecord) (groups []LoanGroup, dropped []Dropped) {
	index := make(map[groupID]int)
	for i, r := range records {
		if reason := missingField(r); reason != "" {
			dropped = append(dropped, Dropped{Index: i, ID: r.ID, Reason: reason})
			continue
		}
		k := GroupKey{HolderName: r.HolderName, AcquiredAt: r.AcquiredAt}.id()
		gi, ok := index[k]
		if !ok {
			gi = len(groups)
			index[k] = gi
			groups = append(groups, LoanGroup{
				HolderID:   r.HolderID,
				HolderName: r.HolderName,
				AcquiredAt: r.AcquiredAt,
			})
		}
		g := &groups[gi]
		g.Records = append(g.Records, r)
		if g.Comment == nil && r.comment() != "" {
			c := r.comment()
			g.Comment = &c
		}
	}
	SortNewestFirst(groups)
	return groups, dropped
}

// SortNewestFirst orders groups by acquisition instant, descending, stably.
func SortNewestFirst(groups []LoanGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].AcquiredAt.After(groups[j].AcquiredAt)
	})
}
