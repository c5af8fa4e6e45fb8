package history_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"loantracker-backend/internal/history"
)

func nGroups(n int) []history.LoanGroup {
	var records []history.LoanRecord
	for i := 0; i < n; i++ {
		records = append(records, rec(fmt.Sprint(i), "Ana", t0.Add(-time.Duration(i)*time.Minute), "Item", false))
	}
	groups, _ := history.Aggregate(records)
	return groups
}

func Test_TotalPages(t *testing.T) {
	assert.Equal(t, 1, history.TotalPages(0, 10))
	assert.Equal(t, 1, history.TotalPages(10, 10))
	assert.Equal(t, 2, history.TotalPages(11, 10))
	assert.Equal(t, 7, history.TotalPages(7, 1))
}

func Test_Paginate_SlicesRequestedPage(t *testing.T) {
	groups := nGroups(25)

	p := history.Paginate(groups, 10, 3)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 25, p.Total)
	assert.False(t, p.Clamped)
	assert.Len(t, p.Groups, 5)
	assert.Equal(t, groups[20:], p.Groups)
}

func Test_Paginate_ClampsOutOfRangePages(t *testing.T) {
	groups := nGroups(12)

	high := history.Paginate(groups, 10, 9)
	low := history.Paginate(groups, 10, 0)

	assert.True(t, high.Clamped)
	assert.Equal(t, 2, high.Page)
	assert.Len(t, high.Groups, 2)
	assert.True(t, low.Clamped)
	assert.Equal(t, 1, low.Page)
}

func Test_Paginate_EmptyListHasOneEmptyPage(t *testing.T) {
	p := history.Paginate(nil, 10, 4)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Groups)
	assert.True(t, p.Clamped)
}

func Test_Paginate_ConcatenatedPagesReproduceList(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 37} {
		groups := nGroups(n)
		for size := 1; size <= 12; size++ {
			var all []history.LoanGroup
			pages := history.TotalPages(n, size)
			for page := 1; page <= pages; page++ {
				p := history.Paginate(groups, size, page)
				assert.False(t, p.Clamped)
				all = append(all, p.Groups...)
			}
			assert.Len(t, all, n, "n=%d size=%d", n, size)
			for i := range all {
				assert.Equal(t, groups[i].Records[0].ID, all[i].Records[0].ID)
			}
		}
	}
}
