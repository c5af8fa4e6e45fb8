package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loantracker-backend/internal/history"
)

func openGroup(t *testing.T) history.LoanGroup {
	t.Helper()
	groups, _ := history.Aggregate([]history.LoanRecord{
		rec("1", "Ana", t0, "Charizard", false),
		rec("2", "Ana", t0, "Pikachu", true),
		rec("3", "Ana", t0, "Onix", false),
		rec("4", "Ana", t0, "Mew", false),
	})
	require.Len(t, groups, 1)
	return groups[0]
}

func Test_Selection_ToggleIsInvolution(t *testing.T) {
	sel := history.NewSelection(openGroup(t))
	sel.Toggle("3")

	for _, id := range []string{"1", "2", "3", "4", "nope"} {
		before := sel.IDs()
		sel.Toggle(id)
		sel.Toggle(id)
		assert.Equal(t, before, sel.IDs(), "id %s", id)
	}
}

func Test_Selection_IneligibleIDsNeverEnter(t *testing.T) {
	sel := history.NewSelection(openGroup(t))

	assert.False(t, sel.Toggle("2"), "returned record")
	assert.False(t, sel.Toggle("99"), "foreign record")
	sel.SetAll([]string{"1", "2", "99"})

	assert.Equal(t, []string{"1"}, sel.IDs())
	assert.False(t, sel.IsEligible("2"))
}

func Test_Selection_SelectAllEligibleTriState(t *testing.T) {
	sel := history.NewSelection(openGroup(t))
	require.Equal(t, history.CheckNone, sel.State())

	// act
	sel.SelectAllEligible()

	// assert
	assert.Equal(t, []string{"1", "3", "4"}, sel.IDs())
	assert.Equal(t, history.CheckAll, sel.State())

	sel.SelectAllEligible()
	assert.Empty(t, sel.IDs())
	assert.Equal(t, history.CheckNone, sel.State())

	sel.Toggle("4")
	assert.Equal(t, history.CheckPartial, sel.State())
	assert.Equal(t, "indeterminate", sel.State().String())

	sel.SelectAllEligible()
	assert.Equal(t, history.CheckAll, sel.State(), "partial selection completes to all")
}

func Test_Selection_Clear(t *testing.T) {
	sel := history.NewSelection(openGroup(t))
	sel.SelectAllEligible()

	sel.Clear()

	assert.Equal(t, 0, sel.Len())
	assert.Equal(t, []string{"1", "3", "4"}, sel.Eligible())
}
