package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loantracker-backend/internal/apiclient"
	"loantracker-backend/internal/history"
)

var t0 = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type fakeAPI struct {
	records     []history.LoanRecord
	credential  string
	returnCalls [][]string
	loans       []history.LoanRequest
	deletedAll  bool
	favorites   map[string]history.FavoriteList
	favInputs   []apiclient.FavoriteInput
	favDeleted  []string
}

func (f *fakeAPI) FetchAllLoanRecords(context.Context) ([]history.LoanRecord, error) {
	return append([]history.LoanRecord(nil), f.records...), nil
}

func (f *fakeAPI) FetchActiveLoanGroups(context.Context) ([]history.LoanGroup, error) {
	var active []history.LoanRecord
	for _, r := range f.records {
		if r.Active() {
			active = append(active, r)
		}
	}
	groups, _ := history.Aggregate(active)
	return groups, nil
}

func (f *fakeAPI) SubmitLoan(_ context.Context, req history.LoanRequest) (history.LoanResult, error) {
	f.loans = append(f.loans, req)
	ids := make([]string, len(req.ItemIDs))
	for i := range ids {
		ids[i] = fmt.Sprintf("N%d", i+1)
	}
	return history.LoanResult{RecordIDs: ids}, nil
}

func (f *fakeAPI) SubmitBatchReturn(_ context.Context, ids []string, cred string) (history.ReturnResult, error) {
	f.returnCalls = append(f.returnCalls, ids)
	if cred != f.credential {
		return history.ReturnResult{}, &history.Error{Kind: history.KindAuthorization, Message: "holder credential rejected"}
	}
	for _, id := range ids {
		for i := range f.records {
			if f.records[i].ID == id {
				at := t0.Add(time.Hour)
				f.records[i].Returned = true
				f.records[i].ReturnedAt = &at
			}
		}
	}
	return history.ReturnResult{Returned: len(ids)}, nil
}

func (f *fakeAPI) DeleteLoanRecord(context.Context, string) error { return nil }

func (f *fakeAPI) DeleteAllRecords(context.Context) error {
	f.deletedAll = true
	f.records = nil
	return nil
}

func (f *fakeAPI) Login(_ context.Context, id, pw string) (string, error) {
	return "tok-" + id, nil
}

func (f *fakeAPI) Holders(context.Context) ([]apiclient.Holder, error) {
	return []apiclient.Holder{{HolderID: "h-ash", Name: "Ash", ActiveLoans: 2}}, nil
}

func (f *fakeAPI) Items(context.Context, string) ([]apiclient.Item, error) {
	return []apiclient.Item{{ItemID: "i-onix", Name: "Onix", OnLoan: true}}, nil
}

func (f *fakeAPI) Favorites(context.Context) ([]apiclient.FavoriteSummary, error) {
	var out []apiclient.FavoriteSummary
	for _, l := range f.favorites {
		out = append(out, apiclient.FavoriteSummary{ListID: l.ID, Name: l.Name, HolderName: l.HolderName, ItemCount: len(l.Items), UpdatedAt: t0})
	}
	return out, nil
}

func (f *fakeAPI) Favorite(_ context.Context, id string) (history.FavoriteList, error) {
	l, ok := f.favorites[id]
	if !ok {
		return history.FavoriteList{}, &history.Error{Kind: history.KindConflict, Message: "list not found"}
	}
	return l, nil
}

func (f *fakeAPI) CreateFavorite(_ context.Context, in apiclient.FavoriteInput) (apiclient.FavoriteSummary, error) {
	f.favInputs = append(f.favInputs, in)
	return apiclient.FavoriteSummary{ListID: "F9", Name: in.Name, ItemCount: len(in.ItemIDs)}, nil
}

func (f *fakeAPI) UpdateFavorite(_ context.Context, id string, in apiclient.FavoriteInput) (apiclient.FavoriteSummary, error) {
	f.favInputs = append(f.favInputs, in)
	return apiclient.FavoriteSummary{ListID: id, Name: in.Name, ItemCount: len(in.ItemIDs)}, nil
}

func (f *fakeAPI) DeleteFavorite(_ context.Context, id, pw string) error {
	f.favDeleted = append(f.favDeleted, id+":"+pw)
	return nil
}

func rec(id, holder string, at time.Time, item, category string) history.LoanRecord {
	return history.LoanRecord{
		ID: id, HolderID: "h-" + holder, HolderName: holder,
		ItemID: "i-" + item, ItemName: item, CategoryID: category, AcquiredAt: at,
	}
}

func newFake() *fakeAPI {
	return &fakeAPI{
		credential: "pikachu123",
		records: []history.LoanRecord{
			rec("1", "Ash", t0, "Charizard", "volcanic"),
			rec("2", "Ash", t0, "Pikachu", "electric"),
			rec("3", "Ash", t0, "Onix", "rock"),
			rec("9", "Misty", t0.Add(-time.Hour), "Starmie", "aquatic"),
		},
		favorites: map[string]history.FavoriteList{
			"F1": {ID: "F1", Name: "gym team", HolderID: "h-Ash", HolderName: "Ash", Items: []history.FavoriteItem{
				{ItemID: "i-Onix", Name: "Onix", CategoryCode: "rock", OnLoan: true},
				{ItemID: "i-Mew", Name: "Mew", CategoryCode: "psychic"},
			}},
			"F2": {ID: "F2", Name: "busy", HolderID: "h-Ash", HolderName: "Ash", Items: []history.FavoriteItem{
				{ItemID: "i-Onix", Name: "Onix", CategoryCode: "rock", OnLoan: true},
			}},
		},
	}
}

func run(t *testing.T, f *fakeAPI, stdin string, args ...string) (string, error) {
	t.Helper()
	a := newApp()
	a.dial = func(string, string) (api, error) { return f, nil }
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func ashKey() string { return history.GroupKey{HolderName: "Ash", AcquiredAt: t0}.String() }

func Test_History_PrintsGroupsAndClampsPage(t *testing.T) {
	out, err := run(t, newFake(), "", "history", "--page", "7")

	require.NoError(t, err)
	assert.Contains(t, out, "page 7 is out of range, showing page 1")
	assert.Contains(t, out, "page 1/1, 2 transaction(s)")
	assert.Contains(t, out, "3/3 on loan")
	assert.Contains(t, out, ashKey())
}

func Test_History_SearchAndStatus(t *testing.T) {
	out, err := run(t, newFake(), "", "history", "--search", "STARMIE", "--status", "active")

	require.NoError(t, err)
	assert.Contains(t, out, "1 transaction(s)")
	assert.Contains(t, out, "Misty")
	assert.NotContains(t, out, "Charizard")

	_, err = run(t, newFake(), "", "history", "--status", "lost")
	assert.Error(t, err)
}

func Test_Return_SubsetSendsOneBatch(t *testing.T) {
	// arrange
	f := newFake()

	// act
	out, err := run(t, f, "pikachu123\n", "return", "--group", ashKey(), "--id", "1", "--id", "3", "--id", "9")

	// assert
	require.NoError(t, err)
	assert.Contains(t, out, "skipping 9")
	assert.Contains(t, out, "returned 2 item(s)")
	require.Len(t, f.returnCalls, 1)
	assert.Equal(t, []string{"1", "3"}, f.returnCalls[0])
	assert.True(t, f.records[0].Returned)
	assert.False(t, f.records[1].Returned)
}

func Test_Return_EmptyPasswordCancels(t *testing.T) {
	f := newFake()

	out, err := run(t, f, "\n", "return", "--group", ashKey(), "--all")

	require.NoError(t, err)
	assert.Contains(t, out, "cancelled, nothing returned")
	assert.Empty(t, f.returnCalls)
}

func Test_Return_WrongPasswordFails(t *testing.T) {
	f := newFake()

	_, err := run(t, f, "nope\n", "return", "--group", ashKey(), "--all")

	assert.Equal(t, history.KindAuthorization, history.KindOf(err))
	require.Len(t, f.returnCalls, 1)
	assert.Equal(t, []string{"1", "2", "3"}, f.returnCalls[0])
}

func Test_Return_FlagValidation(t *testing.T) {
	f := newFake()

	_, err := run(t, f, "", "return", "--group", ashKey())
	assert.Error(t, err)

	_, err = run(t, f, "", "return", "--all", "--group", "not-a-key")
	assert.True(t, history.IsValidation(err))
	assert.Empty(t, f.returnCalls)
}

func Test_Lend(t *testing.T) {
	f := newFake()

	out, err := run(t, f, "pikachu123\n", "lend", "--holder", "h-Ash", "--item", "i-Mew,i-Lapras", "--comment", "trade")

	require.NoError(t, err)
	assert.Contains(t, out, "lent 2 item(s)")
	require.Len(t, f.loans, 1)
	assert.Equal(t, []string{"i-Mew", "i-Lapras"}, f.loans[0].ItemIDs)
	assert.Equal(t, "pikachu123", f.loans[0].HolderCredential)
	require.NotNil(t, f.loans[0].Comment)
}

func Test_DeleteAll_NeedsYes(t *testing.T) {
	f := newFake()

	_, err := run(t, f, "", "delete-all")
	assert.Error(t, err)
	assert.False(t, f.deletedAll)

	_, err = run(t, f, "", "delete-all", "--yes")
	require.NoError(t, err)
	assert.True(t, f.deletedAll)
}

func Test_Login_PrintsToken(t *testing.T) {
	out, err := run(t, newFake(), "pallet\n", "login", "--id", "oak")

	require.NoError(t, err)
	assert.Contains(t, out, "export LOANCTL_TOKEN=tok-oak")
}

func Test_lineAuthorizer(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "line", input: "pikachu123\n", want: "pikachu123"},
		{name: "crlf", input: "pikachu123\r\n", want: "pikachu123"},
		{name: "no newline", input: "pikachu123", want: "pikachu123"},
		{name: "empty line", input: "\n", wantErr: history.ErrPromptCancelled},
		{name: "eof", input: "", wantErr: history.ErrPromptCancelled},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			p := &lineAuthorizer{in: bufio.NewReader(strings.NewReader(tc.input)), out: &out}

			got, err := p.Credential(context.Background(), "password")

			assert.Contains(t, out.String(), "password")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_Favorites_BorrowLendsAvailableItems(t *testing.T) {
	// arrange
	f := newFake()

	// act
	out, err := run(t, f, "pikachu123\n", "favorites", "borrow", "F1", "--comment", "league")

	// assert
	require.NoError(t, err)
	assert.Contains(t, out, "1/2 available")
	assert.Contains(t, out, "lent 1 item(s)")
	assert.Contains(t, out, "skipped Onix: on loan")
	require.Len(t, f.loans, 1)
	assert.Equal(t, "h-Ash", f.loans[0].HolderID)
	assert.Equal(t, []string{"i-Mew"}, f.loans[0].ItemIDs)
}

func Test_Favorites_BorrowNothingAvailableDoesNotPrompt(t *testing.T) {
	f := newFake()

	out, err := run(t, f, "pikachu123\n", "favorites", "borrow", "F2")

	assert.Error(t, err)
	assert.NotContains(t, out, "holder password")
	assert.Empty(t, f.loans)
}

func Test_Favorites_CreateUpdateDelete(t *testing.T) {
	f := newFake()

	out, err := run(t, f, "pikachu123\n", "favorites", "create", "--holder", "h-Ash", "--name", "water", "--item", "i-Lapras,i-Starmie")
	require.NoError(t, err)
	assert.Contains(t, out, "saved water (2 item(s)) as F9")

	_, err = run(t, f, "pikachu123\n", "favorites", "update", "F1", "--name", "gym")
	require.NoError(t, err)
	require.Len(t, f.favInputs, 2)
	assert.Equal(t, []string{"i-Onix", "i-Mew"}, f.favInputs[1].ItemIDs, "items kept when --item is absent")
	assert.Equal(t, "gym", f.favInputs[1].Name)

	_, err = run(t, f, "\n", "favorites", "delete", "F1")
	require.NoError(t, err)
	_, err = run(t, f, "", "favorites", "delete", "F2", "--force")
	require.NoError(t, err)
	assert.Equal(t, []string{"F2:"}, f.favDeleted, "empty password cancels the owner delete")
}

func Test_Favorites_List(t *testing.T) {
	out, err := run(t, newFake(), "", "favorites")

	require.NoError(t, err)
	assert.Contains(t, out, "gym team")
	assert.Contains(t, out, "busy")
}
