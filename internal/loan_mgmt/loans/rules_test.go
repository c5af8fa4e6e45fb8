package loans

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainCheck(hash, password string) bool { return password != "" && hash == "hash:"+password }

func codeOf(t *testing.T, err error) Code {
	t.Helper()
	var api *APIError
	require.True(t, errors.As(err, &api), "want *APIError, got %v", err)
	return api.Code
}

func Test_checkLendable(t *testing.T) {
	found := []lockedItem{
		{ItemID: 1, ItemULID: "charizard"},
		{ItemID: 2, ItemULID: "pikachu", OnLoan: true},
		{ItemID: 3, ItemULID: "onix"},
	}

	testCases := []struct {
		name     string
		want     []string
		wantCode Code
		wantIDs  map[string]uint64
	}{
		{name: "all free", want: []string{"charizard", "onix"}, wantIDs: map[string]uint64{"charizard": 1, "onix": 3}},
		{name: "one on loan", want: []string{"charizard", "pikachu"}, wantCode: CodeConflict},
		{name: "unknown wins over on loan", want: []string{"pikachu", "mew"}, wantCode: CodeNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ids, err := checkLendable(tc.want, found)

			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, codeOf(t, err))
				assert.Nil(t, ids)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func Test_checkReturnable(t *testing.T) {
	found := []lockedRecord{
		{RecordID: 10, RecordULID: "r1", HolderID: 1, PasswordHash: "hash:pikachu123"},
		{RecordID: 11, RecordULID: "r2", HolderID: 1, PasswordHash: "hash:pikachu123", Returned: true},
		{RecordID: 12, RecordULID: "r3", HolderID: 1, PasswordHash: "hash:pikachu123"},
		{RecordID: 20, RecordULID: "m1", HolderID: 2, PasswordHash: "hash:starmie"},
	}

	testCases := []struct {
		name       string
		want       []string
		credential string
		wantCode   Code
		wantIDs    []uint64
	}{
		{name: "subset of one holder", want: []string{"r3", "r1"}, credential: "pikachu123", wantIDs: []uint64{12, 10}},
		{name: "unknown record", want: []string{"r1", "zz"}, credential: "pikachu123", wantCode: CodeNotFound},
		{name: "two holders", want: []string{"r1", "m1"}, credential: "pikachu123", wantCode: CodeInvalidArgument},
		{name: "wrong credential", want: []string{"r1"}, credential: "starmie", wantCode: CodeUnauthorized},
		{name: "already returned", want: []string{"r1", "r2"}, credential: "pikachu123", wantCode: CodeConflict},
		{name: "credential checked before state", want: []string{"r2"}, credential: "nope", wantCode: CodeUnauthorized},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ids, err := checkReturnable(tc.want, found, tc.credential, plainCheck)

			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, codeOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func Test_placeholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
