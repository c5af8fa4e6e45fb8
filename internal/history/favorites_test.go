package history_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loantracker-backend/internal/history"
)

func gymTeam() history.FavoriteList {
	return history.FavoriteList{
		ID: "F1", Name: "gym team", HolderID: "h-Ash", HolderName: "Ash",
		Items: []history.FavoriteItem{
			{ItemID: "i-Onix", Name: "Onix", OnLoan: true},
			{ItemID: "i-Mew", Name: "Mew"},
			{ItemID: "i-Lapras", Name: "Lapras"},
		},
	}
}

func Test_Session_BorrowFavorites_LendsAvailableItemsInOneLoan(t *testing.T) {
	// arrange
	b := &fakeBackend{}
	s := history.NewSession(b)

	// act
	res, skipped, err := s.BorrowFavorites(context.Background(), gymTeam(), "pikachu123", strPtr("league"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{"i-Mew", "i-Lapras"}, res.RecordIDs)
	assert.Equal(t, 1, b.loanCalls)
	assert.Equal(t, "h-Ash", b.lastLoan.HolderID)
	assert.Equal(t, "pikachu123", b.lastLoan.HolderCredential)
	require.NotNil(t, b.lastLoan.Comment)
	assert.Equal(t, "league", *b.lastLoan.Comment)
	require.Len(t, skipped, 1)
	assert.Equal(t, "i-Onix", skipped[0].ItemID)
	assert.Equal(t, 1, b.fetchCalls, "refreshed after the loan")
}

func Test_Session_BorrowFavorites_NothingAvailableMakesNoNetworkCall(t *testing.T) {
	b := &fakeBackend{}
	s := history.NewSession(b)
	list := gymTeam()
	for i := range list.Items {
		list.Items[i].OnLoan = true
	}

	_, skipped, err := s.BorrowFavorites(context.Background(), list, "pikachu123", nil)

	assert.True(t, history.IsValidation(err))
	assert.Len(t, skipped, 3)
	assert.Zero(t, b.loanCalls)
	assert.Zero(t, b.fetchCalls)
}

func Test_Session_BorrowFavorites_MissingCredentialIsValidation(t *testing.T) {
	b := &fakeBackend{}
	s := history.NewSession(b)

	_, _, err := s.BorrowFavorites(context.Background(), gymTeam(), " ", nil)

	assert.True(t, history.IsValidation(err))
	assert.Zero(t, b.loanCalls)
}
