package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"loantracker-backend/internal/apiclient"
	"loantracker-backend/internal/history"
)

const defaultAPI = "https://localhost:8443/api/v1"

// api is what the commands need from the service.
type api interface {
	history.Backend
	Login(ctx context.Context, id, password string) (string, error)
	Holders(ctx context.Context) ([]apiclient.Holder, error)
	Items(ctx context.Context, categoryCode string) ([]apiclient.Item, error)
	Favorites(ctx context.Context) ([]apiclient.FavoriteSummary, error)
	Favorite(ctx context.Context, listID string) (history.FavoriteList, error)
	CreateFavorite(ctx context.Context, in apiclient.FavoriteInput) (apiclient.FavoriteSummary, error)
	UpdateFavorite(ctx context.Context, listID string, in apiclient.FavoriteInput) (apiclient.FavoriteSummary, error)
	DeleteFavorite(ctx context.Context, listID, holderPassword string) error
}

type app struct {
	apiURL   string
	token    string
	pageSize int

	dial   func(apiURL, token string) (api, error)
	client api
}

func newApp() *app {
	return &app{
		dial: func(apiURL, token string) (api, error) {
			return apiclient.New(apiURL, apiclient.WithToken(token))
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "loanctl",
		Short:        "Browse loan history and return items",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.dial(a.apiURL, a.token)
			if err != nil {
				return err
			}
			a.client = c
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiURL, "api", envOr("LOANCTL_API", defaultAPI), "API root URL (env LOANCTL_API)")
	pf.StringVar(&a.token, "token", os.Getenv("LOANCTL_TOKEN"), "admin bearer token (env LOANCTL_TOKEN)")
	pf.IntVar(&a.pageSize, "page-size", history.DefaultPageSize, "transactions per history page")

	root.AddCommand(
		newHistoryCmd(a),
		newActiveCmd(a),
		newLendCmd(a),
		newReturnCmd(a),
		newDeleteGroupCmd(a),
		newDeleteAllCmd(a),
		newLoginCmd(a),
		newHoldersCmd(a),
		newItemsCmd(a),
		newFavoritesCmd(a),
	)
	return root
}

func (a *app) session(cmd *cobra.Command) *history.Session {
	logger := log.New(cmd.ErrOrStderr(), "", 0)
	return history.NewSession(a.client,
		history.WithPageSize(a.pageSize),
		history.WithLogf(logger.Printf),
	)
}

func (a *app) authorizer(cmd *cobra.Command) history.Authorizer {
	return &lineAuthorizer{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseGroupFlag(s string) (history.GroupKey, error) {
	if s == "" {
		return history.GroupKey{}, fmt.Errorf("--group is required")
	}
	return history.ParseGroupKey(s)
}
