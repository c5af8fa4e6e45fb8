package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"loantracker-backend/internal/apiclient"
	"loantracker-backend/internal/history"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Saved item lists holders borrow in one go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ls, err := a.client.Favorites(cmd.Context())
			if err != nil {
				return err
			}
			renderFavorites(cmd.OutOrStdout(), ls)
			return nil
		},
	}
	cmd.AddCommand(
		newFavoriteShowCmd(a),
		newFavoriteCreateCmd(a),
		newFavoriteUpdateCmd(a),
		newFavoriteDeleteCmd(a),
		newFavoriteBorrowCmd(a),
	)
	return cmd
}

func newFavoriteShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show LIST_ID",
		Short: "Show a list and which of its items are available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.client.Favorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderFavorite(cmd.OutOrStdout(), l)
			return nil
		},
	}
}

func newFavoriteCreateCmd(a *app) *cobra.Command {
	var holder, name string
	var items []string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Save a list of items for a holder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cred, err := a.authorizer(cmd).Credential(cmd.Context(), "holder password for "+holder)
			if errors.Is(err, history.ErrPromptCancelled) {
				fmt.Fprintln(out, "cancelled, nothing saved")
				return nil
			}
			if err != nil {
				return err
			}
			res, err := a.client.CreateFavorite(cmd.Context(), apiclient.FavoriteInput{
				HolderID: holder, HolderPassword: cred, Name: name, ItemIDs: items,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "saved %s (%d item(s)) as %s\n", res.Name, res.ItemCount, res.ListID)
			return nil
		},
	}
	cmd.Flags().StringVar(&holder, "holder", "", "holder id")
	cmd.Flags().StringVar(&name, "name", "", "list name")
	cmd.Flags().StringSliceVar(&items, "item", nil, "item id (repeatable)")
	_ = cmd.MarkFlagRequired("holder")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newFavoriteUpdateCmd(a *app) *cobra.Command {
	var name string
	var items []string
	cmd := &cobra.Command{
		Use:   "update LIST_ID",
		Short: "Rename a list or replace its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			l, err := a.client.Favorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			in := apiclient.FavoriteInput{Name: l.Name, ItemIDs: items}
			if name != "" {
				in.Name = name
			}
			if len(in.ItemIDs) == 0 {
				for _, it := range l.Items {
					in.ItemIDs = append(in.ItemIDs, it.ItemID)
				}
			}

			cred, err := a.authorizer(cmd).Credential(cmd.Context(), "holder password for "+l.HolderName)
			if errors.Is(err, history.ErrPromptCancelled) {
				fmt.Fprintln(out, "cancelled, nothing changed")
				return nil
			}
			if err != nil {
				return err
			}
			in.HolderPassword = cred
			res, err := a.client.UpdateFavorite(cmd.Context(), l.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "updated %s (%d item(s))\n", res.Name, res.ItemCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new list name")
	cmd.Flags().StringSliceVar(&items, "item", nil, "replacement item id (repeatable)")
	return cmd
}

func newFavoriteDeleteCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete LIST_ID",
		Short: "Delete a list (owner password, or --force with an admin token)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if force {
				if err := a.client.DeleteFavorite(cmd.Context(), args[0], ""); err != nil {
					return err
				}
				fmt.Fprintf(out, "deleted %s\n", args[0])
				return nil
			}
			cred, err := a.authorizer(cmd).Credential(cmd.Context(), "holder password")
			if errors.Is(err, history.ErrPromptCancelled) {
				fmt.Fprintln(out, "cancelled, nothing deleted")
				return nil
			}
			if err != nil {
				return err
			}
			if err := a.client.DeleteFavorite(cmd.Context(), args[0], cred); err != nil {
				return err
			}
			fmt.Fprintf(out, "deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "delete without the owner's password (admin)")
	return cmd
}

func newFavoriteBorrowCmd(a *app) *cobra.Command {
	var comment string
	cmd := &cobra.Command{
		Use:   "borrow LIST_ID",
		Short: "Lend every available item of a list to its holder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			l, err := a.client.Favorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderFavorite(out, l)
			if free, _ := l.Available(); len(free) == 0 {
				return fmt.Errorf("no item of %q is available", l.Name)
			}

			cred, err := a.authorizer(cmd).Credential(cmd.Context(), "holder password for "+l.HolderName)
			if errors.Is(err, history.ErrPromptCancelled) {
				fmt.Fprintln(out, "cancelled, nothing lent")
				return nil
			}
			if err != nil {
				return err
			}
			var c *string
			if comment != "" {
				c = &comment
			}
			res, skipped, err := a.session(cmd).BorrowFavorites(cmd.Context(), l, cred, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "lent %d item(s)\n", len(res.RecordIDs))
			for _, it := range skipped {
				fmt.Fprintf(out, "skipped %s: on loan\n", it.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&comment, "comment", "", "transaction comment")
	return cmd
}
