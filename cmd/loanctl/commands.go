package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"loantracker-backend/internal/history"
)

func newHistoryCmd(a *app) *cobra.Command {
	var status, search string
	var page int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the loan history grouped by transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := history.ParseStatus(status)
			if err != nil {
				return err
			}
			s := a.session(cmd)
			if err := s.LoadHistory(cmd.Context()); err != nil {
				return err
			}
			s.SetFilter(st, search)
			s.SetPage(page)
			p := s.GetPage()
			if p.Clamped {
				fmt.Fprintf(cmd.ErrOrStderr(), "page %d is out of range, showing page %d\n", page, p.Page)
			}
			renderPage(cmd.OutOrStdout(), p)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "all, active or returned")
	cmd.Flags().StringVar(&search, "search", "", "match holder, comment or item (case-insensitive)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func newActiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Show transactions with items still on loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.session(cmd)
			if err := s.LoadActive(cmd.Context()); err != nil {
				return err
			}
			renderGroups(cmd.OutOrStdout(), s.Active())
			return nil
		},
	}
}

func newLendCmd(a *app) *cobra.Command {
	var holder, comment string
	var items []string
	cmd := &cobra.Command{
		Use:   "lend",
		Short: "Lend one or more items to a holder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cred, err := a.authorizer(cmd).Credential(cmd.Context(), "holder password for "+holder)
			if errors.Is(err, history.ErrPromptCancelled) {
				fmt.Fprintln(out, "cancelled, nothing lent")
				return nil
			}
			if err != nil {
				return err
			}

			req := history.LoanRequest{HolderID: holder, HolderCredential: cred, ItemIDs: items}
			if comment != "" {
				req.Comment = &comment
			}
			res, err := a.session(cmd).SubmitLoan(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "lent %d item(s)\n", len(res.RecordIDs))
			return nil
		},
	}
	cmd.Flags().StringVar(&holder, "holder", "", "holder id")
	cmd.Flags().StringSliceVar(&items, "item", nil, "item id (repeatable)")
	cmd.Flags().StringVar(&comment, "comment", "", "transaction comment")
	_ = cmd.MarkFlagRequired("holder")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newReturnCmd(a *app) *cobra.Command {
	var group string
	var ids []string
	var all bool
	cmd := &cobra.Command{
		Use:   "return",
		Short: "Return some or all items of one transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if all == (len(ids) > 0) {
				return errors.New("pass either --id or --all")
			}
			key, err := parseGroupFlag(group)
			if err != nil {
				return err
			}

			s := a.session(cmd)
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			sel, err := s.OpenReturn(key)
			if err != nil {
				return err
			}
			if all {
				_, _ = s.SelectAllEligible()
			} else {
				for _, id := range ids {
					if !sel.IsEligible(id) {
						fmt.Fprintf(out, "skipping %s: not on loan in this transaction\n", id)
					}
				}
				sel.SetAll(ids)
			}

			g, _ := s.FindGroup(key)
			renderSelection(out, g, sel)

			res, err := s.ConfirmReturnWith(cmd.Context(), a.authorizer(cmd))
			if errors.Is(err, history.ErrPromptCancelled) {
				s.CancelReturn()
				fmt.Fprintln(out, "cancelled, nothing returned")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "returned %d item(s)\n", res.Returned)
			if len(res.Ignored) > 0 {
				fmt.Fprintf(out, "ignored %v: already returned\n", res.Ignored)
			}
			if res.RefreshErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: refresh failed: %v\n", res.RefreshErr)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "transaction key as printed by history")
	cmd.Flags().StringSliceVar(&ids, "id", nil, "record id to return (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "return every item still on loan")
	return cmd
}

func newDeleteGroupCmd(a *app) *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "delete-group",
		Short: "Delete every record of one transaction (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := parseGroupFlag(group)
			if err != nil {
				return err
			}
			s := a.session(cmd)
			if err := s.LoadHistory(cmd.Context()); err != nil {
				return err
			}
			if err := s.DeleteGroup(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", key)
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "transaction key as printed by history")
	return cmd
}

func newDeleteAllCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete the whole loan history (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to delete every record without --yes")
			}
			if err := a.session(cmd).DeleteAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted all records")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Get an admin token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			pw, err := a.authorizer(cmd).Credential(cmd.Context(), "password for "+id)
			if errors.Is(err, history.ErrPromptCancelled) {
				fmt.Fprintln(out, "cancelled")
				return nil
			}
			if err != nil {
				return err
			}
			tok, err := a.client.Login(cmd.Context(), id, pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "export LOANCTL_TOKEN=%s\n", tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "admin account id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newHoldersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "holders",
		Short: "List holders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hs, err := a.client.Holders(cmd.Context())
			if err != nil {
				return err
			}
			renderHolders(cmd.OutOrStdout(), hs)
			return nil
		},
	}
}

func newItemsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "items CATEGORY",
		Short: "List the items of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.client.Items(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderItems(cmd.OutOrStdout(), items)
			return nil
		},
	}
}
