package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"loantracker-backend/internal/apiclient"
	"loantracker-backend/internal/history"
)

const timeLayout = "2006-01-02 15:04"

func renderPage(w io.Writer, p history.Page) {
	fmt.Fprintf(w, "page %d/%d, %d transaction(s)\n", p.Page, p.TotalPages, p.Total)
	renderGroups(w, p.Groups)
}

func renderGroups(w io.Writer, groups []history.LoanGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "no loans")
		return
	}
	for _, g := range groups {
		fmt.Fprintln(w)
		renderGroup(w, g)
	}
}

func renderGroup(w io.Writer, g history.LoanGroup) {
	active := len(g.ActiveRecords())
	status := fmt.Sprintf("%d/%d on loan", active, len(g.Records))
	if g.FullyReturned() {
		status = "returned"
	}
	fmt.Fprintf(w, "%s  %s  %s\n", g.HolderName, g.AcquiredAt.Local().Format(timeLayout), status)
	fmt.Fprintf(w, "  key: %q\n", g.Key().String())
	if g.Comment != nil {
		fmt.Fprintf(w, "  comment: %s\n", *g.Comment)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tITEM\tCATEGORY\tSTATE")
	for _, r := range g.ActiveRecords() {
		fmt.Fprintf(tw, "  %s\t%s\t%s\ton loan\n", r.ID, itemLabel(r), category(r))
	}
	for _, b := range g.ReturnBatches() {
		state := "returned"
		if b.At != nil {
			state = "returned " + b.At.Local().Format(timeLayout)
		}
		for _, r := range b.Records {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", r.ID, itemLabel(r), category(r), state)
		}
	}
	tw.Flush()
}

// renderSelection lists what is about to be returned, grouped by category.
func renderSelection(w io.Writer, g history.LoanGroup, sel *history.Selection) {
	var picked []history.LoanRecord
	for _, r := range g.ActiveRecords() {
		if sel.Has(r.ID) {
			picked = append(picked, r)
		}
	}
	fmt.Fprintf(w, "returning %d of %d item(s) on loan for %s [%s]\n",
		len(picked), len(sel.Eligible()), g.HolderName, sel.State())
	for _, cr := range history.ByCategory(picked) {
		fmt.Fprintf(w, "  %s:\n", cr.Category)
		for _, r := range cr.Records {
			fmt.Fprintf(w, "    %s  %s\n", r.ID, itemLabel(r))
		}
	}
}

func renderHolders(w io.Writer, hs []apiclient.Holder) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tON LOAN")
	for _, h := range hs {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", h.HolderID, h.Name, h.ActiveLoans)
	}
	tw.Flush()
}

func renderItems(w io.Writer, items []apiclient.Item) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATE")
	for _, it := range items {
		state := "available"
		if it.OnLoan {
			state = "on loan"
		}
		name := it.Name
		if it.Extra != nil && *it.Extra != "" {
			name += " (" + *it.Extra + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.ItemID, name, state)
	}
	tw.Flush()
}

func renderFavorites(w io.Writer, ls []apiclient.FavoriteSummary) {
	if len(ls) == 0 {
		fmt.Fprintln(w, "no saved lists")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tHOLDER\tITEMS\tUPDATED")
	for _, l := range ls {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", l.ListID, l.Name, l.HolderName, l.ItemCount, l.UpdatedAt.Local().Format(timeLayout))
	}
	tw.Flush()
}

func renderFavorite(w io.Writer, l history.FavoriteList) {
	free, _ := l.Available()
	fmt.Fprintf(w, "%s  %s  %d/%d available\n", l.Name, l.HolderName, len(free), len(l.Items))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tITEM\tCATEGORY\tSTATE")
	for _, it := range l.Items {
		state := "available"
		if it.OnLoan {
			state = "on loan"
		}
		name := it.Name
		if it.Extra != nil && *it.Extra != "" {
			name += " (" + *it.Extra + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", it.ItemID, name, it.CategoryCode, state)
	}
	tw.Flush()
}

func itemLabel(r history.LoanRecord) string {
	if r.ItemExtra != nil && *r.ItemExtra != "" {
		return r.ItemName + " (" + *r.ItemExtra + ")"
	}
	return r.ItemName
}

func category(r history.LoanRecord) string {
	if r.CategoryID == "" {
		return history.UnknownCategory
	}
	return r.CategoryID
}
