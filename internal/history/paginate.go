package history

// DefaultPageSize is the number of groups shown per history page.
const DefaultPageSize = 10

// Page is one slice of the filtered group list.
type Page struct {
	Groups     []LoanGroup `json:"groups"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	Total      int         `json:"total"`
	// Clamped is set when the requested page was out of range and Page holds
	// the corrected number the caller should persist.
	Clamped bool `json:"clamped"`
}

// TotalPages is max(1, ceil(total/size)).
func TotalPages(total, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	n := (total + size - 1) / size
	if n < 1 {
		return 1
	}
	return n
}

// Paginate returns the requested 1-based page of groups. Pages below 1 and
// beyond the last page are clamped and reported through Page.Clamped.
// Paginate never changes the caller's page state.
func Paginate(groups []LoanGroup, size, page int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	total := len(groups)
	pages := TotalPages(total, size)

	eff := page
	if eff > pages {
		eff = pages
	}
	if eff < 1 {
		eff = 1
	}

	start := (eff - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}
	return Page{
		Groups:     groups[start:end:end],
		Page:       eff,
		TotalPages: pages,
		Total:      total,
		Clamped:    eff != page,
	}
}
