package catalog

// PageSizes are the page sizes the grid may request. Anything else falls
// back to DefaultPageSize.
var PageSizes = []int{12, 24, 48, 96}

// DefaultPageSize is used when no (or an invalid) page size is requested.
const DefaultPageSize = 12

// Ellipsis marks a collapsed gap in a page-number window.
const Ellipsis = -1

// Result is one page of pipeline output plus the display metadata the grid
// needs to render pagination controls.
type Result struct {
	Items       []Product `json:"items"`
	TotalItems  int       `json:"total_items"`
	TotalPages  int       `json:"total_pages"`
	Page        int       `json:"page"`
	PageSize    int       `json:"page_size"`
	StartIndex  int       `json:"start_index"`
	EndIndex    int       `json:"end_index"`
	PageNumbers []int     `json:"page_numbers"`
}

// NormalizePageSize maps a requested page size onto the allowed set.
func NormalizePageSize(size int) int {
	for _, s := range PageSizes {
		if size == s {
			return size
		}
	}
	return DefaultPageSize
}

// Paginate slices items into the requested 1-based page. An empty list still
// yields one (empty) page. A page outside 1..totalPages resets to page 1 so
// a stale cursor never silently shows an out-of-range page.
func Paginate(items []Product, page, size int) Result {
	size = NormalizePageSize(size)

	totalItems := len(items)
	totalPages := (totalItems + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if end > totalItems {
		end = totalItems
	}

	return Result{
		Items:       items[start:end:end],
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		Page:        page,
		PageSize:    size,
		StartIndex:  start,
		EndIndex:    end,
		PageNumbers: PageNumbers(page, totalPages),
	}
}

// PageNumbers computes the visible page-number window: always page 1 and the
// last page, plus the current page and its neighbours. A gap of exactly one
// page shows that page; a larger gap collapses into a single Ellipsis.
func PageNumbers(current, total int) []int {
	if total < 1 {
		total = 1
	}
	if current < 1 || current > total {
		current = 1
	}

	var visible []int
	for p := 1; p <= total; p++ {
		if p == 1 || p == total || (p >= current-1 && p <= current+1) {
			visible = append(visible, p)
		}
	}

	window := make([]int, 0, len(visible)+2)
	prev := 0
	for _, p := range visible {
		switch gap := p - prev; {
		case prev == 0 || gap == 1:
		case gap == 2:
			window = append(window, prev+1)
		default:
			window = append(window, Ellipsis)
		}
		window = append(window, p)
		prev = p
	}
	return window
}
