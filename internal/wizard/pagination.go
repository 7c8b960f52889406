package wizard

// DefaultPageSize is the number of skips shown per page.
const DefaultPageSize = 6

// Pagination is a 1-indexed page window over a list of known length. The zero
// value is page 1 with DefaultPageSize. Methods never leave the page outside
// [1, TotalPages].
type Pagination struct {
	page     int
	pageSize int
}

// NewPagination returns page 1 with the given size; non-positive sizes fall
// back to DefaultPageSize.
func NewPagination(pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Pagination{page: 1, pageSize: pageSize}
}

func (p Pagination) Page() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}

func (p Pagination) PageSize() int {
	if p.pageSize <= 0 {
		return DefaultPageSize
	}
	return p.pageSize
}

// TotalPages is ceil(length/pageSize), with a minimum of 1 so an empty list
// still has a page.
func (p Pagination) TotalPages(length int) int {
	if length <= 0 {
		return 1
	}
	size := p.PageSize()
	return (length + size - 1) / size
}

// GoTo moves to page, clamped into [1, TotalPages]. The bool reports whether
// the page changed.
func (p Pagination) GoTo(page, length int) (Pagination, bool) {
	total := p.TotalPages(length)
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	changed := page != p.Page()
	p.page = page
	p.pageSize = p.PageSize()
	return p, changed
}

// Next advances one page unless already on the last.
func (p Pagination) Next(length int) (Pagination, bool) {
	if p.Page() >= p.TotalPages(length) {
		return p, false
	}
	return p.GoTo(p.Page()+1, length)
}

// Prev goes back one page unless already on the first.
func (p Pagination) Prev(length int) (Pagination, bool) {
	if p.Page() <= 1 {
		return p, false
	}
	return p.GoTo(p.Page()-1, length)
}

// Clamp re-establishes the page invariant after the list length changed.
func (p Pagination) Clamp(length int) Pagination {
	clamped, _ := p.GoTo(p.Page(), length)
	return clamped
}

// Bounds returns the half-open [start, end) window of the current page.
func (p Pagination) Bounds(length int) (int, int) {
	if length <= 0 {
		return 0, 0
	}
	size := p.PageSize()
	start := (p.Clamp(length).Page() - 1) * size
	end := start + size
	if end > length {
		end = length
	}
	return start, end
}

// Visible returns the items of the current page.
func Visible[T any](p Pagination, items []T) []T {
	start, end := p.Bounds(len(items))
	return items[start:end]
}
