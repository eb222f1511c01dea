// Package pagination computes page counts, row windows, and page-selector items
// for in-memory collections and LIMIT/OFFSET queries.
//
// A Pager owns a single 1-indexed page number. The page is always kept within
// [1, max(1, TotalPages())], so Bounds never addresses rows outside the dataset
// and visiting pages 1..TotalPages() shows every row exactly once.
package pagination

import "errors"

// DefaultPageSize is used when a caller passes a zero page size.
const DefaultPageSize = 10

// ErrInvalidPageSize is returned for negative page sizes.
var ErrInvalidPageSize = errors.New("page size must be positive")

// Pager tracks the current page over a dataset of a known size.
type Pager struct {
	total int
	size  int
	page  int
}

// New returns a Pager positioned on page 1.
// A zero size selects DefaultPageSize; a negative size or total is rejected.
func New(total, size int) (*Pager, error) {
	if size < 0 {
		return nil, ErrInvalidPageSize
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	return &Pager{total: total, size: size, page: 1}, nil
}

// TotalPages returns ceil(total / size). It is 0 for an empty dataset.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Total returns the dataset size.
func (p *Pager) Total() int { return p.total }

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// Page returns the current page.
func (p *Pager) Page() int { return p.page }

// TotalPages returns the number of pages for this pager.
func (p *Pager) TotalPages() int { return TotalPages(p.total, p.size) }

// LastPage is TotalPages with a floor of 1, the highest page SetPage accepts.
func (p *Pager) LastPage() int {
	if n := p.TotalPages(); n > 1 {
		return n
	}
	return 1
}

// SetPage moves to page n, clamping out-of-range requests to the nearest
// valid page. It returns the page actually selected.
func (p *Pager) SetPage(n int) int {
	switch {
	case n < 1:
		n = 1
	case n > p.LastPage():
		n = p.LastPage()
	}
	p.page = n
	return n
}

// HasControl reports whether a page selector should be shown.
func (p *Pager) HasControl() bool {
	return p.TotalPages() > 1
}

// Offset returns the index of the first row on the current page.
func (p *Pager) Offset() int {
	return (p.page - 1) * p.size
}

// Bounds returns the half-open row range [start, end) of the current page,
// clamped to the dataset.
func (p *Pager) Bounds() (start, end int) {
	start = p.Offset()
	if start > p.total {
		start = p.total
	}
	end = start + p.size
	if end > p.total {
		end = p.total
	}
	return start, end
}

// HasPrev reports whether a previous page exists.
func (p *Pager) HasPrev() bool { return p.page > 1 }

// HasNext reports whether a next page exists.
func (p *Pager) HasNext() bool { return p.page < p.TotalPages() }

// Slice returns the rows of the current page. The result shares the backing
// array of items.
func Slice[T any](items []T, p *Pager) []T {
	start, end := p.Bounds()
	if start >= len(items) {
		return nil
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
