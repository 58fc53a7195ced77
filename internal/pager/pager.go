// Package pager splits an ordered list into fixed-size pages.
package pager

// DefaultSize is the number of appointments shown per page.
const DefaultSize = 6

// PageCount returns ceil(n/size), never less than 1 so an empty list still
// has one (empty) page.
func PageCount(n, size int) int {
	if size <= 0 {
		size = DefaultSize
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Slice returns the items visible on the zero-based page.
func Slice[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultSize
	}
	start := page * size
	if page < 0 || start >= len(items) {
		return nil
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// AbsoluteIndex maps a row on the page to its index in the full list.
func AbsoluteIndex(page, visible, size int) int {
	if size <= 0 {
		size = DefaultSize
	}
	return page*size + visible
}

// Pager tracks the current page of a list of Len items.
type Pager struct {
	Size int
	page int
}

// New returns a Pager on the first page.
func New(size int) *Pager {
	if size <= 0 {
		size = DefaultSize
	}
	return &Pager{Size: size}
}

// Page returns the zero-based current page.
func (p *Pager) Page() int { return p.page }

// Pages returns the page count for n items.
func (p *Pager) Pages(n int) int { return PageCount(n, p.Size) }

// Select moves to page, clamped to the pages available for n items.
func (p *Pager) Select(page, n int) {
	last := p.Pages(n) - 1
	switch {
	case page < 0:
		p.page = 0
	case page > last:
		p.page = last
	default:
		p.page = page
	}
}

// Next moves forward one page if possible.
func (p *Pager) Next(n int) { p.Select(p.page+1, n) }

// Prev moves back one page if possible.
func (p *Pager) Prev(n int) { p.Select(p.page-1, n) }

// Visible returns the current page of items.
func Visible[T any](p *Pager, items []T) []T {
	return Slice(items, p.page, p.Size)
}

// Index maps a visible row on the current page to its absolute index.
func (p *Pager) Index(visible int) int {
	return AbsoluteIndex(p.page, visible, p.Size)
}
