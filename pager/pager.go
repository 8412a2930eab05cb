// Package pager slices record lists into fixed size pages.
package pager

const DefaultSize = 10

// TotalPages is ceil(count/size), never less than one.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultSize
	}
	pages := (count + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Page returns records[(page-1)*size : page*size] clamped to the list bounds.
// Pages past the end, or below one, are empty.
func Page[T any](records []T, page, size int) []T {
	if size <= 0 {
		size = DefaultSize
	}
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(records) {
		return []T{}
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// Pager tracks the page being viewed.
type Pager struct {
	Current int
	Size    int
	total   int
}

func New(size int) Pager {
	if size <= 0 {
		size = DefaultSize
	}
	return Pager{Current: 1, Size: size, total: 1}
}

// Resize recomputes the page count for count records and clamps Current.
func (p Pager) Resize(count int) Pager {
	p.total = TotalPages(count, p.Size)
	return p.Go(p.Current)
}

func (p Pager) Total() int {
	if p.total < 1 {
		return 1
	}
	return p.total
}

// Go moves to page n clamped to [1, Total()].
func (p Pager) Go(n int) Pager {
	switch {
	case n < 1:
		n = 1
	case n > p.Total():
		n = p.Total()
	}
	p.Current = n
	return p
}

func (p Pager) Next() Pager { return p.Go(p.Current + 1) }
func (p Pager) Prev() Pager { return p.Go(p.Current - 1) }

func (p Pager) HasNext() bool { return p.Current < p.Total() }
func (p Pager) HasPrev() bool { return p.Current > 1 }
