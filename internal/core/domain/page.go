package domain

// PageRequest selects a zero-indexed slice of an ordered result set.
type PageRequest struct {
	Page int
	Size int
	Sort string
}

// Offset is the number of rows skipped before the requested page.
func (r PageRequest) Offset() int64 {
	return int64(r.Page) * int64(r.Size)
}

// Page is a bounded slice of an ordered result set.
type Page[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int64
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page[T]) HasNext() bool {
	return int64(p.Page+1)*int64(p.Size) < p.Total
}

func (p Page[T]) HasPrevious() bool {
	return p.Page > 0
}
