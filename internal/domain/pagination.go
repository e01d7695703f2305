package domain

// PaginationParams selects one page of a listing. A non-positive PageSize
// means the whole listing.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset is the number of items before the page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.PageSize <= 0 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages is the page count for total items; 0 when unpaginated.
func (p PaginationParams) TotalPages(total int) int {
	if p.PageSize <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}
