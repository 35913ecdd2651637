package domain

// PageSize is the fixed number of listings per result page.
const PageSize = 50

// Pagination holds the clamped page, skip/limit and totals for one request.
type Pagination struct {
	Page       int
	TotalPages int
	TotalCount int64
	Skip       int
	Limit      int
}

// NewPagination computes pagination for a total count and a requested page.
// The page is clamped into [1, totalPages], so skip never lands beyond the
// available rows and the result is always renderable, even for zero rows.
func NewPagination(totalCount int64, requestedPage int) Pagination {
	totalPages := int((totalCount + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	page := requestedPage
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return Pagination{
		Page:       page,
		TotalPages: totalPages,
		TotalCount: totalCount,
		Skip:       (page - 1) * PageSize,
		Limit:      PageSize,
	}
}

// Range derives the 1-indexed display range for the number of rows the page
// query actually returned. Both bounds are 0 when nothing matched.
func (p Pagination) Range(returned int) (start, end int) {
	if p.TotalCount == 0 {
		return 0, 0
	}

	return p.Skip + 1, p.Skip + returned
}
