package news

import "math"

// Pagination defaults for the feed and the owner view
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type PageInfo struct {
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
}

// NewPageInfo derives page metadata. limit must be positive.
func NewPageInfo(page, limit, total int) PageInfo {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return PageInfo{
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
		CurrentPage:     page,
		TotalPages:      totalPages,
	}
}

// Offset returns the number of records skipped before the page.
// ok is false when the offset does not fit in an int.
func Offset(page, limit int) (offset int, ok bool) {
	if page < 1 || limit < 1 {
		return 0, page >= 1
	}
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}
