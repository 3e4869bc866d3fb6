package pagination

// Page is one slice of an ordered result plus the numbers a pager needs.
type Page[T any] struct {
	Items           []T   `json:"items"`
	PageIndex       int   `json:"page_index"`
	PageSize        int   `json:"page_size"`
	TotalPages      int   `json:"total_pages"`
	TotalCount      int64 `json:"total_count"`
	HasPreviousPage bool  `json:"has_previous_page"`
	HasNextPage     bool  `json:"has_next_page"`
}

// Normalize clamps a 1-based page index and a page size.
func Normalize(pageIndex, pageSize int) (int, int) {
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return pageIndex, pageSize
}

// Offset is the number of rows before pageIndex.
func Offset(pageIndex, pageSize int) int {
	pageIndex, pageSize = Normalize(pageIndex, pageSize)
	return (pageIndex - 1) * pageSize
}

func New[T any](items []T, total int64, pageIndex, pageSize int) Page[T] {
	pageIndex, pageSize = Normalize(pageIndex, pageSize)
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Page[T]{
		Items:           items,
		PageIndex:       pageIndex,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		TotalCount:      total,
		HasPreviousPage: pageIndex > 1,
		HasNextPage:     pageIndex < totalPages,
	}
}
