package shared

// Filter represents query filter options shared by all list operations.
// Repositories are tenant-bound, so the filter never carries tenant state.
type Filter struct {
	Page     int
	PageSize int
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default pagination
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 50,
		Filters:  make(map[string]interface{}),
	}
}

// Offset returns the row offset for the filter's page, or 0 when
// pagination is disabled.
func (f Filter) Offset() int {
	if f.Page > 0 && f.PageSize > 0 {
		return (f.Page - 1) * f.PageSize
	}
	return 0
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
