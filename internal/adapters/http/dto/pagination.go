package dto

// Page size bounds for listings.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PaginationRequest is the page position of a cursor listing. Cursor is the
// opaque nextCursor of the previous page.
type PaginationRequest struct {
	Cursor string `form:"cursor" json:"cursor" validate:"omitempty,max=512"`
	Limit  int    `form:"limit"  json:"limit"  validate:"omitempty,gte=1,lte=100"`
}

// GetLimit returns the page size, DefaultLimit when none was asked for.
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}

	return min(p.Limit, MaxLimit)
}

// PaginatedResponse is one page of a listing.
type PaginatedResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// NewPaginatedResponse converts one page of items. The page has more
// results exactly when the store handed back a next cursor.
func NewPaginatedResponse[S, T any](items []S, nextCursor string, convert func(S) T) *PaginatedResponse[T] {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}

	return &PaginatedResponse[T]{
		Items:      out,
		NextCursor: nextCursor,
		HasMore:    nextCursor != "",
	}
}
