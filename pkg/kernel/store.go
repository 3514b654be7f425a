package kernel

// Page is pagination metadata for a listing.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"page_size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// Paginated wraps one page of results.
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"pagination"`
	Empty bool `json:"empty"`
}

// NewPaginated computes the page count from total and size.
func NewPaginated[T any](items []T, page, size, total int) Paginated[T] {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Items: items,
		Page:  Page{Number: page, Size: size, Total: total, Pages: pages},
		Empty: len(items) == 0,
	}
}

func (p Paginated[T]) HasNext() bool     { return p.Page.Number < p.Page.Pages }
func (p Paginated[T]) HasPrevious() bool { return p.Page.Number > 1 }

// PaginationOptions requests a 1-based page.
type PaginationOptions struct {
	Page     int
	PageSize int
}

// Normalize clamps the page to >= 1 and the size to [1, maxSize].
func (o PaginationOptions) Normalize(defaultSize, maxSize int) PaginationOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = defaultSize
	}
	if o.PageSize > maxSize {
		o.PageSize = maxSize
	}
	return o
}

// Offset is the number of records before the requested page.
func (o PaginationOptions) Offset() int {
	return (o.Page - 1) * o.PageSize
}
