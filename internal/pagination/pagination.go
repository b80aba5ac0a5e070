package pagination

// Params carries the page/size query parameters. A zero Size means
// "unpaginated": everything is returned in one page.
type Params struct {
	Page int
	Size int
}

// Paginated reports whether the caller asked for a bounded page.
func (p Params) Paginated() bool {
	return p.Size > 0
}

// Offset returns the row offset for the requested page.
func (p Params) Offset() int {
	if !p.Paginated() || p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Size
}

// Page is the envelope returned by list endpoints.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage assembles a Page from a result slice and the total row count.
func NewPage[T any](content []T, params Params, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	page := Page[T]{
		Content:       content,
		TotalElements: total,
	}
	if params.Paginated() {
		page.Page = params.Page
		if page.Page < 1 {
			page.Page = 1
		}
		page.Size = params.Size
		page.TotalPages = int((total + int64(params.Size) - 1) / int64(params.Size))
	} else {
		page.Page = 1
		page.Size = len(content)
		page.TotalPages = 1
	}
	return page
}
