package models

// Entity is implemented by every record type that carries a backend-assigned id.
type Entity interface {
	GetID() int
}

// Page is one page of a paginated result set. Page numbers are zero-based.
type Page[T any] struct {
	Content       []T  `json:"content"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	TotalElements int  `json:"total_elements"`
	TotalPages    int  `json:"total_pages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// NewPage builds a page and derives TotalPages, First and Last from the
// requested number, size and total element count.
// An empty result set has zero pages; its only page is both first and last.
func NewPage[T any](content []T, number, size, total int) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return Page[T]{
		Content:       content,
		Number:        number,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         number == 0,
		Last:          number >= totalPages-1,
	}
}

// Empty reports whether the page holds no rows.
func (p Page[T]) Empty() bool {
	return len(p.Content) == 0
}
