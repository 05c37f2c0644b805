package page

import (
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultSize = 10
	MaxSize     = 100
	// MaxNumber keeps Number*Size within an int32 for every allowed size.
	MaxNumber = math.MaxInt32 / MaxSize
)

// Request selects a zero-based page of a result set.
type Request struct {
	Number int
	Size   int
}

// Offset returns the number of rows to skip before the page starts.
func (r Request) Offset() int {
	return r.Number * r.Size
}

// Normalize clamps the request to a usable page: negative numbers become 0,
// numbers past MaxNumber become MaxNumber and out-of-range sizes fall back to
// DefaultSize.
func (r Request) Normalize() Request {
	if r.Number < 0 {
		r.Number = 0
	}
	if r.Number > MaxNumber {
		r.Number = MaxNumber
	}
	if r.Size <= 0 || r.Size > MaxSize {
		r.Size = DefaultSize
	}
	return r
}

// FromQuery reads `page` and `size` from a query string.
func FromQuery(q url.Values) Request {
	number, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	return Request{Number: number, Size: size}.Normalize()
}

// Page is a bounded slice of a larger result set.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"total_elements"`
	PageNumber    int `json:"page_number"`
	PageSize      int `json:"page_size"`
}

func New[T any](content []T, req Request, total int) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		PageNumber:    req.Number,
		PageSize:      req.Size,
	}
}

func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalElements + p.PageSize - 1) / p.PageSize
}

// Meta is the pagination block rendered next to the page content.
func (p Page[T]) Meta() map[string]any {
	return map[string]any{
		"page":        p.PageNumber,
		"page_size":   p.PageSize,
		"total":       p.TotalElements,
		"total_pages": p.TotalPages(),
	}
}

// Slice cuts the requested page out of an already filtered result set.
func Slice[T any](all []T, req Request) []T {
	start := req.Offset()
	if start < 0 || start >= len(all) {
		return []T{}
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}
	out := make([]T, end-start)
	copy(out, all[start:end])
	return out
}
