package utils

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is used when the request does not carry a usable size.
	DefaultPageSize = 20
	// MaxPageSize caps the size a caller may ask for.
	MaxPageSize = 100
)

// Page is a 1-based page request. Page 1 is the first page everywhere in this service.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"size"`
}

// NewPage clamps number and size into a valid page.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	// far past any real collection, and small enough that Offset cannot overflow
	if limit := math.MaxInt32 / size; number > limit {
		number = limit
	}
	return Page{Number: number, Size: size}
}

// PageFromQuery reads the "p" and "size" query parameters.
// Missing or invalid values fall back to the first page and the default size.
func PageFromQuery(q url.Values) Page {
	number, err := strconv.Atoi(strings.TrimSpace(q.Get("p")))
	if err != nil {
		number = 1
	}
	size, err := strconv.Atoi(strings.TrimSpace(q.Get("size")))
	if err != nil {
		size = DefaultPageSize
	}
	return NewPage(number, size)
}

// Offset is the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit is the maximum number of rows on this page.
func (p Page) Limit() int {
	return p.Size
}

// LastPage returns ceil(total/size), the index of the last page. An empty collection has no pages.
func (p Page) LastPage(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}

// Slice returns the part of items that belongs to this page.
func Slice[T any](items []T, p Page) []T {
	start := p.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
