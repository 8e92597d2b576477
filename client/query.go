package client

import (
	"net/url"
	"strconv"

	"fnp-marketplace/utils"
)

// ListQuery is the page, search and filter state of a paginated table.
// Changing the search or a filter sends the table back to page 1.
type ListQuery struct {
	page    int
	size    int
	search  string
	filters map[string]string
}

// NewListQuery starts at page 1 with the server's default size
func NewListQuery() *ListQuery {
	return &ListQuery{page: 1}
}

// Page is the current 1-based page
func (q *ListQuery) Page() int {
	if q == nil || q.page < 1 {
		return 1
	}
	return q.page
}

// Search is the current search term
func (q *ListQuery) Search() string {
	if q == nil {
		return ""
	}
	return q.search
}

// WithPage moves to page p. Values below 1 select the first page.
func (q *ListQuery) WithPage(p int) *ListQuery {
	if p < 1 {
		p = 1
	}
	q.page = p
	return q
}

// WithSize sets the page size. Zero leaves the choice to the server.
func (q *ListQuery) WithSize(n int) *ListQuery {
	if n < 0 {
		n = 0
	}
	q.size = n
	return q
}

// WithSearch sets the search term and resets to page 1 when it changes
func (q *ListQuery) WithSearch(s string) *ListQuery {
	if s != q.search {
		q.search = s
		q.page = 1
	}
	return q
}

// WithFilter sets a filter such as role or brand_id. An empty value removes it.
func (q *ListQuery) WithFilter(key, value string) *ListQuery {
	if q.filters == nil {
		q.filters = make(map[string]string)
	}
	if q.filters[key] == value {
		return q
	}
	if value == "" {
		delete(q.filters, key)
	} else {
		q.filters[key] = value
	}
	q.page = 1
	return q
}

// Next advances to the following page and reports whether one exists for total items
func (q *ListQuery) Next(total int) bool {
	size := q.size
	if size == 0 {
		size = utils.DefaultPageSize
	}
	if q.Page() >= utils.NewPage(q.Page(), size).LastPage(total) {
		return false
	}
	q.page = q.Page() + 1
	return true
}

// Values encodes the query with p as the page parameter
func (q *ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("p", strconv.Itoa(q.Page()))
	if q == nil {
		return v
	}
	if q.size > 0 {
		v.Set("size", strconv.Itoa(q.size))
	}
	if q.search != "" {
		v.Set("search", q.search)
	}
	for k, val := range q.filters {
		v.Set(k, val)
	}
	return v
}
