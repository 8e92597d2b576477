package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		query string
		want  Page
	}{
		{"", Page{Number: 1, Size: DefaultPageSize}},
		{"p=3&size=10", Page{Number: 3, Size: 10}},
		{"p=0", Page{Number: 1, Size: DefaultPageSize}},
		{"p=abc&size=-4", Page{Number: 1, Size: DefaultPageSize}},
		{"size=5000", Page{Number: 1, Size: MaxPageSize}},
	}
	for _, tt := range tests {
		q, _ := url.ParseQuery(tt.query)
		assert.Equal(t, tt.want, PageFromQuery(q), tt.query)
	}
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, NewPage(1, 20).Offset())
	assert.Equal(t, 40, NewPage(3, 20).Offset())
}

func TestPage_LastPage(t *testing.T) {
	p := NewPage(1, 10)
	assert.Equal(t, 0, p.LastPage(0))
	assert.Equal(t, 1, p.LastPage(1))
	assert.Equal(t, 1, p.LastPage(10))
	assert.Equal(t, 2, p.LastPage(11))
	assert.Equal(t, 10, p.LastPage(100))
}

func TestSlice(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	for size := 1; size <= 50; size += 7 {
		p := NewPage(1, size)
		last := p.LastPage(len(items))
		seen := 0
		for n := 1; n <= last+1; n++ {
			page := Slice(items, NewPage(n, size))
			assert.LessOrEqual(t, len(page), size)
			seen += len(page)
		}
		assert.Equal(t, len(items), seen, "size %d", size)
	}

	assert.Equal(t, []int{20, 21, 22, 23, 24, 25, 26, 27, 28, 29}, Slice(items, NewPage(3, 10)))
	assert.Empty(t, Slice(items, NewPage(9, 10)))
}

func TestPageFromQuery_HugePageStaysPastTheEnd(t *testing.T) {
	q, _ := url.ParseQuery("p=9223372036854775807&size=20")
	p := PageFromQuery(q)

	assert.Positive(t, p.Offset())
	assert.Empty(t, Slice([]int{1, 2, 3}, p))
}

func TestSlice_NegativeOffset(t *testing.T) {
	assert.Empty(t, Slice([]int{1, 2, 3}, Page{Number: -3, Size: 20}))
}
