package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		shown    int
		count    int64
		expected Pagination
	}{
		{
			name:     "first of three pages",
			page:     1,
			limit:    10,
			shown:    10,
			count:    25,
			expected: Pagination{Current: 1, Total: 3, HasNext: true, HasPrev: false},
		},
		{
			name:     "last partial page",
			page:     3,
			limit:    10,
			shown:    5,
			count:    25,
			expected: Pagination{Current: 3, Total: 3, HasNext: false, HasPrev: true},
		},
		{
			name:     "no results",
			page:     1,
			limit:    10,
			shown:    0,
			count:    0,
			expected: Pagination{Current: 1, Total: 0, HasNext: false, HasPrev: false},
		},
		{
			name:     "page past the end",
			page:     5,
			limit:    10,
			shown:    0,
			count:    25,
			expected: Pagination{Current: 5, Total: 3, HasNext: false, HasPrev: true},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, NewPagination(test.page, test.limit, test.shown, test.count))
		})
	}
}
