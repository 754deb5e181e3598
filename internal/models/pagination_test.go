package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     Page
		total    int
		expected Pagination
	}{
		{
			name:     "even split",
			page:     Page{Number: 1, Limit: 10},
			total:    30,
			expected: Pagination{Page: 1, Limit: 10, Total: 30, TotalPages: 3},
		},
		{
			name:     "partial last page",
			page:     Page{Number: 2, Limit: 10},
			total:    25,
			expected: Pagination{Page: 2, Limit: 10, Total: 25, TotalPages: 3},
		},
		{
			name:     "empty listing",
			page:     Page{Number: 1, Limit: 10},
			total:    0,
			expected: Pagination{Page: 1, Limit: 10, Total: 0, TotalPages: 0},
		},
		{
			name:     "zero limit is clamped",
			page:     Page{Number: 1, Limit: 0},
			total:    5,
			expected: Pagination{Page: 1, Limit: 1, Total: 5, TotalPages: 5},
		},
		{
			name:     "negative limit is clamped",
			page:     Page{Number: 1, Limit: -3},
			total:    2,
			expected: Pagination{Page: 1, Limit: 1, Total: 2, TotalPages: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, NewPagination(tt.page, tt.total))
		})
	}
}
