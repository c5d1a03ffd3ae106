package service

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// layout renders a window compactly, e.g. "1 … 4 [5] 6 … 10"
func layout(entries []PageWindowEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Ellipsis:
			parts = append(parts, "…")
		case e.Current:
			parts = append(parts, "["+strconv.Itoa(e.Page)+"]")
		default:
			parts = append(parts, strconv.Itoa(e.Page))
		}
	}
	return strings.Join(parts, " ")
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		current, total int
		want           string
	}{
		{1, 10, "[1] 2 3 4 5 … 10"},
		{3, 10, "1 2 [3] 4 5 … 10"},
		{4, 10, "1 … 2 3 [4] 5 6 … 10"},
		{5, 10, "1 … 3 4 [5] 6 7 … 10"},
		{7, 10, "1 … 5 6 [7] 8 9 10"},
		{8, 10, "1 … 6 7 [8] 9 10"},
		{10, 10, "1 … 8 9 [10]"},
		{5, 5, "1 … 3 4 [5]"},
		{1, 4, "[1] 2 3 4"},
		{2, 5, "1 [2] 3 4 5"},
		{1, 1, "[1]"},
		{1, 0, ""},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, layout(PageWindow(tc.current, tc.total)))
		})
	}
}

func TestPageWindow_NoDuplicates(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for current := 1; current <= total; current++ {
			seen := map[int]bool{}
			for _, e := range PageWindow(current, total) {
				if e.Ellipsis {
					continue
				}
				assert.False(t, seen[e.Page], "page %d repeated for current=%d total=%d", e.Page, current, total)
				assert.LessOrEqual(t, e.Page, total)
				seen[e.Page] = true
			}
			assert.True(t, seen[current], "current page %d missing for total=%d", current, total)
		}
	}
}
