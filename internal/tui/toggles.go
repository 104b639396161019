package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseToggles parses space-separated 1-based numbers and inclusive ranges
// such as "1 5 10-15" against a list of n items. It returns the sorted,
// unique 0-based indices.
func ParseToggles(input string, n int) ([]int, error) {
	seen := map[int]struct{}{}
	for _, part := range strings.Fields(input) {
		if startStr, endStr, ok := strings.Cut(part, "-"); ok {
			start, errStart := strconv.Atoi(startStr)
			end, errEnd := strconv.Atoi(endStr)
			if errStart != nil || errEnd != nil || start > end || start < 1 || end > n {
				return nil, fmt.Errorf("invalid range: %s. Use #-# within 1-%d", part, n)
			}
			for i := start; i <= end; i++ {
				seen[i-1] = struct{}{}
			}
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 1 || idx > n {
			return nil, fmt.Errorf("invalid number: %s. Must be 1-%d", part, n)
		}
		seen[idx-1] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out, nil
}
