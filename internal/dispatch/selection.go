package dispatch

import (
	"strconv"
	"strings"
)

// ParseSelection turns "1,3 2" or "all" into zero-based indices for a list
// of n items. Numbers are one-based; duplicates collapse to their first
// position. Tokens that are not numbers in range come back as invalid.
func ParseSelection(input string, n int) (indices []int, invalid []string) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "all" || input == "*" {
		for i := range n {
			indices = append(indices, i)
		}
		return indices, nil
	}

	seen := make(map[int]bool)
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, tok := range tokens {
		num, err := strconv.Atoi(tok)
		if err != nil || num < 1 || num > n {
			invalid = append(invalid, tok)
			continue
		}
		if !seen[num-1] {
			seen[num-1] = true
			indices = append(indices, num-1)
		}
	}
	return indices, invalid
}
