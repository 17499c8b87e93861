// Package capacity turns the free-text capacity field on a venue ("50-200
// guests", "200") into a numeric ceiling for guest-count validation. The
// text is advisory: anything unparsable degrades to a permissive default
// instead of blocking a booking.
package capacity

import (
	"strconv"
	"strings"
)

// DefaultMax is the ceiling used whenever the capacity text cannot be
// parsed.
const DefaultMax = 1000

// ParseMax extracts the upper bound from a capacity string. For range text
// it takes whatever follows the last dash ("50-200 guests" -> 200); plain
// integers are used as-is. It never fails and always returns a positive
// value.
func ParseMax(capacityText string) int {
	text := strings.TrimSpace(capacityText)
	if text == "" {
		return DefaultMax
	}

	if idx := strings.LastIndex(text, "-"); idx >= 0 {
		if n := leadingInt(text[idx+1:]); n > 0 {
			return n
		}
		return DefaultMax
	}

	if n, err := strconv.Atoi(text); err == nil && n > 0 {
		return n
	}

	if n := leadingInt(text); n > 0 {
		return n
	}
	return DefaultMax
}

// leadingInt parses the integer prefix of s ("200 guests" -> 200),
// returning 0 when s does not start with a digit.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
