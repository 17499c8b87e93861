package capacity_test

import (
	"testing"

	"bookmyspot/internal/booking/capacity"

	"github.com/stretchr/testify/assert"
)

func TestParseMaxRanges(t *testing.T) {
	assert.Equal(t, 200, capacity.ParseMax("50-200 guests"))
	assert.Equal(t, 500, capacity.ParseMax("100 - 500"))
	assert.Equal(t, 150, capacity.ParseMax("up to 50-150 people"))
}

func TestParseMaxPlainNumbers(t *testing.T) {
	assert.Equal(t, 120, capacity.ParseMax("120"))
	assert.Equal(t, 75, capacity.ParseMax("  75  "))
	assert.Equal(t, 300, capacity.ParseMax("300 guests"))
}

func TestParseMaxFallsBackToDefault(t *testing.T) {
	cases := []string{"", "abc", "many", "-", "large hall", "0"}
	for _, text := range cases {
		assert.Equal(t, capacity.DefaultMax, capacity.ParseMax(text), "input %q", text)
	}
}

// Any input must produce a positive ceiling; unparsable text never blocks
// a booking.
func TestParseMaxAlwaysPositive(t *testing.T) {
	inputs := []string{"", "50-200 guests", "200", "abc", "--", "-xyz", "12-", "guests 10-abc"}
	for _, text := range inputs {
		got := capacity.ParseMax(text)
		assert.Greater(t, got, 0, "input %q", text)
	}
}
