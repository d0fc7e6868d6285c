package csvparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	tests := map[string]int{
		"1.234,56":  1234,
		"1,234.56":  1234,
		"12.100":    12100,
		"1,234":     1234,
		"1.234.567": 1234567,
		" 42 ":      42,
		"":          0,
		"abc":       0,
		"1 000":     1000,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseInt(in), "input %q", in)
	}
}

func TestParseFloat(t *testing.T) {
	tests := map[string]float64{
		"1.234,56":  1234.56,
		"1,234.56":  1234.56,
		"0,45":      0.45,
		"0.45":      0.45,
		"1,234,567": 1234567,
		"1.234.567": 1234567,
		"":          0,
		"n/d":       0,
		"NaN":       0,
	}
	for in, want := range tests {
		assert.InDelta(t, want, ParseFloat(in), 1e-9, "input %q", in)
	}
}
