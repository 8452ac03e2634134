package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wqcli/internal/quality"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		expected  string
	}{
		{"two decimals", 1.23456, 2, "1.23"},
		{"four decimals", 1.938, 4, "1.9380"},
		{"zero precision rounds", 2.5001, 0, "3"},
		{"negative", -0.5, 2, "-0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFloat(tt.value, tt.precision))
		})
	}
}

func TestFormatIndex(t *testing.T) {
	assert.Equal(t, "1.94", formatIndex(quality.DefinedIndex(1.938), 2))
	assert.Equal(t, "undefined", formatIndex(quality.UndefinedIndex(quality.ReasonOneSided), 2))
}

func TestFormatLimit(t *testing.T) {
	assert.Equal(t, "", formatLimit(10, false, 2))
	assert.Equal(t, "10.00", formatLimit(10, true, 2))
}
