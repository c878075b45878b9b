package utils

import (
	"encoding/json"
	"testing"

	"par-manager/core/quantity"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"Nil", nil, ""},
		{"Trimmed", "  Widget ", "Widget"},
		{"Bytes", []byte(" ab "), "ab"},
		{"Float", 5.5, "5.5"},
		{"Whole float", float64(12), "12"},
		{"Int", 42, "42"},
		{"JSON number", json.Number("7.25"), "7.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToString(tt.input))
		})
	}
}

func TestToQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected quantity.Tenths
	}{
		{"Nil", nil, 0},
		{"Empty string", "", 0},
		{"Garbage", "lots", 0},
		{"String", "5.5", 55},
		{"Comma decimal", "2,04", 20},
		{"Half rounds away from zero", "0.05", 1},
		{"Int", 3, 30},
		{"Float", 9.96, 100},
		{"Negative clamps", -4.0, 0},
		{"Bool", true, 0},
		{"JSON number", json.Number("1.25"), 13},
		{"Oversized string", "1e30", 0},
		{"Oversized float", 1e30, 0},
		{"Oversized JSON number", json.Number("1e19"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToQuantity(tt.input))
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank("   "))
	assert.False(t, IsBlank("0"))
	assert.False(t, IsBlank(0.0))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("yes"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}
