package utils

import (
	"fmt"
	"strconv"
	"strings"

	"par-manager/core/quantity"
)

// ToString converts a loosely typed value to a trimmed string.
// nil becomes the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// ToQuantity converts a loosely typed value to a tenths quantity.
// It handles standard numeric types, numeric strings (comma or dot decimal
// separator) and byte slices. Anything else, including nil, becomes zero.
func ToQuantity(val any) quantity.Tenths {
	switch v := val.(type) {
	case nil:
		return quantity.Zero
	case quantity.Tenths:
		return v
	case int:
		return quantity.FromFloat(float64(v))
	case int64:
		return quantity.FromFloat(float64(v))
	case int32:
		return quantity.FromFloat(float64(v))
	case uint:
		return quantity.FromFloat(float64(v))
	case uint64:
		return quantity.FromFloat(float64(v))
	case uint32:
		return quantity.FromFloat(float64(v))
	case float64:
		return quantity.FromFloat(v)
	case float32:
		return quantity.FromFloat(float64(v))
	case string:
		return quantity.Parse(v)
	case []byte:
		return quantity.Parse(string(v))
	case bool:
		return quantity.Zero
	default:
		return quantity.Parse(fmt.Sprintf("%v", v))
	}
}

// IsBlank reports whether a loosely typed value carries nothing.
func IsBlank(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []byte:
		return strings.TrimSpace(string(v)) == ""
	default:
		return false
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true", "yes").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int:
		return v == 1
	case int64:
		return v == 1
	case float64:
		return v == 1
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "true" || s == "yes"
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}
