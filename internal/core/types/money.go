// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MoneyFromValue converts a decoded JSON value to Money. Strings are parsed exactly;
// floats keep their shortest decimal representation.
func MoneyFromValue(v any) (Money, bool) {
	switch n := v.(type) {
	case Money:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case string:
		d, err := NewMoneyFromString(n)
		return d, err == nil
	}
	return decimal.Zero, false
}

// FormatMoney renders m with two decimals and a dollar sign, rounding half away from zero.
func FormatMoney(m Money) string {
	return "$" + m.StringFixed(2)
}
