// Package input turns free text into the typed arguments the domain accepts.
// Every failure wraps catalog.ErrInvalidInput.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

var ErrInvalidInput = catalog.ErrInvalidInput

var hundred = decimal.NewFromInt(100)

func ProductName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", fmt.Errorf("input: product name is required: %w", ErrInvalidInput)
	}
	return name, nil
}

// Amount parses a non-negative currency amount.
func Amount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("input: amount %q: %w", s, ErrInvalidInput)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("input: amount %q is negative: %w", s, ErrInvalidInput)
	}
	return d, nil
}

// Quantity parses a non-negative integer count.
func Quantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("input: quantity %q: %w", s, ErrInvalidInput)
	}
	if n < 0 {
		return 0, fmt.Errorf("input: quantity %q is negative: %w", s, ErrInvalidInput)
	}
	return n, nil
}

// PositiveQuantity parses an integer count greater than zero.
func PositiveQuantity(s string) (int, error) {
	n, err := Quantity(s)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("input: quantity must be greater than zero: %w", ErrInvalidInput)
	}
	return n, nil
}

// Margin parses a fractional margin. "25%" is read as 0.25. The sign is not
// checked.
func Margin(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	percent := strings.HasSuffix(raw, "%")
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "%"))

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("input: margin %q: %w", s, ErrInvalidInput)
	}
	if percent {
		d = d.Div(hundred)
	}
	return d, nil
}
