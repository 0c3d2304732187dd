// Package normalize provides pure normalization helpers for the heterogeneous
// tokens found in statement text: currency amounts, dates, and free-text
// descriptions.
package normalize

import (
	"errors"
	"strconv"
	"strings"
)

// ErrBadAmount is returned when a token cannot be read as a currency amount.
var ErrBadAmount = errors.New("unparsable amount")

// Amount converts a currency token into a signed float64. It strips a
// currency symbol and thousands separators, and accepts either a leading
// minus sign or accounting-style parentheses for negatives:
//
//	"$1,234.56" -> 1234.56
//	"(45.00)"   -> -45.00
//	"-45.00"    -> -45.00
func Amount(token string) (float64, error) {
	s := strings.TrimSpace(token)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrBadAmount
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrBadAmount
	}

	if negative && value > 0 {
		value = -value
	}
	return value, nil
}
