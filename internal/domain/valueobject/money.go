package valueobject

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a text amount cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseBRL parses a monetary text such as "R$ 1.234,56", "1234,56" or "1234.56".
// When a comma is present it is the decimal separator and dots are thousands separators.
func ParseBRL(text string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(text, "R$", "")
	cleaned = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' || r == '\t' {
			return -1
		}
		return r
	}, cleaned)
	if cleaned == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return value, nil
}

// ParseBRLOrZero parses text with ParseBRL, returning zero and false when it cannot.
func ParseBRLOrZero(text string) (decimal.Decimal, bool) {
	value, err := ParseBRL(text)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}

// FormatBRL renders value as "1.234,56".
func FormatBRL(value decimal.Decimal) string {
	fixed := value.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var sb strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(digit)
	}

	out := sb.String() + "," + fracPart
	if negative {
		return "-" + out
	}
	return out
}
