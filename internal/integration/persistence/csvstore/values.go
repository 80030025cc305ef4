package csvstore

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// DateLayout is the layout dates are written with.
const DateLayout = "2006-01-02"

var errInvalidDate = errors.New("invalid date")

// Slash-separated dates are always day-first.
var dateLayouts = []string{
	DateLayout,
	"02/01/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	time.RFC3339,
	"2/1/2006",
	"02-01-2006",
}

// ParseDate parses a date cell day-first and truncates it to the calendar day in UTC.
func ParseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, errInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errInvalidDate
}

// FormatDate renders a date cell.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseAmount accepts both plain decimals ("-1234.5") and BRL text ("R$ 1.234,50").
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if v, err := decimal.NewFromString(text); err == nil {
		return v, nil
	}
	return valueobject.ParseBRL(text)
}

// ParseAmountOrZero is ParseAmount with a zero fallback; ok is false when the fallback was used.
func ParseAmountOrZero(text string) (decimal.Decimal, bool) {
	if strings.TrimSpace(text) == "" {
		return decimal.Zero, true
	}
	v, err := ParseAmount(text)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// ParseCount parses integer cells such as "3", "3.0" or "3,0", with a zero fallback.
func ParseCount(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, true
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n, true
	}
	v, err := ParseAmount(text)
	if err != nil {
		return 0, false
	}
	return int(v.IntPart()), true
}

// ParseBool reads "Sim"/"Não" style flags.
func ParseBool(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "sim", "s", "true", "1", "yes":
		return true
	}
	return false
}

// FormatBool renders a flag the way the tables store it.
func FormatBool(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// DateTimeLayout is the layout creation timestamps are written with.
const DateTimeLayout = "2006-01-02 15:04"

// ParseDateTime parses a timestamp cell, falling back to a bare date at midnight.
func ParseDateTime(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range []string{DateTimeLayout, "2006-01-02 15:04:05", "02/01/2006 15:04", time.RFC3339} {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return ParseDate(text)
}
