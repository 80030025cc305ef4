// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// DateLayout is the date format of every request and response field.
const DateLayout = "2006-01-02"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Warnings converts a load report into the warnings array of a response.
func Warnings(report *valueobject.LoadReport) []string {
	return report.Messages()
}

// ParseDate reads a request date, either ISO or day-first with slashes.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err == nil {
		return t, nil
	}
	return time.Parse("02/01/2006", strings.TrimSpace(s))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalMoney(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money(*d)
	return &s
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
