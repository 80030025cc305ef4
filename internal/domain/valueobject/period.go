package valueobject

import (
	"fmt"
	"time"
)

// DueDateOffsetDays is the number of days between issue date and due date.
const DueDateOffsetDays = 10

// PeriodBucket returns the half-month grouping key: "MM/1ª" for day <= 15, "MM/2ª" otherwise.
func PeriodBucket(date time.Time) string {
	half := "1ª"
	if date.Day() > 15 {
		half = "2ª"
	}
	return fmt.Sprintf("%02d/%s", int(date.Month()), half)
}

// DueDate returns the due date of a shipment issued on issueDate.
func DueDate(issueDate time.Time) time.Time {
	return issueDate.AddDate(0, 0, DueDateOffsetDays)
}

// DateRange is an inclusive calendar range. A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether date falls inside the range, compared by calendar day.
func (r DateRange) Contains(date time.Time) bool {
	day := truncateDay(date)
	if r.From != nil && day.Before(truncateDay(*r.From)) {
		return false
	}
	if r.To != nil && day.After(truncateDay(*r.To)) {
		return false
	}
	return true
}

// IsValid reports whether the range does not end before it starts.
func (r DateRange) IsValid() bool {
	if r.From == nil || r.To == nil {
		return true
	}
	return !truncateDay(*r.To).Before(truncateDay(*r.From))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
