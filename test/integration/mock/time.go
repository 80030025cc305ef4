package mock

import "time"

// Time is a movable clock used to render dates relative to the scenario's "today".
type Time struct {
	currentStartTime time.Time
	updatedAt        time.Time
}

func NewTime() *Time {
	return &Time{
		currentStartTime: time.Now(),
		updatedAt:        time.Now(),
	}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.currentStartTime = currentTime
	t.updatedAt = time.Now()
}

func (t *Time) Now() time.Time {
	elapsed := time.Since(t.updatedAt)
	return t.currentStartTime.Add(elapsed)
}

// DaysFromToday returns the calendar day offset by days from Now.
func (t *Time) DaysFromToday(days int) time.Time {
	now := t.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, days)
}
