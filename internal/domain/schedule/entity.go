package schedule

import "time"

// WorkSchedule is a named weekly template mapping weekdays to shift ids.
// A weekday absent from Shifts has no expected shift.
type WorkSchedule struct {
	ID           string
	ScheduleName string
	Shifts       map[time.Weekday]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ShiftLookup is the single typed way business logic reads a schedule's day mapping.
type ShiftLookup interface {
	ShiftForDay(day time.Weekday) (shiftID string, ok bool)
}

// ShiftForDay implements ShiftLookup.
func (w WorkSchedule) ShiftForDay(day time.Weekday) (string, bool) {
	id, ok := w.Shifts[day]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
