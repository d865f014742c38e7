package schedule

import "errors"

var (
	ErrWorkScheduleNotFound = errors.New("work schedule not found")
	ErrInvalidWeekday       = errors.New("invalid weekday name")
	ErrInvalidShiftMapping  = errors.New("invalid work schedule shift mapping")
)
