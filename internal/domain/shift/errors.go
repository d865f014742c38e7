package shift

import "errors"

var (
	ErrInvalidShiftWindow = errors.New("shift start_time must be before end_time")
	ErrInvalidBreakWindow = errors.New("shift break_start must be before break_end")
	ErrNegativeTolerance  = errors.New("shift tolerances must not be negative")
)
