package shift

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

// ShiftPolicy is one named work shift. All clock fields are same-day "HH:mm" strings.
type ShiftPolicy struct {
	ID         string
	Code       string
	Name       string
	StartTime  string
	EndTime    string
	BreakStart *string
	BreakEnd   *string

	// Grace minutes around start/end before a check-in/out is penalized.
	AllowLate  int
	AllowEarly int

	// Minimum excess minutes before early arrival / late departure counts as overtime.
	OvertimeBefore int
	OvertimeAfter  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBreak reports whether both break boundaries are configured.
func (s ShiftPolicy) HasBreak() bool {
	return s.BreakStart != nil && s.BreakEnd != nil &&
		*s.BreakStart != "" && *s.BreakEnd != ""
}

// Validate checks that every clock field parses and the shift does not span midnight.
func (s ShiftPolicy) Validate() error {
	start, err := timeutil.TimeStringToMinutes(s.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := timeutil.TimeStringToMinutes(s.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if start >= end {
		return ErrInvalidShiftWindow
	}

	if s.HasBreak() {
		breakStart, err := timeutil.TimeStringToMinutes(*s.BreakStart)
		if err != nil {
			return fmt.Errorf("break_start: %w", err)
		}
		breakEnd, err := timeutil.TimeStringToMinutes(*s.BreakEnd)
		if err != nil {
			return fmt.Errorf("break_end: %w", err)
		}
		if breakStart >= breakEnd {
			return ErrInvalidBreakWindow
		}
	}

	if s.AllowLate < 0 || s.AllowEarly < 0 || s.OvertimeBefore < 0 || s.OvertimeAfter < 0 {
		return ErrNegativeTolerance
	}

	return nil
}
