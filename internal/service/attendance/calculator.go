package attendance

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

// earlyArrivalMinutes is how far before shift start a check-in counts as early.
const earlyArrivalMinutes = 30

// DetermineCheckInStatus classifies a check-in against the shift start.
// Callers assign StatusAbsent themselves when no shift applies.
func DetermineCheckInStatus(now time.Time, s shift.ShiftPolicy) (attendance.Status, error) {
	start, err := timeutil.TimeStringToMinutes(s.StartTime)
	if err != nil {
		return "", fmt.Errorf("shift %s start_time: %w", s.ID, err)
	}

	current := timeutil.MinutesOfDay(now)
	switch {
	case current <= start-earlyArrivalMinutes:
		return attendance.StatusEarly, nil
	case current <= start+s.AllowLate:
		return attendance.StatusOnTime, nil
	default:
		return attendance.StatusLate, nil
	}
}

// CalculateWorkMetrics derives work hours, overtime and final status for a closed day.
// The result depends only on its inputs, so recomputing a stored day is safe.
func CalculateWorkMetrics(timeIn, timeOut string, s shift.ShiftPolicy) (attendance.WorkMetrics, error) {
	in, err := timeutil.TimeStringToMinutes(timeIn)
	if err != nil {
		return attendance.WorkMetrics{}, fmt.Errorf("time_in: %w", err)
	}
	out, err := timeutil.TimeStringToMinutes(timeOut)
	if err != nil {
		return attendance.WorkMetrics{}, fmt.Errorf("time_out: %w", err)
	}
	start, err := timeutil.TimeStringToMinutes(s.StartTime)
	if err != nil {
		return attendance.WorkMetrics{}, fmt.Errorf("shift %s start_time: %w", s.ID, err)
	}
	end, err := timeutil.TimeStringToMinutes(s.EndTime)
	if err != nil {
		return attendance.WorkMetrics{}, fmt.Errorf("shift %s end_time: %w", s.ID, err)
	}

	// No overlap between the worked interval and the shift.
	if in > end || out < start {
		return attendance.WorkMetrics{Status: attendance.StatusAbsent}, nil
	}

	validStart := max(in, start)
	validEnd := min(out, end)
	duration := max(0, validEnd-validStart)

	if s.HasBreak() {
		breakStart, err := timeutil.TimeStringToMinutes(*s.BreakStart)
		if err != nil {
			return attendance.WorkMetrics{}, fmt.Errorf("shift %s break_start: %w", s.ID, err)
		}
		breakEnd, err := timeutil.TimeStringToMinutes(*s.BreakEnd)
		if err != nil {
			return attendance.WorkMetrics{}, fmt.Errorf("shift %s break_end: %w", s.ID, err)
		}
		overlap := min(validEnd, breakEnd) - max(validStart, breakStart)
		if overlap > 0 {
			duration = max(0, duration-overlap)
		}
	}

	var workHours float64
	if duration > 0 {
		workHours = round2(float64(duration) / 60)
	}

	var overtimeBefore, overtimeAfter int
	if in < start {
		if potential := start - in; potential > s.OvertimeBefore {
			overtimeBefore = potential
		}
	}
	if out > end {
		if potential := out - end; potential > s.OvertimeAfter {
			overtimeAfter = potential
		}
	}
	overtime := round2(float64(overtimeBefore+overtimeAfter) / 60)

	var status attendance.Status
	switch {
	case in > start+s.AllowLate:
		status = attendance.StatusLate
	case out < end-s.AllowEarly:
		status = attendance.StatusEarly
	case overtime > 0:
		status = attendance.StatusOvertime
	default:
		status = attendance.StatusOnTime
	}

	return attendance.WorkMetrics{
		WorkHours: workHours,
		Overtime:  overtime,
		Status:    status,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
