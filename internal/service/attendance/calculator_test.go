package attendance

import (
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func officeShift() shift.ShiftPolicy {
	return shift.ShiftPolicy{
		ID:         "shift-office",
		Code:       "OFFICE",
		Name:       "Office Hours",
		StartTime:  "08:00",
		EndTime:    "17:00",
		AllowLate:  15,
		AllowEarly: 15,
	}
}

func TestCalculateWorkMetrics_Scenarios(t *testing.T) {
	withBreak := officeShift()
	withBreak.BreakStart = strPtr("12:00")
	withBreak.BreakEnd = strPtr("13:00")

	overtimeAfter30 := officeShift()
	overtimeAfter30.AllowLate = 0
	overtimeAfter30.AllowEarly = 0
	overtimeAfter30.OvertimeAfter = 30

	// 10 minutes past end stays under the threshold.
	tolerantAfter := officeShift()
	tolerantAfter.OvertimeAfter = 15

	tests := []struct {
		name    string
		timeIn  string
		timeOut string
		shift   shift.ShiftPolicy
		want    attendance.WorkMetrics
	}{
		{
			name:    "on time full day, worked time clamped to shift",
			timeIn:  "08:05:00",
			timeOut: "17:10:00",
			shift:   tolerantAfter,
			want:    attendance.WorkMetrics{WorkHours: 8.92, Overtime: 0, Status: attendance.StatusOnTime},
		},
		{
			// Worked time is clamped to the shift window, so the 5 late
			// minutes are not counted and any minute past end is overtime.
			name:    "full day with no overtime threshold",
			timeIn:  "08:05:00",
			timeOut: "17:10:00",
			shift:   officeShift(),
			want:    attendance.WorkMetrics{WorkHours: 8.92, Overtime: 0.17, Status: attendance.StatusOvertime},
		},
		{
			name:    "late arrival",
			timeIn:  "08:20:00",
			timeOut: "17:00:00",
			shift:   officeShift(),
			want:    attendance.WorkMetrics{WorkHours: 8.67, Overtime: 0, Status: attendance.StatusLate},
		},
		{
			name:    "overtime after shift",
			timeIn:  "08:00:00",
			timeOut: "18:00:00",
			shift:   overtimeAfter30,
			want:    attendance.WorkMetrics{WorkHours: 9, Overtime: 1, Status: attendance.StatusOvertime},
		},
		{
			name:    "break deducted",
			timeIn:  "08:00:00",
			timeOut: "17:00:00",
			shift:   withBreak,
			want:    attendance.WorkMetrics{WorkHours: 8, Overtime: 0, Status: attendance.StatusOnTime},
		},
		{
			name:    "early leave",
			timeIn:  "08:00:00",
			timeOut: "16:00:00",
			shift:   officeShift(),
			want:    attendance.WorkMetrics{WorkHours: 8, Overtime: 0, Status: attendance.StatusEarly},
		},
		{
			name:    "late takes precedence over early",
			timeIn:  "09:00:00",
			timeOut: "15:00:00",
			shift:   officeShift(),
			want:    attendance.WorkMetrics{WorkHours: 6, Overtime: 0, Status: attendance.StatusLate},
		},
		{
			name:    "overtime before shift over zero threshold",
			timeIn:  "07:30:00",
			timeOut: "17:00:00",
			shift:   officeShift(),
			want:    attendance.WorkMetrics{WorkHours: 9, Overtime: 0.5, Status: attendance.StatusOvertime},
		},
		{
			name:    "check in after shift end is absent",
			timeIn:  "17:30:00",
			timeOut: "18:00:00",
			shift:   officeShift(),
			want:    attendance.WorkMetrics{Status: attendance.StatusAbsent},
		},
		{
			name:    "check out before shift start is absent",
			timeIn:  "06:00:00",
			timeOut: "07:30:00",
			shift:   officeShift(),
			want:    attendance.WorkMetrics{Status: attendance.StatusAbsent},
		},
		{
			name:    "worked entirely inside break",
			timeIn:  "12:10:00",
			timeOut: "12:50:00",
			shift:   withBreak,
			want:    attendance.WorkMetrics{WorkHours: 0, Overtime: 0, Status: attendance.StatusLate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateWorkMetrics(tt.timeIn, tt.timeOut, tt.shift)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateWorkMetrics_InvalidFormat(t *testing.T) {
	_, err := CalculateWorkMetrics("", "17:00:00", officeShift())
	assert.ErrorIs(t, err, timeutil.ErrInvalidFormat)

	broken := officeShift()
	broken.EndTime = "1700"
	_, err = CalculateWorkMetrics("08:00:00", "17:00:00", broken)
	assert.ErrorIs(t, err, timeutil.ErrInvalidFormat)
}

func clockAt(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// Every pair of quarter-hour clock times yields a defined, non-negative,
// repeatable result, and break deduction never adds time.
func TestCalculateWorkMetrics_TotalAndIdempotent(t *testing.T) {
	plain := officeShift()
	plain.OvertimeBefore = 20
	plain.OvertimeAfter = 10

	withBreak := plain
	withBreak.BreakStart = strPtr("12:00")
	withBreak.BreakEnd = strPtr("13:00")

	valid := map[attendance.Status]bool{}
	for _, s := range attendance.StatusValues {
		valid[attendance.Status(s)] = true
	}

	for in := 0; in < 24*60; in += 15 {
		for out := in; out < 24*60; out += 15 {
			timeIn, timeOut := clockAt(in), clockAt(out)

			first, err := CalculateWorkMetrics(timeIn, timeOut, withBreak)
			require.NoError(t, err)
			second, err := CalculateWorkMetrics(timeIn, timeOut, withBreak)
			require.NoError(t, err)
			noBreak, err := CalculateWorkMetrics(timeIn, timeOut, plain)
			require.NoError(t, err)

			assert.Equal(t, first, second, "%s-%s", timeIn, timeOut)
			assert.GreaterOrEqual(t, first.WorkHours, 0.0)
			assert.GreaterOrEqual(t, first.Overtime, 0.0)
			assert.True(t, valid[first.Status], "%s-%s status %q", timeIn, timeOut, first.Status)
			assert.LessOrEqual(t, first.WorkHours, noBreak.WorkHours, "%s-%s", timeIn, timeOut)

			if in > 17*60 || out < 8*60 {
				assert.Equal(t, attendance.WorkMetrics{Status: attendance.StatusAbsent}, first)
			}
		}
	}
}

func TestDetermineCheckInStatus(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	at := func(hour, minute int) time.Time {
		return time.Date(2024, 3, 4, hour, minute, 30, 0, loc)
	}

	tests := []struct {
		name string
		now  time.Time
		want attendance.Status
	}{
		{"well before start", at(7, 0), attendance.StatusEarly},
		{"exactly thirty minutes early", at(7, 30), attendance.StatusEarly},
		{"just inside early window", at(7, 31), attendance.StatusOnTime},
		{"at start", at(8, 0), attendance.StatusOnTime},
		{"at grace limit", at(8, 15), attendance.StatusOnTime},
		{"past grace limit", at(8, 16), attendance.StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetermineCheckInStatus(tt.now, officeShift())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetermineCheckInStatus_InvalidStart(t *testing.T) {
	s := officeShift()
	s.StartTime = ""
	_, err := DetermineCheckInStatus(time.Now(), s)
	assert.ErrorIs(t, err, timeutil.ErrInvalidFormat)
}
