package attendance

import (
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	records := []attendance.Record{
		{Status: attendance.StatusOnTime, WorkHours: 8.92},
		{Status: attendance.StatusLate, WorkHours: 8.67},
		{Status: attendance.StatusEarly, WorkHours: 7.5},
		{Status: attendance.StatusAbsent},
		{Status: attendance.StatusOvertime, WorkHours: 9, Overtime: 1},
		{Status: attendance.StatusOvertime, WorkHours: 9, Overtime: 0.33},
	}

	got := Summarize(records)

	assert.Equal(t, attendance.Summary{
		TotalRecords:   6,
		OnTime:         1,
		Late:           1,
		Early:          1,
		Absent:         1,
		Overtime:       2,
		TotalWorkHours: 43.09,
		TotalOvertime:  1.33,
	}, got)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, attendance.Summary{}, Summarize(nil))
}
