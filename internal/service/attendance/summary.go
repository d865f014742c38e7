package attendance

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// Summarize reduces records into per-status counts and hour totals.
func Summarize(records []attendance.Record) attendance.Summary {
	var s attendance.Summary
	var workHours, overtime float64

	for _, r := range records {
		s.TotalRecords++
		switch r.Status {
		case attendance.StatusOnTime:
			s.OnTime++
		case attendance.StatusLate:
			s.Late++
		case attendance.StatusEarly:
			s.Early++
		case attendance.StatusAbsent:
			s.Absent++
		case attendance.StatusOvertime:
			s.Overtime++
		}
		workHours += r.WorkHours
		overtime += r.Overtime
	}

	s.TotalWorkHours = round2(workHours)
	s.TotalOvertime = round2(overtime)
	return s
}
