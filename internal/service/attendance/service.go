package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/google/uuid"
)

// ShiftResolver returns the shift a user is expected to work at instant, or nil.
type ShiftResolver interface {
	Resolve(ctx context.Context, u user.User, instant time.Time) (*shift.ShiftPolicy, error)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	device.DeviceRepository
	shift.ShiftRepository
	resolver ShiftResolver
	notifier attendance.Notifier
	loc      *time.Location
	now      func() time.Time
}

// ProcessEvent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ProcessEvent(ctx context.Context, event attendance.Event) (attendance.EventResult, error) {
	if !event.AuthMethod.Valid() {
		return attendance.EventResult{}, attendance.ErrInvalidAuthMethod
	}

	u, err := a.UserRepository.GetByID(ctx, event.UserID)
	if err != nil {
		return attendance.EventResult{}, fmt.Errorf("failed to get user: %w", err)
	}

	d, err := a.DeviceRepository.GetByID(ctx, event.DeviceID)
	if err != nil {
		return attendance.EventResult{}, fmt.Errorf("failed to get device: %w", err)
	}

	now := event.Timestamp
	if now.IsZero() {
		now = a.now()
	}
	now = now.In(a.loc)
	date := timeutil.DateOnly(now)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, u.ID, date)
	if err != nil {
		return attendance.EventResult{}, fmt.Errorf("failed to get attendance for date: %w", err)
	}

	var result attendance.EventResult
	if existing != nil {
		result, err = a.checkOut(ctx, *existing, d, event.AuthMethod, now)
	} else {
		result, err = a.checkIn(ctx, u, d, event.AuthMethod, now, date)
	}
	if err != nil {
		return attendance.EventResult{}, err
	}

	result.Record.UserName = &u.Name

	slog.Info("attendance event processed",
		"type", result.Type,
		"status", result.Record.Status,
		"user_id", u.ID,
		"device_id", d.ID,
		"date", date.Format("2006-01-02"),
	)

	a.notify(ctx, u, d, result)

	return result, nil
}

// checkIn builds the insert-only defaults for the day and hands them to the atomic
// upsert. Losing the race to a concurrent event turns this into a check-out.
func (a *AttendanceServiceImpl) checkIn(ctx context.Context, u user.User, d device.Device, method attendance.AuthMethod, now, date time.Time) (attendance.EventResult, error) {
	candidate := attendance.Record{
		ID:                uuid.Must(uuid.NewV7()).String(),
		UserID:            u.ID,
		Date:              date,
		TimeIn:            timeutil.FormatTimeString(now),
		CheckInDeviceID:   d.ID,
		CheckInAuthMethod: method,
		Status:            attendance.StatusAbsent,
	}

	expected, err := a.resolver.Resolve(ctx, u, now)
	if err != nil {
		return attendance.EventResult{}, fmt.Errorf("failed to resolve expected shift: %w", err)
	}
	if expected != nil {
		status, err := DetermineCheckInStatus(now, *expected)
		if err != nil {
			return attendance.EventResult{}, err
		}
		candidate.Status = status
		candidate.ExpectedShiftID = &expected.ID
		candidate.ExpectedStartTime = &expected.StartTime
		candidate.ExpectedEndTime = &expected.EndTime
	}

	record, created, err := a.AttendanceRepository.FindOrCreate(ctx, candidate)
	if err != nil {
		return attendance.EventResult{}, fmt.Errorf("failed to find or create attendance: %w", err)
	}
	if !created {
		return a.checkOut(ctx, record, d, method, now)
	}

	return attendance.EventResult{Type: attendance.EventCheckIn, Record: record}, nil
}

// checkOut stamps time_out and recomputes metrics against the shift frozen at
// check-in. Repeated check-outs overwrite; the last event of the day wins.
func (a *AttendanceServiceImpl) checkOut(ctx context.Context, record attendance.Record, d device.Device, method attendance.AuthMethod, now time.Time) (attendance.EventResult, error) {
	timeOut := timeutil.FormatTimeString(now)
	record.TimeOut = &timeOut
	record.CheckOutDeviceID = &d.ID
	record.CheckOutAuthMethod = &method

	if record.ExpectedShiftID != nil {
		policy, err := a.ShiftRepository.GetByID(ctx, *record.ExpectedShiftID)
		if err != nil {
			return attendance.EventResult{}, fmt.Errorf("failed to get expected shift: %w", err)
		}
		if record.ExpectedStartTime != nil && record.ExpectedEndTime != nil {
			policy.StartTime = *record.ExpectedStartTime
			policy.EndTime = *record.ExpectedEndTime
		}

		metrics, err := CalculateWorkMetrics(record.TimeIn, timeOut, policy)
		if err != nil {
			return attendance.EventResult{}, err
		}
		record.WorkHours = metrics.WorkHours
		record.Overtime = metrics.Overtime
		record.Status = metrics.Status
	}

	updated, err := a.AttendanceRepository.UpdateCheckOut(ctx, record)
	if err != nil {
		return attendance.EventResult{}, fmt.Errorf("failed to update check-out: %w", err)
	}

	return attendance.EventResult{Type: attendance.EventCheckOut, Record: updated}, nil
}

func (a *AttendanceServiceImpl) notify(ctx context.Context, u user.User, d device.Device, result attendance.EventResult) {
	if a.notifier == nil {
		return
	}

	clock := result.Record.TimeIn
	if result.Type == attendance.EventCheckOut && result.Record.TimeOut != nil {
		clock = *result.Record.TimeOut
	}

	day := result.Record.Date
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, a.loc)
	stamp, err := timeutil.Combine(day, clock)
	if err != nil {
		slog.Error("failed to build activity timestamp", "record_id", result.Record.ID, "error", err)
		return
	}

	n := attendance.ActivityNotification{
		User:      attendance.ActivityUser{Name: u.Name, Avatar: u.Avatar},
		Time:      clock,
		Device:    d.Description,
		Status:    result.Record.CheckInAuthMethod,
		Timestamp: stamp.Format(time.RFC3339),
		Type:      result.Type,
	}
	if result.Type == attendance.EventCheckOut && result.Record.CheckOutAuthMethod != nil {
		n.Status = *result.Record.CheckOutAuthMethod
	}

	if err := a.notifier.NotifyActivity(ctx, n); err != nil {
		slog.Warn("failed to push activity notification", "user_id", u.ID, "error", err)
	}
}

// GetRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRecord(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance.ToResponse(record), nil
}

// ListRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// GetSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSummary(ctx context.Context, filter attendance.SummaryFilter) (attendance.Summary, error) {
	if err := filter.Validate(); err != nil {
		return attendance.Summary{}, err
	}

	records, err := a.AttendanceRepository.ListForSummary(ctx, filter)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to list attendances for summary: %w", err)
	}

	summary := Summarize(records)
	summary.StartDate = filter.StartDate
	summary.EndDate = filter.EndDate
	return summary, nil
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	deviceRepo device.DeviceRepository,
	shiftRepo shift.ShiftRepository,
	resolver ShiftResolver,
	notifier attendance.Notifier,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		DeviceRepository:     deviceRepo,
		ShiftRepository:      shiftRepo,
		resolver:             resolver,
		notifier:             notifier,
		loc:                  loc,
		now:                  time.Now,
	}
}
