package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// Resolver finds the shift a user is expected to work on a given day.
type Resolver struct {
	schedules schedule.WorkScheduleRepository
	shifts    shift.ShiftRepository
	loc       *time.Location
}

func NewResolver(schedules schedule.WorkScheduleRepository, shifts shift.ShiftRepository, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{
		schedules: schedules,
		shifts:    shifts,
		loc:       loc,
	}
}

// Resolve returns nil without error when the user has no schedule or the
// weekday of instant has no shift.
func (r *Resolver) Resolve(ctx context.Context, u user.User, instant time.Time) (*shift.ShiftPolicy, error) {
	if !u.HasSchedule() {
		return nil, nil
	}

	ws, err := r.schedules.GetByID(ctx, *u.WorkScheduleID)
	if err != nil {
		if errors.Is(err, schedule.ErrWorkScheduleNotFound) {
			slog.Warn("work schedule assigned to user no longer exists",
				"user_id", u.ID, "work_schedule_id", *u.WorkScheduleID)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get work schedule: %w", err)
	}

	return r.resolveDay(ctx, ws, instant.In(r.loc).Weekday())
}

func (r *Resolver) resolveDay(ctx context.Context, lookup schedule.ShiftLookup, day time.Weekday) (*shift.ShiftPolicy, error) {
	shiftID, ok := lookup.ShiftForDay(day)
	if !ok {
		return nil, nil
	}

	policy, err := r.shifts.GetByID(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shift for %s: %w", day, err)
	}
	return &policy, nil
}
