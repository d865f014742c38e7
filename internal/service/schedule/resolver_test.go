package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleRepo struct {
	schedules map[string]schedule.WorkSchedule
	err       error
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	if f.err != nil {
		return schedule.WorkSchedule{}, f.err
	}
	ws, ok := f.schedules[id]
	if !ok {
		return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
	}
	return ws, nil
}

type fakeShiftRepo struct {
	shifts map[string]shift.ShiftPolicy
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.ShiftPolicy, error) {
	s, ok := f.shifts[id]
	if !ok {
		return shift.ShiftPolicy{}, attendance.ErrShiftNotFound
	}
	return s, nil
}

func strPtr(s string) *string { return &s }

func newTestResolver(loc *time.Location) *Resolver {
	schedules := &fakeScheduleRepo{schedules: map[string]schedule.WorkSchedule{
		"ws-weekday": {
			ID:           "ws-weekday",
			ScheduleName: "Weekdays",
			Shifts: map[time.Weekday]string{
				time.Monday:  "shift-morning",
				time.Tuesday: "shift-gone",
			},
		},
	}}
	shifts := &fakeShiftRepo{shifts: map[string]shift.ShiftPolicy{
		"shift-morning": {ID: "shift-morning", StartTime: "08:00", EndTime: "17:00"},
	}}
	return NewResolver(schedules, shifts, loc)
}

func TestResolver_Resolve(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	r := newTestResolver(loc)
	ctx := context.Background()

	monday := time.Date(2024, 3, 4, 9, 0, 0, 0, loc)
	sunday := time.Date(2024, 3, 3, 9, 0, 0, 0, loc)

	t.Run("user without schedule", func(t *testing.T) {
		got, err := r.Resolve(ctx, user.User{ID: "u1"}, monday)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("day with shift", func(t *testing.T) {
		got, err := r.Resolve(ctx, user.User{ID: "u1", WorkScheduleID: strPtr("ws-weekday")}, monday)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "shift-morning", got.ID)
	})

	t.Run("day without shift", func(t *testing.T) {
		got, err := r.Resolve(ctx, user.User{ID: "u1", WorkScheduleID: strPtr("ws-weekday")}, sunday)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing schedule treated as none", func(t *testing.T) {
		got, err := r.Resolve(ctx, user.User{ID: "u1", WorkScheduleID: strPtr("ws-deleted")}, monday)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing shift is an error", func(t *testing.T) {
		tuesday := monday.AddDate(0, 0, 1)
		_, err := r.Resolve(ctx, user.User{ID: "u1", WorkScheduleID: strPtr("ws-weekday")}, tuesday)
		assert.ErrorIs(t, err, attendance.ErrShiftNotFound)
		assert.ErrorIs(t, err, attendance.ErrNotFound)
	})
}

func TestResolver_WeekdayUsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	r := newTestResolver(loc)

	// Sunday 20:00 UTC is Monday 03:00 in WIB.
	instant := time.Date(2024, 3, 3, 20, 0, 0, 0, time.UTC)
	got, err := r.Resolve(context.Background(), user.User{ID: "u1", WorkScheduleID: strPtr("ws-weekday")}, instant)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "shift-morning", got.ID)
}

func TestResolver_RepositoryFailure(t *testing.T) {
	boom := errors.New("connection refused")
	r := NewResolver(&fakeScheduleRepo{err: boom}, &fakeShiftRepo{}, time.UTC)

	_, err := r.Resolve(context.Background(), user.User{ID: "u1", WorkScheduleID: strPtr("ws")}, time.Now())
	assert.ErrorIs(t, err, boom)
}
