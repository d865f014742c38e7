package schedule

import "context"

type WorkScheduleRepository interface {
	// GetByID returns ErrWorkScheduleNotFound when the schedule does not exist.
	GetByID(ctx context.Context, id string) (WorkSchedule, error)
}
