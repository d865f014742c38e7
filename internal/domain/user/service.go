package user

import "context"

type UserService interface {
	// AssignWorkSchedule takes effect on the user's next attendance event.
	AssignWorkSchedule(ctx context.Context, req AssignWorkScheduleRequest) (UserResponse, error)
}
