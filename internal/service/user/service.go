package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

// AssignWorkSchedule implements user.UserService.
func (s *UserServiceImpl) AssignWorkSchedule(ctx context.Context, req user.AssignWorkScheduleRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.UserRepository.UpdateWorkSchedule(ctx, req.UserID, req.WorkScheduleID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to assign work schedule: %w", err)
	}

	slog.Info("work schedule assigned", "user_id", updated.ID, "work_schedule_id", updated.WorkScheduleID)

	return user.ToResponse(updated), nil
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepo,
	}
}
