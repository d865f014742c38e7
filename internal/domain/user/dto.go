package user

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type AssignWorkScheduleRequest struct {
	UserID         string  `json:"-"`
	WorkScheduleID *string `json:"work_schedule_id"`
}

func (r *AssignWorkScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.WorkScheduleID != nil && !validator.IsValidUUID(*r.WorkScheduleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_schedule_id",
			Message: "work_schedule_id must be a valid UUID or null",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UserResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Avatar         *string `json:"avatar,omitempty"`
	WorkScheduleID *string `json:"work_schedule_id"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		UserID:         u.UserID,
		Name:           u.Name,
		Email:          u.Email,
		Avatar:         u.Avatar,
		WorkScheduleID: u.WorkScheduleID,
	}
}
