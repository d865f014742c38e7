package user

import "time"

// User is an employee who authenticates on devices.
type User struct {
	ID             string
	UserID         string // human employee code
	Name           string
	Email          string
	Avatar         *string
	WorkScheduleID *string
	FingerprintID  *int
	CardNumber     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasSchedule reports whether a work schedule is assigned.
func (u User) HasSchedule() bool {
	return u.WorkScheduleID != nil && *u.WorkScheduleID != ""
}
