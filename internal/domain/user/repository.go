package user

import "context"

// UserRepository lookups return attendance.ErrUserNotFound (or the credential-specific
// not-found errors) when nothing matches.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByFingerprintID(ctx context.Context, fingerprintID int) (User, error)
	GetByCardNumber(ctx context.Context, cardNumber string) (User, error)

	// UpdateWorkSchedule reassigns (or clears, when scheduleID is nil) the user's schedule.
	UpdateWorkSchedule(ctx context.Context, id string, scheduleID *string) (User, error)
}
