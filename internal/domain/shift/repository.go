package shift

import "context"

type ShiftRepository interface {
	// GetByID returns attendance.ErrShiftNotFound when the shift does not exist.
	GetByID(ctx context.Context, id string) (ShiftPolicy, error)
}
