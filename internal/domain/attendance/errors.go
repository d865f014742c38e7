package attendance

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ErrNotFound is the category every missing-reference error wraps.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound             = fmt.Errorf("user %w", ErrNotFound)
	ErrDeviceNotFound           = fmt.Errorf("device %w", ErrNotFound)
	ErrShiftNotFound            = fmt.Errorf("shift %w", ErrNotFound)
	ErrRecordNotFound           = fmt.Errorf("attendance record %w", ErrNotFound)
	ErrFingerprintNotRegistered = fmt.Errorf("fingerprint %w", ErrNotFound)
	ErrCardNotRegistered        = fmt.Errorf("card %w", ErrNotFound)
)

var (
	ErrUnauthorized      = errors.New("user is not authorized on this device")
	ErrInvalidAuthMethod = errors.New("auth method must be fingerprint or card")
	ErrMissingCredential = errors.New("biometric id or card number is required")

	// ErrInvalidShift wraps a stored shift policy that fails validation.
	ErrInvalidShift = errors.New("invalid shift policy")
)

// IsRejection reports whether err is a permanent outcome of the event itself,
// as opposed to an infrastructure failure worth retrying.
func IsRejection(err error) bool {
	if err == nil {
		return false
	}
	var verrs validator.ValidationErrors
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidAuthMethod) ||
		errors.Is(err, ErrMissingCredential) ||
		errors.Is(err, ErrInvalidShift) ||
		errors.Is(err, timeutil.ErrInvalidFormat) ||
		errors.As(err, &verrs)
}
