package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ErrInvalidToken is reported when a bearer token is missing, malformed or of the wrong type.
var ErrInvalidToken = errors.New("invalid token")

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, attendance.ErrDeviceNotFound):
		NotFound(w, "Device not found")
	case errors.Is(err, attendance.ErrFingerprintNotRegistered):
		NotFound(w, attendance.MessageFingerprintNotRegistered)
	case errors.Is(err, attendance.ErrCardNotRegistered):
		NotFound(w, attendance.MessageCardNotRegistered)
	case errors.Is(err, attendance.ErrNotFound):
		NotFound(w, "Resource not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, attendance.MessageUserNotAuthorized)
	case errors.Is(err, attendance.ErrInvalidAuthMethod),
		errors.Is(err, attendance.ErrMissingCredential):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timeutil.ErrInvalidFormat):
		ValidationError(w, map[string]string{"time": err.Error()})

	// Device domain errors
	case errors.Is(err, device.ErrInvalidDeviceSecret):
		Unauthorized(w, "Invalid device credentials")
	case errors.Is(err, device.ErrDeviceMacExists):
		Conflict(w, "Device with this MAC address already exists")
	case errors.Is(err, device.ErrVerificationTimeout):
		GatewayTimeout(w, "Device did not answer the verification request")
	case errors.Is(err, device.ErrVerificationRejected):
		Conflict(w, "Device rejected the verification request")
	case errors.Is(err, device.ErrVerificationUnavailable):
		ServiceUnavailable(w, "Device verification is not available")

	// Schedule and user domain errors
	case errors.Is(err, schedule.ErrWorkScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, user.ErrUserIDRequired):
		BadRequest(w, "User ID is required", nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
