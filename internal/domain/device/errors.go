package device

import "errors"

var (
	ErrVerificationTimeout  = errors.New("device verification timed out")
	ErrVerificationRejected = errors.New("device rejected verification")
	ErrDeviceMacExists      = errors.New("device with this mac address already exists")
	ErrInvalidDeviceSecret  = errors.New("invalid device secret")
)

// ErrVerificationUnavailable is returned when no message bus is configured to reach devices.
var ErrVerificationUnavailable = errors.New("device verification channel is not configured")
