package attendance

import "errors"

// Messages sent back to the originating device. Devices display these verbatim,
// so internal error text must never reach them.
const (
	MessageFingerprintNotRegistered = "Fingerprint Not Registered"
	MessageCardNotRegistered        = "Card Not Registered"
	MessageUserNotAuthorized        = "User Not Authorized"
	MessageNotRecognized            = "Not Recognized"
)

// DeviceMessage maps the outcome of processing an event to the device display string.
// A nil err yields the user's name.
func DeviceMessage(err error, userName string) string {
	switch {
	case err == nil:
		return userName
	case errors.Is(err, ErrFingerprintNotRegistered):
		return MessageFingerprintNotRegistered
	case errors.Is(err, ErrCardNotRegistered):
		return MessageCardNotRegistered
	case errors.Is(err, ErrUnauthorized):
		return MessageUserNotAuthorized
	default:
		return MessageNotRecognized
	}
}
