package device

import (
	"net"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// NormalizeMac returns the canonical upper-case, colon-separated form of mac.
func NormalizeMac(mac string) (string, bool) {
	hw, err := net.ParseMAC(strings.TrimSpace(mac))
	if err != nil {
		return "", false
	}
	return strings.ToUpper(hw.String()), true
}

type EnrollDeviceRequest struct {
	DeviceMac   string `json:"device_mac"`
	Description string `json:"description"`
}

func (r *EnrollDeviceRequest) Validate() error {
	var errs validator.ValidationErrors

	if mac, ok := NormalizeMac(r.DeviceMac); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "device_mac",
			Message: "device_mac must be a valid MAC address",
		})
	} else {
		r.DeviceMac = mac
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EnrollDeviceResponse struct {
	ID          string `json:"id"`
	DeviceMac   string `json:"device_mac"`
	Description string `json:"description"`
	// Secret is only ever returned here; the server keeps a bcrypt hash.
	Secret string `json:"secret"`
}

// VerificationCommand is sent to a device during enrollment.
type VerificationCommand struct {
	CorrelationID string `json:"correlation_id"`
	DeviceMac     string `json:"device_mac"`
	Command       string `json:"command"`
}

// VerificationReply is a device's answer to a VerificationCommand.
type VerificationReply struct {
	CorrelationID string `json:"correlation_id"`
	DeviceMac     string `json:"device_mac"`
	Accepted      bool   `json:"accepted"`
}
