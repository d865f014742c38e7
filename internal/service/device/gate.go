package device

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// Credential is what a reader reports about who authenticated on it.
type Credential struct {
	DeviceMac   string
	AuthMethod  attendance.AuthMethod
	BiometricID *int
	CardNumber  *string
}

// CredentialFromRequest extracts the credential part of a device event.
func CredentialFromRequest(req attendance.DeviceEventRequest) Credential {
	return Credential{
		DeviceMac:   req.DeviceMac,
		AuthMethod:  req.AuthMethod,
		BiometricID: req.BiometricID,
		CardNumber:  req.CardNumber,
	}
}

// Gate resolves the acting user of a device event and checks that the user
// may report on that device.
type Gate struct {
	users   user.UserRepository
	devices device.DeviceRepository

	// strictMembership applies the device membership check to fingerprint
	// events too. When false only card events are checked.
	strictMembership bool
}

func NewGate(users user.UserRepository, devices device.DeviceRepository, strictMembership bool) *Gate {
	return &Gate{
		users:            users,
		devices:          devices,
		strictMembership: strictMembership,
	}
}

// Authorize returns the acting user and the reporting device.
func (g *Gate) Authorize(ctx context.Context, cred Credential) (user.User, device.Device, error) {
	mac, ok := device.NormalizeMac(cred.DeviceMac)
	if !ok {
		return user.User{}, device.Device{}, attendance.ErrDeviceNotFound
	}

	d, err := g.devices.GetByMac(ctx, mac)
	if err != nil {
		return user.User{}, device.Device{}, fmt.Errorf("failed to get device: %w", err)
	}

	var u user.User
	switch cred.AuthMethod {
	case attendance.AuthMethodCard:
		if cred.CardNumber == nil || *cred.CardNumber == "" {
			return user.User{}, d, attendance.ErrMissingCredential
		}
		u, err = g.users.GetByCardNumber(ctx, *cred.CardNumber)
		if err != nil {
			return user.User{}, d, fmt.Errorf("failed to get user by card: %w", err)
		}
		if !d.HasUser(u.ID) {
			return u, d, attendance.ErrUnauthorized
		}

	case attendance.AuthMethodFingerprint:
		if cred.BiometricID == nil {
			return user.User{}, d, attendance.ErrMissingCredential
		}
		u, err = g.users.GetByFingerprintID(ctx, *cred.BiometricID)
		if err != nil {
			return user.User{}, d, fmt.Errorf("failed to get user by fingerprint: %w", err)
		}
		if g.strictMembership && !d.HasUser(u.ID) {
			return u, d, attendance.ErrUnauthorized
		}

	default:
		return user.User{}, d, attendance.ErrInvalidAuthMethod
	}

	return u, d, nil
}
