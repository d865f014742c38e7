package device

import (
	"slices"
	"time"
)

// Device is a physical reader identified by its MAC address.
type Device struct {
	ID          string
	DeviceMac   string
	Description string
	SecretHash  string
	UserIDs     []string // users authorized on this reader
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasUser reports whether userID is a member of the device.
func (d Device) HasUser(userID string) bool {
	return slices.Contains(d.UserIDs, userID)
}
