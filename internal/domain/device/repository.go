package device

import "context"

// DeviceRepository lookups return attendance.ErrDeviceNotFound when nothing matches.
type DeviceRepository interface {
	GetByID(ctx context.Context, id string) (Device, error)
	GetByMac(ctx context.Context, mac string) (Device, error)
	Create(ctx context.Context, device Device) (Device, error)
}
