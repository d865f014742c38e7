package device

import "context"

type DeviceService interface {
	// Enroll verifies the reader over the message bus before registering it.
	Enroll(ctx context.Context, req EnrollDeviceRequest) (EnrollDeviceResponse, error)

	// VerifySecret authenticates an HTTP ingest request from an enrolled device.
	VerifySecret(ctx context.Context, mac, secret string) (Device, error)
}
