package device

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubVerifier struct {
	err   error
	calls []string
}

func (s *stubVerifier) Verify(ctx context.Context, mac string) error {
	s.calls = append(s.calls, mac)
	return s.err
}

func TestEnroll_Success(t *testing.T) {
	repo := newFakeDeviceRepo()
	verifier := &stubVerifier{}
	svc := NewDeviceService(repo, verifier)

	resp, err := svc.Enroll(context.Background(), device.EnrollDeviceRequest{DeviceMac: "aa-bb-cc-dd-ee-01", Description: "Warehouse Gate"})
	require.NoError(t, err)

	assert.Equal(t, "AA:BB:CC:DD:EE:01", resp.DeviceMac)
	assert.Equal(t, []string{"AA:BB:CC:DD:EE:01"}, verifier.calls)
	assert.Len(t, resp.Secret, 64)

	stored := repo.devices["AA:BB:CC:DD:EE:01"]
	assert.Equal(t, resp.ID, stored.ID)
	assert.NotEqual(t, resp.Secret, stored.SecretHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.SecretHash), []byte(resp.Secret)))

	got, err := svc.VerifySecret(context.Background(), "aa:bb:cc:dd:ee:01", resp.Secret)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	_, err = svc.VerifySecret(context.Background(), "AA:BB:CC:DD:EE:01", "wrong")
	assert.ErrorIs(t, err, device.ErrInvalidDeviceSecret)
}

func TestEnroll_Timeout(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc := NewDeviceService(repo, &stubVerifier{err: device.ErrVerificationTimeout})

	_, err := svc.Enroll(context.Background(), device.EnrollDeviceRequest{DeviceMac: "AA:BB:CC:DD:EE:01", Description: "Warehouse Gate"})
	assert.ErrorIs(t, err, device.ErrVerificationTimeout)
	assert.Empty(t, repo.devices)
}

func TestEnroll_DuplicateMac(t *testing.T) {
	repo := newFakeDeviceRepo(device.Device{ID: "d-1", DeviceMac: "AA:BB:CC:DD:EE:01"})
	verifier := &stubVerifier{}
	svc := NewDeviceService(repo, verifier)

	_, err := svc.Enroll(context.Background(), device.EnrollDeviceRequest{DeviceMac: "AA:BB:CC:DD:EE:01", Description: "Again"})
	assert.ErrorIs(t, err, device.ErrDeviceMacExists)
	assert.Empty(t, verifier.calls)
}

func TestEnroll_Validation(t *testing.T) {
	svc := NewDeviceService(newFakeDeviceRepo(), &stubVerifier{})

	_, err := svc.Enroll(context.Background(), device.EnrollDeviceRequest{DeviceMac: "not-a-mac"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device_mac")
	assert.Contains(t, err.Error(), "description")
}

func TestVerifySecret_UnknownDevice(t *testing.T) {
	svc := NewDeviceService(newFakeDeviceRepo(), &stubVerifier{})

	_, err := svc.VerifySecret(context.Background(), "AA:BB:CC:DD:EE:01", "secret")
	assert.ErrorIs(t, err, device.ErrInvalidDeviceSecret)

	_, err = svc.VerifySecret(context.Background(), "bogus", "secret")
	assert.ErrorIs(t, err, device.ErrInvalidDeviceSecret)
}
