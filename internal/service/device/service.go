package device

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// EnrollmentVerifier confirms a reader is reachable and consents to enrollment.
type EnrollmentVerifier interface {
	Verify(ctx context.Context, mac string) error
}

type DeviceServiceImpl struct {
	device.DeviceRepository
	verifier EnrollmentVerifier
}

// Enroll implements device.DeviceService.
func (s *DeviceServiceImpl) Enroll(ctx context.Context, req device.EnrollDeviceRequest) (device.EnrollDeviceResponse, error) {
	if err := req.Validate(); err != nil {
		return device.EnrollDeviceResponse{}, err
	}

	_, err := s.DeviceRepository.GetByMac(ctx, req.DeviceMac)
	if err == nil {
		return device.EnrollDeviceResponse{}, device.ErrDeviceMacExists
	}
	if !errors.Is(err, attendance.ErrDeviceNotFound) {
		return device.EnrollDeviceResponse{}, fmt.Errorf("failed to check device mac: %w", err)
	}

	if err := s.verifier.Verify(ctx, req.DeviceMac); err != nil {
		return device.EnrollDeviceResponse{}, err
	}

	secret, err := generateSecret()
	if err != nil {
		return device.EnrollDeviceResponse{}, fmt.Errorf("failed to generate device secret: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return device.EnrollDeviceResponse{}, fmt.Errorf("failed to hash device secret: %w", err)
	}

	created, err := s.DeviceRepository.Create(ctx, device.Device{
		ID:          uuid.Must(uuid.NewV7()).String(),
		DeviceMac:   req.DeviceMac,
		Description: req.Description,
		SecretHash:  string(hash),
	})
	if err != nil {
		return device.EnrollDeviceResponse{}, fmt.Errorf("failed to create device: %w", err)
	}

	slog.Info("device enrolled", "device_id", created.ID, "device_mac", created.DeviceMac)

	return device.EnrollDeviceResponse{
		ID:          created.ID,
		DeviceMac:   created.DeviceMac,
		Description: created.Description,
		Secret:      secret,
	}, nil
}

// VerifySecret implements device.DeviceService.
func (s *DeviceServiceImpl) VerifySecret(ctx context.Context, mac, secret string) (device.Device, error) {
	normalized, ok := device.NormalizeMac(mac)
	if !ok || secret == "" {
		return device.Device{}, device.ErrInvalidDeviceSecret
	}

	d, err := s.DeviceRepository.GetByMac(ctx, normalized)
	if err != nil {
		if errors.Is(err, attendance.ErrDeviceNotFound) {
			return device.Device{}, device.ErrInvalidDeviceSecret
		}
		return device.Device{}, fmt.Errorf("failed to get device: %w", err)
	}

	if d.SecretHash == "" {
		return device.Device{}, device.ErrInvalidDeviceSecret
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.SecretHash), []byte(secret)); err != nil {
		return device.Device{}, device.ErrInvalidDeviceSecret
	}

	return d, nil
}

func generateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func NewDeviceService(deviceRepo device.DeviceRepository, verifier EnrollmentVerifier) device.DeviceService {
	return &DeviceServiceImpl{
		DeviceRepository: deviceRepo,
		verifier:         verifier,
	}
}
