package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type deviceRepositoryImpl struct {
	db *database.DB
}

// Membership comes from device_users, aggregated so one row describes the device.
const deviceSelect = `
	SELECT d.id, d.device_mac, d.description, d.secret_hash,
		   COALESCE(array_agg(du.user_id::text) FILTER (WHERE du.user_id IS NOT NULL), '{}') AS user_ids,
		   d.created_at, d.updated_at
	FROM devices d
	LEFT JOIN device_users du ON du.device_id = d.id`

func (r *deviceRepositoryImpl) getOne(ctx context.Context, where string, arg any) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := deviceSelect + ` WHERE ` + where + ` GROUP BY d.id`

	var d device.Device
	err := q.QueryRow(ctx, query, arg).Scan(
		&d.ID,
		&d.DeviceMac,
		&d.Description,
		&d.SecretHash,
		&d.UserIDs,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.Device{}, attendance.ErrDeviceNotFound
		}
		return device.Device{}, fmt.Errorf("failed to get device: %w", err)
	}

	return d, nil
}

// GetByID implements device.DeviceRepository.
func (r *deviceRepositoryImpl) GetByID(ctx context.Context, id string) (device.Device, error) {
	return r.getOne(ctx, "d.id = $1", id)
}

// GetByMac implements device.DeviceRepository.
func (r *deviceRepositoryImpl) GetByMac(ctx context.Context, mac string) (device.Device, error) {
	return r.getOne(ctx, "d.device_mac = $1", mac)
}

// Create implements device.DeviceRepository.
func (r *deviceRepositoryImpl) Create(ctx context.Context, d device.Device) (device.Device, error) {
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO devices (id, device_mac, description, secret_hash)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at, updated_at
		`
		if err := tx.QueryRow(ctx, query, d.ID, d.DeviceMac, d.Description, d.SecretHash).Scan(&d.CreatedAt, &d.UpdatedAt); err != nil {
			return err
		}

		for _, userID := range d.UserIDs {
			if _, err := tx.Exec(ctx, `INSERT INTO device_users (device_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, d.ID, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return device.Device{}, device.ErrDeviceMacExists
		}
		return device.Device{}, fmt.Errorf("failed to create device: %w", err)
	}

	if d.UserIDs == nil {
		d.UserIDs = []string{}
	}
	return d, nil
}

func NewDeviceRepository(db *database.DB) device.DeviceRepository {
	return &deviceRepositoryImpl{db: db}
}
