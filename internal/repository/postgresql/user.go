package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type userRepositoryImpl struct {
	db *database.DB
}

const userColumns = `
	id, user_code, name, email, avatar, work_schedule_id,
	fingerprint_id, card_number, created_at, updated_at`

func scanUser(row rowScanner) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.UserID,
		&u.Name,
		&u.Email,
		&u.Avatar,
		&u.WorkScheduleID,
		&u.FingerprintID,
		&u.CardNumber,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, notFound error, arg any) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	u, err := scanUser(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, notFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "id = $1", attendance.ErrUserNotFound, id)
}

// GetByFingerprintID implements user.UserRepository.
func (r *userRepositoryImpl) GetByFingerprintID(ctx context.Context, fingerprintID int) (user.User, error) {
	return r.getOne(ctx, "fingerprint_id = $1", attendance.ErrFingerprintNotRegistered, fingerprintID)
}

// GetByCardNumber implements user.UserRepository.
func (r *userRepositoryImpl) GetByCardNumber(ctx context.Context, cardNumber string) (user.User, error) {
	return r.getOne(ctx, "card_number = $1", attendance.ErrCardNotRegistered, cardNumber)
}

// UpdateWorkSchedule implements user.UserRepository.
func (r *userRepositoryImpl) UpdateWorkSchedule(ctx context.Context, id string, scheduleID *string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET work_schedule_id = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(q.QueryRow(ctx, query, id, scheduleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, attendance.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return user.User{}, schedule.ErrWorkScheduleNotFound
		}
		return user.User{}, fmt.Errorf("failed to update user work schedule: %w", err)
	}

	return u, nil
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}
