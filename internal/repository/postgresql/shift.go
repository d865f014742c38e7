package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.ShiftPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, start_time, end_time, break_start, break_end,
			   allow_late, allow_early, overtime_before, overtime_after,
			   created_at, updated_at
		FROM shift_policies
		WHERE id = $1
	`

	var s shift.ShiftPolicy
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Code, &s.Name, &s.StartTime, &s.EndTime, &s.BreakStart, &s.BreakEnd,
		&s.AllowLate, &s.AllowEarly, &s.OvertimeBefore, &s.OvertimeAfter,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftPolicy{}, attendance.ErrShiftNotFound
		}
		return shift.ShiftPolicy{}, fmt.Errorf("failed to get shift policy: %w", err)
	}

	if err := s.Validate(); err != nil {
		return shift.ShiftPolicy{}, fmt.Errorf("shift policy %s: %w: %w", id, attendance.ErrInvalidShift, err)
	}

	return s, nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}
