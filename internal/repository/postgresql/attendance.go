package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.user_id, a.date, a.time_in, a.time_out,
	a.check_in_device_id, a.check_out_device_id,
	a.check_in_auth_method, a.check_out_auth_method,
	a.expected_shift_id, a.expected_start_time, a.expected_end_time,
	a.status, a.work_hours, a.overtime,
	a.created_at, a.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttendance(row rowScanner, extra ...any) (attendance.Record, error) {
	var r attendance.Record
	dest := []any{
		&r.ID, &r.UserID, &r.Date, &r.TimeIn, &r.TimeOut,
		&r.CheckInDeviceID, &r.CheckOutDeviceID,
		&r.CheckInAuthMethod, &r.CheckOutAuthMethod,
		&r.ExpectedShiftID, &r.ExpectedStartTime, &r.ExpectedEndTime,
		&r.Status, &r.WorkHours, &r.Overtime,
		&r.CreatedAt, &r.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return r, err
}

// FindOrCreate implements attendance.AttendanceRepository.
// The no-op DO UPDATE makes the conflicting row visible to RETURNING; xmax is
// zero only for a freshly inserted tuple.
func (a *attendanceRepository) FindOrCreate(ctx context.Context, candidate attendance.Record) (attendance.Record, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records AS a (
			id, user_id, date, time_in,
			check_in_device_id, check_in_auth_method,
			expected_shift_id, expected_start_time, expected_end_time,
			status, work_hours, overtime
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (user_id, date) DO UPDATE SET updated_at = a.updated_at
		RETURNING ` + attendanceColumns + `, (a.xmax = 0) AS inserted
	`

	var inserted bool
	record, err := scanAttendance(q.QueryRow(ctx, query,
		candidate.ID,
		candidate.UserID,
		candidate.Date,
		candidate.TimeIn,
		candidate.CheckInDeviceID,
		candidate.CheckInAuthMethod,
		candidate.ExpectedShiftID,
		candidate.ExpectedStartTime,
		candidate.ExpectedEndTime,
		candidate.Status,
		candidate.WorkHours,
		candidate.Overtime,
	), &inserted)
	if err != nil {
		return attendance.Record{}, false, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return record, inserted, nil
}

// UpdateCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateCheckOut(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records AS a SET
			time_out = $2,
			check_out_device_id = $3,
			check_out_auth_method = $4,
			status = $5,
			work_hours = $6,
			overtime = $7,
			updated_at = NOW()
		WHERE a.id = $1
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		record.ID,
		record.TimeOut,
		record.CheckOutDeviceID,
		record.CheckOutAuthMethod,
		record.Status,
		record.WorkHours,
		record.Overtime,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to update check-out: %w", err)
	}

	return updated, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `, u.name
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	var userName *string
	record, err := scanAttendance(q.QueryRow(ctx, query, id), &userName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	record.UserName = userName

	return record, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.user_id = $1 AND a.date = $2
	`

	record, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &record, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND a.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `SELECT COUNT(*) FROM attendance_records a WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "time_in":
		orderByField = "a.time_in"
	case "time_out":
		orderByField = "a.time_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s, u.name
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY %s %s, a.time_in %s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, orderByField, sortOrder, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var userName *string
		record, err := scanAttendance(rows, &userName)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		record.UserName = userName
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, total, nil
}

// ListForSummary implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListForSummary(ctx context.Context, filter attendance.SummaryFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.date BETWEEN $1 AND $2
		  AND ($3::uuid IS NULL OR a.user_id = $3)
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, filter.StartDate, filter.EndDate, filter.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances for summary: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
