package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// FindOrCreate atomically inserts candidate unless a record for
	// (candidate.UserID, candidate.Date) exists. It returns the stored record and
	// whether this call created it. Fields of candidate are insert-only defaults.
	FindOrCreate(ctx context.Context, candidate Record) (Record, bool, error)

	// UpdateCheckOut stamps the check-out fields and derived metrics of an existing record.
	UpdateCheckOut(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Record, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)

	// ListForSummary returns every record matching the summary filter, unpaginated.
	ListForSummary(ctx context.Context, filter SummaryFilter) ([]Record, error)
}
