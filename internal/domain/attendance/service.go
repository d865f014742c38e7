package attendance

import (
	"context"
)

// AttendanceService defines reconciliation and reporting operations.
type AttendanceService interface {
	// ProcessEvent classifies an event as check-in or check-out and persists the day's record.
	ProcessEvent(ctx context.Context, event Event) (EventResult, error)

	// GetRecord retrieves a single attendance record by ID
	GetRecord(ctx context.Context, id string) (AttendanceResponse, error)

	// ListRecords retrieves attendance records with filters
	ListRecords(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetSummary aggregates records over a date range
	GetSummary(ctx context.Context, filter SummaryFilter) (Summary, error)
}
