package notification

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
)

// EventActivity is the SSE event name of attendance activity pushes.
const EventActivity = "activity"

// Service pushes attendance activity to connected dashboards.
type Service interface {
	attendance.Notifier

	// Subscribe returns the dashboard feed and a cleanup function to call when the client leaves.
	Subscribe(ctx context.Context) (<-chan sse.Event, func())
}
