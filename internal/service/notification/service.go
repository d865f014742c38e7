package notification

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
)

// HubNotifier fans activity out to every dashboard subscribed on the hub.
type HubNotifier struct {
	hub *sse.Hub
}

func NewHubNotifier(hub *sse.Hub) notification.Service {
	return &HubNotifier{hub: hub}
}

// NotifyActivity implements attendance.Notifier. It never blocks on slow clients.
func (s *HubNotifier) NotifyActivity(ctx context.Context, n attendance.ActivityNotification) error {
	delivered := s.hub.Publish(sse.TopicDashboard, sse.Event{
		Event: notification.EventActivity,
		Data:  n,
	})
	if subscribers := s.hub.SubscriberCount(sse.TopicDashboard); delivered < subscribers {
		slog.Warn("activity dropped for slow dashboards",
			"type", n.Type,
			"delivered", delivered,
			"subscribers", subscribers,
		)
		return nil
	}
	slog.Debug("activity pushed", "type", n.Type, "delivered", delivered)
	return nil
}

// Subscribe implements notification.Service.
func (s *HubNotifier) Subscribe(ctx context.Context) (<-chan sse.Event, func()) {
	return s.hub.Subscribe(sse.TopicDashboard)
}
