package attendance

import (
	"context"
	"time"
)

// Event is one authenticated device event, after the acting user has been resolved.
type Event struct {
	UserID     string
	DeviceID   string
	AuthMethod AuthMethod
	Timestamp  time.Time
}

// EventResult is what ProcessEvent hands back to the transport.
type EventResult struct {
	Type   EventType
	Record Record
}

// ActivityUser is the user block of a dashboard notification.
type ActivityUser struct {
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// ActivityNotification is pushed to connected dashboards after every processed event.
type ActivityNotification struct {
	User      ActivityUser `json:"user"`
	Time      string       `json:"time"`
	Device    string       `json:"device"`
	Status    AuthMethod   `json:"status"`
	Timestamp string       `json:"timestamp"`
	Type      EventType    `json:"type"`
}

// Notifier is the real-time sink. Implementations must not block the caller for long.
type Notifier interface {
	NotifyActivity(ctx context.Context, n ActivityNotification) error
}
