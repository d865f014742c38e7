package device

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// Ingestor is the device event pipeline shared by the message bus and HTTP
// ingest: validate, authorize on the gate, reconcile, build the device reply.
type Ingestor struct {
	gate       *Gate
	attendance attendance.AttendanceService
}

func NewIngestor(gate *Gate, attendanceService attendance.AttendanceService) *Ingestor {
	return &Ingestor{
		gate:       gate,
		attendance: attendanceService,
	}
}

// Ingest always returns a reply fit for the device display, even with a
// non-nil error. Use attendance.IsRejection to tell permanent outcomes from
// failures worth retrying.
func (i *Ingestor) Ingest(ctx context.Context, req attendance.DeviceEventRequest) (attendance.DeviceEventResponse, error) {
	if err := req.Validate(); err != nil {
		slog.Warn("device event rejected", "device_mac", req.DeviceMac, "error", err)
		return attendance.DeviceEventResponse{Message: attendance.MessageNotRecognized}, err
	}

	u, d, err := i.gate.Authorize(ctx, CredentialFromRequest(req))
	if err != nil {
		if attendance.IsRejection(err) {
			slog.Warn("device event rejected",
				"device_mac", req.DeviceMac,
				"auth_method", req.AuthMethod,
				"error", err,
			)
		} else {
			slog.Error("device event authorization failed", "device_mac", req.DeviceMac, "error", err)
		}
		return attendance.DeviceEventResponse{Message: attendance.DeviceMessage(err, "")}, err
	}

	result, err := i.attendance.ProcessEvent(ctx, attendance.Event{
		UserID:     u.ID,
		DeviceID:   d.ID,
		AuthMethod: req.AuthMethod,
		Timestamp:  req.EventTime(time.Time{}),
	})
	if err != nil {
		slog.Error("failed to process device event",
			"device_mac", d.DeviceMac,
			"user_id", u.ID,
			"error", err,
		)
		return attendance.DeviceEventResponse{Message: attendance.DeviceMessage(err, "")}, err
	}

	record := attendance.ToResponse(result.Record)
	return attendance.DeviceEventResponse{
		Message: attendance.DeviceMessage(nil, u.Name),
		Type:    result.Type,
		Record:  &record,
	}, nil
}
