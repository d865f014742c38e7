package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceService struct {
	attendance.AttendanceService
	events []attendance.Event
	err    error
}

func (s *stubAttendanceService) ProcessEvent(ctx context.Context, event attendance.Event) (attendance.EventResult, error) {
	s.events = append(s.events, event)
	if s.err != nil {
		return attendance.EventResult{}, s.err
	}
	return attendance.EventResult{
		Type: attendance.EventCheckIn,
		Record: attendance.Record{
			ID:                "r-1",
			UserID:            event.UserID,
			TimeIn:            "08:00:00",
			CheckInDeviceID:   event.DeviceID,
			CheckInAuthMethod: event.AuthMethod,
			Status:            attendance.StatusOnTime,
		},
	}, nil
}

func TestIngest_Success(t *testing.T) {
	svc := &stubAttendanceService{}
	ingestor := NewIngestor(gateFixture(true), svc)

	resp, err := ingestor.Ingest(context.Background(), attendance.DeviceEventRequest{
		DeviceMac:   "AA:BB:CC:DD:EE:01",
		AuthMethod:  attendance.AuthMethodFingerprint,
		BiometricID: intPtr(7),
		Timestamp:   strPtr("2024-03-04T08:00:00+07:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Sari", resp.Message)
	assert.Equal(t, attendance.EventCheckIn, resp.Type)
	require.NotNil(t, resp.Record)
	assert.Equal(t, "u-member", resp.Record.UserID)

	require.Len(t, svc.events, 1)
	assert.Equal(t, "d-1", svc.events[0].DeviceID)
	assert.True(t, svc.events[0].Timestamp.Equal(time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC)))
}

func TestIngest_NoTimestampLeavesServerClock(t *testing.T) {
	svc := &stubAttendanceService{}
	ingestor := NewIngestor(gateFixture(true), svc)

	_, err := ingestor.Ingest(context.Background(), attendance.DeviceEventRequest{
		DeviceMac:  "AA:BB:CC:DD:EE:01",
		AuthMethod: attendance.AuthMethodCard,
		CardNumber: strPtr("CARD-7"),
	})
	require.NoError(t, err)
	require.Len(t, svc.events, 1)
	assert.True(t, svc.events[0].Timestamp.IsZero())
}

func TestIngest_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     attendance.DeviceEventRequest
		message string
	}{
		{
			name:    "invalid payload",
			req:     attendance.DeviceEventRequest{AuthMethod: attendance.AuthMethodCard},
			message: attendance.MessageNotRecognized,
		},
		{
			name:    "unknown fingerprint",
			req:     attendance.DeviceEventRequest{DeviceMac: "AA:BB:CC:DD:EE:01", AuthMethod: attendance.AuthMethodFingerprint, BiometricID: intPtr(42)},
			message: attendance.MessageFingerprintNotRegistered,
		},
		{
			name:    "card not on device",
			req:     attendance.DeviceEventRequest{DeviceMac: "AA:BB:CC:DD:EE:01", AuthMethod: attendance.AuthMethodCard, CardNumber: strPtr("CARD-9")},
			message: attendance.MessageUserNotAuthorized,
		},
		{
			name:    "unknown device",
			req:     attendance.DeviceEventRequest{DeviceMac: "AA:BB:CC:DD:EE:99", AuthMethod: attendance.AuthMethodCard, CardNumber: strPtr("CARD-7")},
			message: attendance.MessageNotRecognized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAttendanceService{}
			resp, err := NewIngestor(gateFixture(true), svc).Ingest(context.Background(), tt.req)

			require.Error(t, err)
			assert.True(t, attendance.IsRejection(err))
			assert.Equal(t, tt.message, resp.Message)
			assert.Nil(t, resp.Record)
			assert.Empty(t, svc.events)
		})
	}
}

func TestIngest_ProcessingFailureHidesInternalText(t *testing.T) {
	svc := &stubAttendanceService{err: errors.New("pq: connection reset by peer")}

	resp, err := NewIngestor(gateFixture(true), svc).Ingest(context.Background(), attendance.DeviceEventRequest{
		DeviceMac:  "AA:BB:CC:DD:EE:01",
		AuthMethod: attendance.AuthMethodCard,
		CardNumber: strPtr("CARD-7"),
	})

	require.Error(t, err)
	assert.False(t, attendance.IsRejection(err))
	assert.Equal(t, attendance.MessageNotRecognized, resp.Message)
}
