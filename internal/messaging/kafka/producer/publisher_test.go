package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/cmlabs-hris/attendance-backend-go/internal/events"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestPublishReply(t *testing.T) {
	w := &recordingWriter{}
	p := NewDevicePublisher(w)

	err := p.PublishReply(context.Background(), events.DeviceReply{DeviceMac: "aa:bb:cc:dd:ee:01", Message: "Budi"})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, events.DeviceRepliesTopic, msg.Topic)
	assert.Equal(t, "AA:BB:CC:DD:EE:01", string(msg.Key))
	assert.JSONEq(t, `{"device_mac":"aa:bb:cc:dd:ee:01","message":"Budi"}`, string(msg.Value))
}

func TestPublishVerification(t *testing.T) {
	w := &recordingWriter{}
	p := NewDevicePublisher(w)

	cmd := device.VerificationCommand{CorrelationID: "c-1", DeviceMac: "AA:BB:CC:DD:EE:01", Command: "verify"}
	require.NoError(t, p.PublishVerification(context.Background(), cmd))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, events.DeviceCommandsTopic, msg.Topic)
	assert.Equal(t, "AA:BB:CC:DD:EE:01", string(msg.Key))

	var decoded device.VerificationCommand
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, cmd, decoded)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "c-1", headers["correlation_id"])
	assert.Equal(t, "verify", headers["command"])
}

func TestPublish_WriterError(t *testing.T) {
	boom := errors.New("broker unavailable")
	p := NewDevicePublisher(&recordingWriter{err: boom})

	assert.ErrorIs(t, p.PublishReply(context.Background(), events.DeviceReply{DeviceMac: "AA:BB:CC:DD:EE:01"}), boom)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishReply(context.Background(), events.DeviceReply{}))
	assert.ErrorIs(t, p.PublishVerification(context.Background(), device.VerificationCommand{}), device.ErrVerificationUnavailable)
}
