package producer

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/cmlabs-hris/attendance-backend-go/internal/events"
	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafkago.Writer the publishers use.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// NewWriter builds a writer without a fixed topic; every message names its own.
func NewWriter(brokers []string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// DevicePublisher sends replies and commands to readers.
type DevicePublisher struct {
	writer MessageWriter
}

func NewDevicePublisher(writer MessageWriter) *DevicePublisher {
	return &DevicePublisher{writer: writer}
}

func (p *DevicePublisher) PublishReply(ctx context.Context, reply events.DeviceReply) error {
	payload, err := json.Marshal(reply)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: events.DeviceRepliesTopic,
		Key:   []byte(strings.ToUpper(reply.DeviceMac)),
		Value: payload,
	})
}

// PublishVerification implements the enrollment verifier's command publisher.
func (p *DevicePublisher) PublishVerification(ctx context.Context, cmd device.VerificationCommand) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: events.DeviceCommandsTopic,
		Key:   []byte(cmd.DeviceMac),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "command", Value: []byte(cmd.Command)},
			{Key: "correlation_id", Value: []byte(cmd.CorrelationID)},
		},
	})
}

// NoopPublisher is used when no brokers are configured. Replies are dropped
// and enrollment cannot be verified.
type NoopPublisher struct{}

func (NoopPublisher) PublishReply(context.Context, events.DeviceReply) error {
	return nil
}

func (NoopPublisher) PublishVerification(context.Context, device.VerificationCommand) error {
	return device.ErrVerificationUnavailable
}
