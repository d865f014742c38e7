package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/events"
	kafkago "github.com/segmentio/kafka-go"
)

type Ingestor interface {
	Ingest(ctx context.Context, req attendance.DeviceEventRequest) (attendance.DeviceEventResponse, error)
}

type ReplyPublisher interface {
	PublishReply(ctx context.Context, reply events.DeviceReply) error
}

// DeviceEventConsumer handles raw reader events and answers every reader
// with the text it should display.
type DeviceEventConsumer struct {
	ingestor Ingestor
	replies  ReplyPublisher

	// failing is the message currently being retried; its failure reply has
	// already been sent.
	failing *messagePosition
}

type messagePosition struct {
	partition int
	offset    int64
}

func NewDeviceEventConsumer(ingestor Ingestor, replies ReplyPublisher) *DeviceEventConsumer {
	return &DeviceEventConsumer{
		ingestor: ingestor,
		replies:  replies,
	}
}

// Handle commits undecodable and rejected events. Transient failures are
// answered once with the failure text and reported as not handled so Run
// retries the same event; the (user, day) upsert makes the retry safe.
func (c *DeviceEventConsumer) Handle(ctx context.Context, msg kafkago.Message) bool {
	var req attendance.DeviceEventRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		slog.Error("decode device event failed",
			"key", string(msg.Key),
			"offset", msg.Offset,
			"error", err,
		)
		return true
	}
	if req.DeviceMac == "" {
		req.DeviceMac = string(msg.Key)
	}

	pos := messagePosition{partition: msg.Partition, offset: msg.Offset}
	retrying := c.failing != nil && *c.failing == pos

	resp, err := c.ingestor.Ingest(ctx, req)
	if err != nil && !attendance.IsRejection(err) {
		slog.Error("device event processing failed",
			"device_mac", req.DeviceMac,
			"offset", msg.Offset,
			"error", err,
		)
		if !retrying {
			c.reply(ctx, req.DeviceMac, resp.Message)
		}
		c.failing = &pos
		return false
	}

	c.failing = nil
	c.reply(ctx, req.DeviceMac, resp.Message)
	return true
}

func (c *DeviceEventConsumer) reply(ctx context.Context, mac, message string) {
	if message == "" {
		message = attendance.MessageNotRecognized
	}
	if err := c.replies.PublishReply(ctx, events.DeviceReply{
		DeviceMac: mac,
		Message:   message,
	}); err != nil {
		slog.Error("publish device reply failed", "device_mac", mac, "error", err)
	}
}
