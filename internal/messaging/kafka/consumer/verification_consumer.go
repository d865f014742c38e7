package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	kafkago "github.com/segmentio/kafka-go"
)

type VerificationResolver interface {
	Resolve(reply device.VerificationReply) bool
}

// VerificationReplyConsumer hands enrollment replies to the waiting verifier.
type VerificationReplyConsumer struct {
	resolver VerificationResolver
}

func NewVerificationReplyConsumer(resolver VerificationResolver) *VerificationReplyConsumer {
	return &VerificationReplyConsumer{resolver: resolver}
}

// Handle always commits. A reply nobody waits for is stale.
func (c *VerificationReplyConsumer) Handle(ctx context.Context, msg kafkago.Message) bool {
	var reply device.VerificationReply
	if err := json.Unmarshal(msg.Value, &reply); err != nil {
		slog.Error("decode verification reply failed", "key", string(msg.Key), "error", err)
		return true
	}
	if reply.DeviceMac == "" {
		reply.DeviceMac = string(msg.Key)
	}

	if !c.resolver.Resolve(reply) {
		slog.Warn("verification reply discarded",
			"device_mac", reply.DeviceMac,
			"correlation_id", reply.CorrelationID,
		)
	}
	return true
}
