package consumer

import (
	"context"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageReader is the subset of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Handler processes one message and reports whether its offset may be committed.
type Handler interface {
	Handle(ctx context.Context, msg kafkago.Message) bool
}

func NewReader(brokers []string, groupID, topic string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}

// Backoff between attempts at a message whose handler asked for a retry.
var (
	retryBackoffMin = 500 * time.Millisecond
	retryBackoffMax = 30 * time.Second
)

// Run fetches and handles messages until ctx is cancelled. A message the
// handler does not accept is retried in place with backoff, so no later
// commit on the partition can move the offset past it.
func Run(ctx context.Context, name string, reader MessageReader, handler Handler) {
	log := slog.With("consumer", name)
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", "error", err)
			continue
		}

		if !handleWithRetry(ctx, log, handler, msg) {
			log.Info("consumer stopped")
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
		}
	}
}

// handleWithRetry returns false only when ctx ended before msg was accepted.
func handleWithRetry(ctx context.Context, log *slog.Logger, handler Handler, msg kafkago.Message) bool {
	backoff := retryBackoffMin
	for attempt := 1; ; attempt++ {
		if handler.Handle(ctx, msg) {
			return true
		}

		log.Warn("message will be retried",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"attempt", attempt,
			"backoff", backoff,
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}

		backoff *= 2
		if backoff > retryBackoffMax {
			backoff = retryBackoffMax
		}
	}
}
