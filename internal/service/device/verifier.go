package device

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/google/uuid"
)

const CommandVerify = "verify"

// CommandPublisher delivers enrollment commands to readers.
type CommandPublisher interface {
	PublishVerification(ctx context.Context, cmd device.VerificationCommand) error
}

// Verifier runs the enrollment round trip: publish a command, then wait for
// the reply carrying the same correlation id.
type Verifier struct {
	publisher CommandPublisher
	timeout   time.Duration

	mu      sync.Mutex
	pending map[string]pendingVerification
}

type pendingVerification struct {
	mac   string
	reply chan bool
}

func NewVerifier(publisher CommandPublisher, timeout time.Duration) *Verifier {
	return &Verifier{
		publisher: publisher,
		timeout:   timeout,
		pending:   make(map[string]pendingVerification),
	}
}

// Verify blocks until the reader answers, the timeout elapses or ctx is done.
func (v *Verifier) Verify(ctx context.Context, mac string) error {
	correlationID := uuid.Must(uuid.NewV7()).String()
	reply := make(chan bool, 1)

	v.mu.Lock()
	v.pending[correlationID] = pendingVerification{mac: mac, reply: reply}
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		delete(v.pending, correlationID)
		v.mu.Unlock()
	}()

	cmd := device.VerificationCommand{
		CorrelationID: correlationID,
		DeviceMac:     mac,
		Command:       CommandVerify,
	}
	if err := v.publisher.PublishVerification(ctx, cmd); err != nil {
		return fmt.Errorf("failed to publish verification command: %w", err)
	}

	timer := time.NewTimer(v.timeout)
	defer timer.Stop()

	select {
	case accepted := <-reply:
		if !accepted {
			return device.ErrVerificationRejected
		}
		return nil
	case <-timer.C:
		slog.Warn("device verification timed out", "device_mac", mac, "correlation_id", correlationID)
		return device.ErrVerificationTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Resolve hands a reply to the waiting Verify call. It reports false when
// nobody is waiting, e.g. the reply arrived after the timeout, or when the
// reply comes from a different reader than the one being enrolled.
func (v *Verifier) Resolve(r device.VerificationReply) bool {
	v.mu.Lock()
	p, ok := v.pending[r.CorrelationID]
	if ok {
		if mac, valid := device.NormalizeMac(r.DeviceMac); !valid || mac != p.mac {
			ok = false
		} else {
			delete(v.pending, r.CorrelationID)
		}
	}
	v.mu.Unlock()

	if !ok {
		return false
	}
	p.reply <- r.Accepted
	return true
}

// Pending returns the number of in-flight verifications.
func (v *Verifier) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.pending)
}
