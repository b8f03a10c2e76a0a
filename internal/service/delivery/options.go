package delivery

import (
	"context"
	"time"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// DefaultMaxCandidates is the number of couriers offered each assignment.
const DefaultMaxCandidates = 5

// Options configures the dispatch services.
type Options struct {
	MaxCandidates    int
	DeliveryFee      int64
	OperationTimeout time.Duration
}

// deps is shared by every dispatch service.
type deps struct {
	runner           txRunner
	notifier         notifier
	metrics          dispatchMetrics
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time
}

func newDeps(r txRunner, n notifier, m dispatchMetrics, timeout time.Duration, logger logx.Logger) deps {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if n == nil {
		n = nopNotifier{}
	}
	if m == nil {
		m = nopMetrics{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return deps{
		runner:           r,
		notifier:         n,
		metrics:          m,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (d *deps) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.operationTimeout)
}

// push delivers ev to every recipient; a panicking notifier never fails the caller.
func (d *deps) push(ctx context.Context, ev domain.Event, to ...domain.Recipient) {
	for _, r := range to {
		func() {
			defer func() {
				if p := recover(); p != nil {
					d.logger.Error("notify panic",
						logx.String("type", string(ev.Type)),
						logx.Int64("recipient_id", r.ID),
						logx.Any("panic", p),
					)
				}
			}()
			d.notifier.Notify(ctx, r, ev)
		}()
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, domain.Recipient, domain.Event) {}

type nopMetrics struct{}

func (nopMetrics) AssignmentCreated(int) {}
func (nopMetrics) AcceptOutcome(string) {}

// SetClock overrides the time source. Intended for tests.
func (d *deps) SetClock(now func() time.Time) { d.now = now }
