package notify

import (
	"context"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// Fanout forwards each event to every sink. A panicking sink does not stop the others.
type Fanout struct {
	sinks  []Sink
	logger logx.Logger
}

// NewFanout builds a Fanout over the non-nil sinks.
func NewFanout(logger logx.Logger, sinks ...Sink) *Fanout {
	if logger == nil {
		logger = logx.Nop()
	}
	f := &Fanout{logger: logger}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Notify hands ev to each sink in order. Sink failures are logged, never returned.
func (f *Fanout) Notify(ctx context.Context, to domain.Recipient, ev domain.Event) {
	for _, s := range f.sinks {
		f.one(ctx, s, to, ev)
	}
}

func (f *Fanout) one(ctx context.Context, s Sink, to domain.Recipient, ev domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("notify sink panic",
				logx.String("type", string(ev.Type)),
				logx.Int64("recipient_id", to.ID),
				logx.Any("panic", r),
			)
		}
	}()
	s.Notify(ctx, to, ev)
}

var _ Sink = (*Fanout)(nil)
