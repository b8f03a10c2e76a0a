package notify

import (
	"context"
	"encoding/json"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// Relay replays events mirrored by other processes into a local sink,
// so that SSE clients of this process see pushes raised by the worker or by other replicas.
type Relay struct {
	origin string
	sink   Sink
	logger logx.Logger
}

// NewRelay builds a Relay for the process identified by origin.
func NewRelay(origin string, sink Sink, logger logx.Logger) *Relay {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Relay{origin: origin, sink: sink, logger: logger}
}

// Handle decodes one mirrored message and forwards it. Messages published by
// this process are skipped: the local hub already got them.
// Malformed messages are logged and dropped, so Handle never asks for a retry.
func (r *Relay) Handle(ctx context.Context, value []byte) error {
	var m message
	if err := json.Unmarshal(value, &m); err != nil {
		r.logger.Warn("notify relay bad json", logx.Err(err))
		return nil
	}
	if m.Origin != "" && m.Origin == r.origin {
		return nil
	}

	to := domain.Recipient{Role: domain.Role(m.RecipientRole), ID: m.RecipientID}
	if (to.Role != domain.RoleCourier && to.Role != domain.RoleSeller) || to.ID <= 0 || m.Type == "" {
		r.logger.Warn("notify relay bad message",
			logx.String("role", m.RecipientRole),
			logx.Int64("recipient_id", m.RecipientID),
			logx.String("type", m.Type),
		)
		return nil
	}

	r.sink.Notify(ctx, to, domain.Event{Type: domain.EventType(m.Type), Message: m.Message})
	return nil
}
