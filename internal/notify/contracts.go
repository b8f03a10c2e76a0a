package notify

import (
	"context"

	"service-dispatch/internal/domain"
)

// Sink receives push events. Implementations must not block the caller.
type Sink interface {
	Notify(ctx context.Context, to domain.Recipient, ev domain.Event)
}

type counter interface {
	Inc()
}
