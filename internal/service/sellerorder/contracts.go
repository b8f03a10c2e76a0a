package sellerorder

import (
	"context"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error
}

type notifier interface {
	Notify(ctx context.Context, to domain.Recipient, ev domain.Event)
}
