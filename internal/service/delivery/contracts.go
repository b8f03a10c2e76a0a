//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

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

type offersReader interface {
	AvailableFor(ctx context.Context, courierID int64) ([]domain.AvailableAssignment, error)
}

type dispatchMetrics interface {
	AssignmentCreated(candidates int)
	AcceptOutcome(outcome string)
}

type courierSource interface {
	EligibleCouriers(ctx context.Context) ([]domain.LocatedCourier, error)
}
