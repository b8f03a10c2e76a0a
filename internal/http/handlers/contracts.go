package handlers

import (
	"context"

	"github.com/google/uuid"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/notify"
	"service-dispatch/internal/service/sellerorder"
)

type assignmentCreator interface {
	Create(ctx context.Context, sellerID int64, orderID string) (domain.CreateResult, error)
}

type assignmentResolver interface {
	Accept(ctx context.Context, courierID int64, assignmentID uuid.UUID) (domain.AcceptResult, error)
	Decline(ctx context.Context, courierID int64, assignmentID uuid.UUID) (domain.DeclineResult, error)
}

type assignmentProgressor interface {
	Advance(ctx context.Context, courierID int64, assignmentID uuid.UUID, target domain.AssignmentStatus) (domain.ProgressResult, error)
}

type offerLister interface {
	Available(ctx context.Context, courierID int64) ([]domain.AvailableAssignment, error)
}

type courierUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	UpdateLocation(ctx context.Context, id int64, p domain.Point) error
	SetOnline(ctx context.Context, id int64, online bool) error
}

type orderStatusUsecase interface {
	UpdateStatus(ctx context.Context, sellerID int64, orderID string, target domain.OrderStatus) (sellerorder.Result, error)
}

type eventSubscriber interface {
	Subscribe(to domain.Recipient) *notify.Subscription
}
