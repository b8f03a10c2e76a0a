// Package sellerorder enforces the seller-side order status machine.
package sellerorder

import (
	"context"
	"strings"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
)

var (
	errEmptyOrderID      = apperr.New(apperr.ErrInvalid, apperr.CodeInvalidInput, "orderId is required")
	errUnknownStatus     = apperr.New(apperr.ErrInvalid, apperr.CodeInvalidInput, "unknown order status")
	errOrderNotFound     = apperr.New(apperr.ErrNotFound, apperr.CodeOrderNotFound, "order not found")
	errAssignmentExists  = apperr.New(apperr.ErrConflict, apperr.CodeAssignmentExists, "order status is driven by its delivery assignment")
	errInvalidTransition = apperr.New(apperr.ErrConflict, apperr.CodeInvalidStatusTransition, "status transition is not allowed")
)

// Result describes an applied seller-side transition.
type Result struct {
	OrderID string
	From    domain.OrderStatus
	Status  domain.OrderStatus
	// Withdrawn lists couriers whose pending offers were expired by a cancellation.
	Withdrawn []int64
}

// Service applies seller-initiated order status changes.
type Service struct {
	runner           txRunner
	notifier         notifier
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates a new Service.
func NewService(r txRunner, n notifier, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		runner:           r,
		notifier:         n,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// UpdateStatus moves the seller's order along the seller-side machine.
// Once a delivery assignment exists the assignment drives the order, so the seller may
// only withdraw an assignment that no courier has accepted yet by cancelling the order.
func (s *Service) UpdateStatus(ctx context.Context, sellerID int64, orderID string, target domain.OrderStatus) (Result, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return Result{}, errEmptyOrderID
	}
	if !target.Valid() {
		return Result{}, errUnknownStatus
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	var result Result
	err := s.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		order, err := tx.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil || order.SellerID != sellerID {
			return errOrderNotFound
		}

		a, err := tx.AssignmentForOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if a != nil && (target != domain.OrderCancelled || a.Status != domain.AssignmentLookingForRider) {
			return errAssignmentExists
		}
		if !domain.OrderMachine.CanTransition(order.Status, target) {
			return errInvalidTransition
		}

		var withdrawn []int64
		if a != nil {
			now := s.now()
			ok, err := tx.AdvanceAssignment(ctx, a.ID, domain.AssignmentLookingForRider, domain.AssignmentCancelled, now)
			if err != nil {
				return err
			}
			if !ok {
				return errAssignmentExists
			}
			if withdrawn, err = tx.ExpireSiblings(ctx, a.ID, now); err != nil {
				return err
			}
		}

		_, ok, err := tx.TransitionOrder(ctx, orderID, target, order.Status)
		if err != nil {
			return err
		}
		if !ok {
			return errInvalidTransition
		}
		if target == domain.OrderDelivered {
			if err := tx.MarkOrderPaid(ctx, orderID); err != nil {
				return err
			}
		}

		result = Result{OrderID: orderID, From: order.Status, Status: target, Withdrawn: withdrawn}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("order status changed",
		logx.String("event", "order_status_changed"),
		logx.OrderID(result.OrderID),
		logx.SellerID(sellerID),
		logx.String("from", string(result.From)),
		logx.String("to", string(result.Status)),
	)

	if s.notifier != nil {
		for _, id := range result.Withdrawn {
			s.notifier.Notify(context.WithoutCancel(ctx), domain.CourierRecipient(id), domain.Event{
				Type:    domain.EventRefreshCourierOrders,
				Message: "A delivery request was cancelled by the seller",
			})
		}
	}
	return result, nil
}
