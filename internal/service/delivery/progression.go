package delivery

import (
	"context"

	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
)

var (
	errUnknownStatus = apperr.New(apperr.ErrInvalid, apperr.CodeInvalidInput, "unknown assignment status")
	errOrderDiverged = apperr.New(apperr.ErrConflict, apperr.CodeInvalidStatusTransition, "order status does not allow this transition")
)

// orderSources lists the order statuses each courier-driven transition may start from.
// rider_assigned is reached only through Resolver.Accept.
var orderSources = map[domain.AssignmentStatus][]domain.OrderStatus{
	domain.AssignmentPickedUp:  {domain.OrderRiderAssigned},
	domain.AssignmentDelivered: {domain.OrderOutForDelivery},
	domain.AssignmentCancelled: {domain.OrderReadyForPickup, domain.OrderRiderAssigned, domain.OrderOutForDelivery},
}

// Progression moves an accepted assignment through pickup and delivery.
type Progression struct {
	deps
}

// NewProgression creates a new Progression.
func NewProgression(r txRunner, n notifier, opts Options, logger logx.Logger) *Progression {
	return &Progression{deps: newDeps(r, n, nil, opts.OperationTimeout, logger)}
}

// Advance applies one courier-driven transition to an assignment the courier owns.
func (p *Progression) Advance(ctx context.Context, courierID int64, assignmentID uuid.UUID, target domain.AssignmentStatus) (domain.ProgressResult, error) {
	if !target.Valid() {
		return domain.ProgressResult{}, errUnknownStatus
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var result domain.ProgressResult
	err := p.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		a, err := tx.LockAssignment(ctx, assignmentID)
		if err != nil {
			return err
		}
		if a == nil {
			return errAssignmentNotFound
		}
		if !a.OwnedBy(courierID) {
			return errAssignmentNotOwned
		}
		if !domain.AssignmentMachine.CanTransition(a.Status, target) {
			return errInvalidTransition
		}

		orderFrom, ok := orderSources[target]
		if !ok {
			return errInvalidTransition
		}

		now := p.now()
		ok, err = tx.AdvanceAssignment(ctx, a.ID, a.Status, target, now)
		if err != nil {
			return err
		}
		if !ok {
			return errInvalidTransition
		}

		orderStatus, _ := domain.OrderStatusFor(target)
		sellerID, ok, err := tx.TransitionOrder(ctx, a.OrderID, orderStatus, orderFrom...)
		if err != nil {
			return err
		}
		if !ok {
			return errOrderDiverged
		}

		if target == domain.AssignmentDelivered {
			if err := tx.MarkOrderPaid(ctx, a.OrderID); err != nil {
				return err
			}
		}
		if target == domain.AssignmentDelivered || target == domain.AssignmentCancelled {
			if err := tx.ReleaseCourier(ctx, courierID); err != nil {
				return err
			}
		}

		result = domain.ProgressResult{
			AssignmentID: a.ID,
			OrderID:      a.OrderID,
			SellerID:     sellerID,
			Status:       target,
			OrderStatus:  orderStatus,
			At:           now,
		}
		return nil
	})
	if err != nil {
		return domain.ProgressResult{}, err
	}

	p.logger.Info("assignment advanced",
		logx.String("event", "assignment_"+string(result.Status)),
		logx.AssignmentID(result.AssignmentID.String()),
		logx.OrderID(result.OrderID),
		logx.CourierID(courierID),
		logx.String("status", string(result.Status)),
	)

	p.push(context.WithoutCancel(ctx), domain.Event{
		Type:    domain.EventRefreshSellerOrders,
		Message: progressMessage(result.Status),
	}, domain.SellerRecipient(result.SellerID))

	return result, nil
}

func progressMessage(s domain.AssignmentStatus) string {
	switch s {
	case domain.AssignmentPickedUp:
		return "Your order was picked up"
	case domain.AssignmentDelivered:
		return "Your order was delivered"
	case domain.AssignmentCancelled:
		return "The rider cancelled the delivery"
	default:
		return "Order updated"
	}
}
