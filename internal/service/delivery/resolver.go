package delivery

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
)

// Accept outcomes reported to metrics.
const (
	OutcomeAccepted   = "accepted"
	OutcomeLostRace   = "lost_race"
	OutcomeNotOffered = "not_offered"
	OutcomeRejected   = "rejected"
	OutcomeError      = "error"
)

// Resolver adjudicates courier responses to offers.
type Resolver struct {
	deps
}

// NewResolver creates a new Resolver.
func NewResolver(r txRunner, n notifier, m dispatchMetrics, opts Options, logger logx.Logger) *Resolver {
	return &Resolver{deps: newDeps(r, n, m, opts.OperationTimeout, logger)}
}

// Accept binds the courier to the assignment if it is still open and the courier holds a pending offer.
// Every write is conditional, so a concurrent second acceptance fails instead of overwriting the winner.
func (r *Resolver) Accept(ctx context.Context, courierID int64, assignmentID uuid.UUID) (domain.AcceptResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var result domain.AcceptResult
	err := r.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		now := r.now()

		orderID, ok, err := tx.ClaimAssignment(ctx, assignmentID, courierID, now)
		if err != nil {
			return err
		}
		if !ok {
			return classifyMiss(ctx, tx, assignmentID, courierID)
		}

		sellerID, ok, err := tx.TransitionOrder(ctx, orderID, domain.OrderRiderAssigned, domain.OrderReadyForPickup)
		if err != nil {
			return err
		}
		if !ok {
			return errOrderNotReady
		}

		ok, err = tx.OccupyCourier(ctx, courierID)
		if err != nil {
			return err
		}
		if !ok {
			return errCourierOccupied
		}

		if err := tx.AcceptCandidate(ctx, assignmentID, courierID, now); err != nil {
			return err
		}
		expired, err := tx.ExpireSiblings(ctx, assignmentID, now)
		if err != nil {
			return err
		}

		result = domain.AcceptResult{
			AssignmentID: assignmentID,
			OrderID:      orderID,
			CourierID:    courierID,
			SellerID:     sellerID,
			AssignedAt:   now,
			Expired:      expired,
		}
		return nil
	})
	if err != nil {
		r.metrics.AcceptOutcome(acceptOutcome(err))
		r.logger.Info("assignment accept refused",
			logx.String("event", "assignment_accept_refused"),
			logx.AssignmentID(assignmentID.String()),
			logx.CourierID(courierID),
			logx.String("code", string(apperr.CodeOf(err))),
		)
		return domain.AcceptResult{}, err
	}

	r.metrics.AcceptOutcome(OutcomeAccepted)
	r.logger.Info("assignment accepted",
		logx.String("event", "assignment_accepted"),
		logx.AssignmentID(result.AssignmentID.String()),
		logx.OrderID(result.OrderID),
		logx.CourierID(result.CourierID),
		logx.Int("expired", len(result.Expired)),
	)

	bg := context.WithoutCancel(ctx)
	r.push(bg, domain.Event{
		Type:    domain.EventRefreshSellerOrders,
		Message: "A rider accepted your order",
	}, domain.SellerRecipient(result.SellerID))

	expired := make([]domain.Recipient, 0, len(result.Expired))
	for _, id := range result.Expired {
		expired = append(expired, domain.CourierRecipient(id))
	}
	r.push(bg, domain.Event{
		Type:    domain.EventRefreshCourierOrders,
		Message: "A delivery request was taken by another rider",
	}, expired...)

	return result, nil
}

// Decline withdraws the courier's pending offer. The assignment stays open for the others.
func (r *Resolver) Decline(ctx context.Context, courierID int64, assignmentID uuid.UUID) (domain.DeclineResult, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		ok, err := tx.DeclineCandidate(ctx, assignmentID, courierID, r.now())
		if err != nil {
			return err
		}
		if !ok {
			return classifyMiss(ctx, tx, assignmentID, courierID)
		}
		return nil
	})
	if err != nil {
		return domain.DeclineResult{}, err
	}

	r.logger.Info("assignment declined",
		logx.String("event", "assignment_declined"),
		logx.AssignmentID(assignmentID.String()),
		logx.CourierID(courierID),
	)
	return domain.DeclineResult{AssignmentID: assignmentID, CourierID: courierID}, nil
}

// classifyMiss explains why a conditional write on an offer matched nothing.
func classifyMiss(ctx context.Context, tx dispatchtx.Repository, assignmentID uuid.UUID, courierID int64) error {
	a, err := tx.GetAssignment(ctx, assignmentID)
	if err != nil {
		return err
	}
	if a == nil {
		return errAssignmentNotFound
	}

	st, offered, err := tx.CandidateStatus(ctx, assignmentID, courierID)
	if err != nil {
		return err
	}
	switch {
	case !offered:
		return errNotOffered
	case a.CourierID != nil && *a.CourierID != courierID:
		return errAlreadyTaken
	case a.Status != domain.AssignmentLookingForRider:
		return errNoLongerOpen
	case st != domain.CandidatePending:
		return errOfferClosed
	default:
		return errNoLongerOpen
	}
}

func acceptOutcome(err error) string {
	switch {
	case errors.Is(err, errAlreadyTaken):
		return OutcomeLostRace
	case errors.Is(err, errNotOffered):
		return OutcomeNotOffered
	case apperr.CodeOf(err) != "":
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
