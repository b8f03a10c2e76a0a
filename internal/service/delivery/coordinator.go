package delivery

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
)

// Coordinator creates delivery assignments and fans the offer out to candidates.
type Coordinator struct {
	deps
	selector *Selector
	fee      int64
}

// NewCoordinator creates a new Coordinator.
func NewCoordinator(r txRunner, n notifier, m dispatchMetrics, opts Options, logger logx.Logger) *Coordinator {
	return &Coordinator{
		deps:     newDeps(r, n, m, opts.OperationTimeout, logger),
		selector: NewSelector(opts.MaxCandidates),
		fee:      opts.DeliveryFee,
	}
}

// Create opens an assignment for a ready order and offers it to the nearest couriers.
func (c *Coordinator) Create(ctx context.Context, sellerID int64, orderID string) (domain.CreateResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.CreateResult{}, errEmptyOrderID
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var result domain.CreateResult
	err := c.runner.WithTx(ctx, func(tx dispatchtx.Repository) error {
		pickup, err := tx.PickupAddress(ctx, sellerID)
		if err != nil {
			return err
		}
		if pickup == nil || pickup.Location == nil {
			return errNullPickupAddress
		}

		order, err := tx.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil || order.SellerID != sellerID {
			return errOrderNotFound
		}
		if order.Status != domain.OrderReadyForPickup {
			return errOrderNotReady
		}

		existing, err := tx.AssignmentForOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return errAssignmentExists
		}

		a := &domain.Assignment{
			ID:              uuid.New(),
			OrderID:         orderID,
			Status:          domain.AssignmentLookingForRider,
			DeliveryFee:     c.fee,
			PickupAddress:   pickup.String(),
			DeliveryAddress: order.Address.String(),
			CreatedAt:       c.now(),
		}
		if err := tx.InsertAssignment(ctx, a); err != nil {
			return err
		}

		ranked, err := c.selector.Select(ctx, tx, *pickup.Location)
		if err != nil {
			return err
		}
		candidates := make([]domain.Candidate, 0, len(ranked))
		for _, r := range ranked {
			candidates = append(candidates, domain.Candidate{
				AssignmentID: a.ID,
				CourierID:    r.CourierID,
				DistanceKm:   r.DistanceKm,
				Status:       domain.CandidatePending,
			})
		}
		if err := tx.InsertCandidates(ctx, a.ID, candidates); err != nil {
			return err
		}

		result = domain.CreateResult{
			AssignmentID:    a.ID,
			OrderID:         orderID,
			NearestPartners: candidates,
		}
		return nil
	})
	if err != nil {
		return domain.CreateResult{}, err
	}

	c.metrics.AssignmentCreated(len(result.NearestPartners))
	c.logger.Info("assignment created",
		logx.String("event", "assignment_created"),
		logx.AssignmentID(result.AssignmentID.String()),
		logx.OrderID(result.OrderID),
		logx.SellerID(sellerID),
		logx.Int("candidates", len(result.NearestPartners)),
	)
	if len(result.NearestPartners) == 0 {
		c.logger.Warn("no couriers available for assignment",
			logx.AssignmentID(result.AssignmentID.String()),
		)
	}

	recipients := make([]domain.Recipient, 0, len(result.NearestPartners))
	for _, p := range result.NearestPartners {
		recipients = append(recipients, domain.CourierRecipient(p.CourierID))
	}
	c.push(context.WithoutCancel(ctx), domain.Event{
		Type:    domain.EventRefreshCourierOrders,
		Message: "New delivery request near you",
	}, recipients...)

	return result, nil
}
