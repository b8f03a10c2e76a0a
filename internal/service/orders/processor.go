package orders

import (
	"context"
	"errors"
	"strings"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// Processor processes orders events
type Processor struct {
	dispatch DispatchPort
	orders   OrderStatusPort
	logger   logx.Logger
}

type action func(context.Context, Event) error

// NewProcessor creates a new orders.Processor
func NewProcessor(dispatch DispatchPort, orders OrderStatusPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Processor{
		dispatch: dispatch,
		orders:   orders,
		logger:   logger,
	}
}

// Handle processes a single orders.Event
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn := p.route(e.Status)
	if fn == nil {
		// остальные статусы upstream нас не касаются
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) route(status string) action {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case string(domain.OrderReadyForPickup):
		return p.onReady
	case string(domain.OrderCancelled), "canceled":
		return p.onCancelled
	}
	return nil
}

// onReady opens an assignment. Redelivered events find it already there.
func (p *Processor) onReady(ctx context.Context, e Event) error {
	_, err := p.dispatch.Create(ctx, e.SellerID, e.OrderID)
	switch apperr.CodeOf(err) {
	case "":
		return err
	case apperr.CodeAssignmentExists:
		return nil
	}
	// the event is well-formed but the order cannot be dispatched; retrying will not help
	p.logger.Warn("order event skipped",
		logx.OrderID(e.OrderID),
		logx.String("status", e.Status),
		logx.String("code", string(apperr.CodeOf(err))),
	)
	return nil
}

func (p *Processor) onCancelled(ctx context.Context, e Event) error {
	_, err := p.orders.UpdateStatus(ctx, e.SellerID, e.OrderID, domain.OrderCancelled)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrConflict) {
		// напр. курьер уже принял заказ: отмену от продавца не применяем
		p.logger.Warn("order cancel refused",
			logx.OrderID(e.OrderID),
			logx.SellerID(e.SellerID),
			logx.String("code", string(apperr.CodeOf(err))),
			logx.Err(err),
		)
		return nil
	}
	return err
}
