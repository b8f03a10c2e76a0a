package delivery

import (
	"context"
	"fmt"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/geo"
)

// Selector picks the nearest eligible couriers for a pickup point.
type Selector struct {
	max int
}

// NewSelector creates a Selector that returns at most max couriers.
func NewSelector(max int) *Selector {
	if max <= 0 {
		max = DefaultMaxCandidates
	}
	return &Selector{max: max}
}

// Select returns up to the configured number of couriers, nearest first.
// No eligible courier is not an error.
func (s *Selector) Select(ctx context.Context, src courierSource, origin domain.Point) ([]geo.Ranked, error) {
	couriers, err := src.EligibleCouriers(ctx)
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	ranked := geo.Rank(origin, couriers, s.max)
	if ranked == nil {
		ranked = []geo.Ranked{}
	}
	return ranked, nil
}
