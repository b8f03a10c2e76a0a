package delivery

import (
	"context"
	"time"

	"service-dispatch/internal/domain"
)

// Offers lists the open delivery requests of a courier.
type Offers struct {
	repo             offersReader
	operationTimeout time.Duration
}

// NewOffers creates a new Offers.
func NewOffers(repo offersReader, timeout time.Duration) *Offers {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Offers{repo: repo, operationTimeout: timeout}
}

// Available returns the courier's pending offers on assignments still looking for a rider.
func (o *Offers) Available(ctx context.Context, courierID int64) ([]domain.AvailableAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, o.operationTimeout)
	defer cancel()
	return o.repo.AvailableFor(ctx, courierID)
}
