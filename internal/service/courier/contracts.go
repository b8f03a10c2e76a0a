package courier

import (
	"context"
	"time"

	"service-dispatch/internal/domain"
)

// courierRepository defines storage operations required by the business layer.
type courierRepository interface {
	Get(ctx context.Context, id int64) (*domain.Courier, error)
	UpdateLocation(ctx context.Context, id int64, p domain.Point, at time.Time) (bool, error)
	SetOnline(ctx context.Context, id int64, online bool) (bool, error)
}
