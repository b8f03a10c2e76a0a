//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"
	"time"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/service/sellerorder"
)

// DispatchPort abstracts assignment creation for order events.
type DispatchPort interface {
	Create(ctx context.Context, sellerID int64, orderID string) (domain.CreateResult, error)
}

// OrderStatusPort abstracts the seller-side order machine for upstream status changes.
type OrderStatusPort interface {
	UpdateStatus(ctx context.Context, sellerID int64, orderID string, target domain.OrderStatus) (sellerorder.Result, error)
}

// Event is an order status change published upstream. SellerID scopes every action to the owning seller.
type Event struct {
	OrderID   string    `json:"order_id"`
	SellerID  int64     `json:"seller_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
