package kafka

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"service-dispatch/internal/service/orders"
)

var errEmptyOrderID = errors.New("empty order_id")

// EventDTO is the wire form of orders.Event on the orders topic.
type EventDTO struct {
	OrderID   string    `json:"order_id"`
	SellerID  int64     `json:"seller_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event, trimming ids and status.
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		OrderID:   strings.TrimSpace(dto.OrderID),
		SellerID:  dto.SellerID,
		Status:    strings.TrimSpace(dto.Status),
		CreatedAt: dto.CreatedAt,
	}
}

// decodeEvent returns a *json.SyntaxError/UnmarshalTypeError for bad payloads
// and errEmptyOrderID when the event carries no order id.
func decodeEvent(value []byte) (orders.Event, error) {
	var dto EventDTO
	if err := json.Unmarshal(value, &dto); err != nil {
		return orders.Event{}, err
	}
	ev := ToDomain(dto)
	if ev.OrderID == "" {
		return orders.Event{}, errEmptyOrderID
	}
	return ev, nil
}
