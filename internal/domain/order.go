package domain

import (
	"strings"
	"time"
)

// Order is the fulfillment unit of a single seller.
type Order struct {
	ID             string
	SellerID       int64
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	RecipientName  string
	RecipientPhone string
	Address        Address
	TotalAmount    int64
	CreatedAt      time.Time
}

// Address is a postal address, optionally geocoded.
type Address struct {
	Line       string
	City       string
	Province   string
	PostalCode string
	Location   *Point
}

// String formats the address as a single line, skipping empty parts.
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line, a.City, a.Province, a.PostalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
