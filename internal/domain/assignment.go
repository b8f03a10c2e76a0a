package domain

import (
	"time"

	"github.com/google/uuid"
)

// Assignment is the dispatch record for one order.
type Assignment struct {
	ID              uuid.UUID
	OrderID         string
	CourierID       *int64
	Status          AssignmentStatus
	DeliveryFee     int64
	PickupAddress   string
	DeliveryAddress string
	CreatedAt       time.Time
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// OwnedBy reports whether the assignment is held by the given courier.
func (a *Assignment) OwnedBy(courierID int64) bool {
	return a.CourierID != nil && *a.CourierID == courierID
}

// Candidate is one offer of an assignment to a courier.
type Candidate struct {
	AssignmentID uuid.UUID
	CourierID    int64
	DistanceKm   float64
	Status       CandidateStatus
}

// CreateResult is returned by assignment creation.
type CreateResult struct {
	AssignmentID    uuid.UUID
	OrderID         string
	NearestPartners []Candidate
}

// AcceptResult is returned when a courier wins an assignment.
type AcceptResult struct {
	AssignmentID uuid.UUID
	OrderID      string
	CourierID    int64
	SellerID     int64
	AssignedAt   time.Time
	Expired      []int64
}

// DeclineResult is returned when a courier declines an offer.
type DeclineResult struct {
	AssignmentID uuid.UUID
	CourierID    int64
}

// ProgressResult is returned by assignment progression.
type ProgressResult struct {
	AssignmentID uuid.UUID
	OrderID      string
	SellerID     int64
	Status       AssignmentStatus
	OrderStatus  OrderStatus
	At           time.Time
}

// AvailableAssignment is an open offer listed for a courier.
type AvailableAssignment struct {
	AssignmentID    uuid.UUID
	OrderID         string
	DistanceKm      float64
	DeliveryFee     int64
	PickupAddress   string
	DeliveryAddress string
	RecipientName   string
	RecipientPhone  string
	TotalAmount     int64
	ItemCount       int
	CreatedAt       time.Time
}
