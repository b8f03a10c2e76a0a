package domain

type (
	// CourierStatus represents the occupancy status of a courier.
	CourierStatus string
	// OrderStatus represents the fulfillment status of a seller order.
	OrderStatus string
	// PaymentStatus represents the settlement status of an order.
	PaymentStatus string
	// AssignmentStatus represents the lifecycle status of a delivery assignment.
	AssignmentStatus string
	// CandidateStatus represents the state of a single delivery offer.
	CandidateStatus string
)

// List of possible courier statuses
const (
	CourierAvailable CourierStatus = "available"
	CourierOccupied  CourierStatus = "occupied"
)

// List of possible order statuses
const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderReadyForPickup OrderStatus = "ready_for_pickup"
	OrderRiderAssigned  OrderStatus = "rider_assigned"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// List of possible payment statuses
const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// List of possible assignment statuses
const (
	AssignmentLookingForRider AssignmentStatus = "looking_for_rider"
	AssignmentRiderAssigned   AssignmentStatus = "rider_assigned"
	AssignmentPickedUp        AssignmentStatus = "picked_up"
	AssignmentDelivered       AssignmentStatus = "delivered"
	AssignmentCancelled       AssignmentStatus = "cancelled"
)

// List of possible candidate statuses
const (
	CandidatePending  CandidateStatus = "pending"
	CandidateAccepted CandidateStatus = "accepted"
	CandidateDeclined CandidateStatus = "declined"
	CandidateExpired  CandidateStatus = "expired"
)

var allowedCourierStatuses = [...]CourierStatus{CourierAvailable, CourierOccupied}

var allowedOrderStatuses = [...]OrderStatus{
	OrderPending, OrderConfirmed, OrderPreparing, OrderReadyForPickup,
	OrderRiderAssigned, OrderOutForDelivery, OrderDelivered, OrderCancelled,
}

var allowedAssignmentStatuses = [...]AssignmentStatus{
	AssignmentLookingForRider, AssignmentRiderAssigned, AssignmentPickedUp,
	AssignmentDelivered, AssignmentCancelled,
}

// Valid checks if the CourierStatus is valid
func (s CourierStatus) Valid() bool {
	for _, v := range allowedCourierStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the AssignmentStatus is valid
func (s AssignmentStatus) Valid() bool {
	for _, v := range allowedAssignmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// OrderStatusFor maps an assignment status to the order status it implies.
// The second value is false for looking_for_rider, which leaves the order untouched.
func OrderStatusFor(s AssignmentStatus) (OrderStatus, bool) {
	switch s {
	case AssignmentRiderAssigned:
		return OrderRiderAssigned, true
	case AssignmentPickedUp:
		return OrderOutForDelivery, true
	case AssignmentDelivered:
		return OrderDelivered, true
	case AssignmentCancelled:
		return OrderCancelled, true
	default:
		return "", false
	}
}
