package domain

// Role identifies the kind of client a push event is addressed to.
type Role string

// List of push recipients
const (
	RoleCourier Role = "delivery_partner"
	RoleSeller  Role = "seller"
)

// EventType is the refresh hint delivered to a connected client.
type EventType string

// List of push event types
const (
	EventRefreshCourierOrders EventType = "REFRESH_DELIVERY_PARTNER_ORDERS"
	EventRefreshSellerOrders  EventType = "REFRESH_SELLER_ORDERS"
)

// Recipient addresses a single connected client.
type Recipient struct {
	Role Role
	ID   int64
}

// Event is the push envelope.
type Event struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}

// CourierRecipient addresses a courier.
func CourierRecipient(id int64) Recipient { return Recipient{Role: RoleCourier, ID: id} }

// SellerRecipient addresses a seller.
func SellerRecipient(id int64) Recipient { return Recipient{Role: RoleSeller, ID: id} }
