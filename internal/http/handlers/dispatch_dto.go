package handlers

import "time"

type createAssignmentRequest struct {
	OrderID string `json:"orderId"`
}

type partnerDTO struct {
	CourierID  int64   `json:"courierId"`
	DistanceKm float64 `json:"distanceKm"`
}

type createAssignmentResponse struct {
	AssignmentID    string       `json:"assignmentId"`
	OrderID         string       `json:"orderId"`
	NearestPartners []partnerDTO `json:"nearestPartners"`
}

type acceptRequest struct {
	AssignmentID string `json:"assignmentId"`
}

type acceptResponse struct {
	AssignmentID string    `json:"assignmentId"`
	OrderID      string    `json:"orderId"`
	Status       string    `json:"status"`
	AssignedAt   time.Time `json:"assignedAt"`
}

type statusRequest struct {
	AssignmentID string `json:"assignmentId"`
	Status       string `json:"status"`
}

type declineResponse struct {
	AssignmentID string `json:"assignmentId"`
	Status       string `json:"status"`
}

type progressResponse struct {
	AssignmentID string    `json:"assignmentId"`
	OrderID      string    `json:"orderId"`
	Status       string    `json:"status"`
	OrderStatus  string    `json:"orderStatus"`
	At           time.Time `json:"at"`
}

type availableDTO struct {
	AssignmentID    string    `json:"assignmentId"`
	OrderID         string    `json:"orderId"`
	DistanceKm      float64   `json:"distanceKm"`
	DeliveryFee     int64     `json:"deliveryFee"`
	PickupAddress   string    `json:"pickupAddress"`
	DeliveryAddress string    `json:"deliveryAddress"`
	RecipientName   string    `json:"recipientName"`
	RecipientPhone  string    `json:"recipientPhone"`
	TotalAmount     int64     `json:"totalAmount"`
	ItemCount       int       `json:"itemCount"`
	CreatedAt       time.Time `json:"createdAt"`
}
