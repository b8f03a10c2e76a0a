package domain

import "time"

// Courier represents a delivery partner as seen by the dispatch engine.
type Courier struct {
	ID                int64
	Name              string
	Phone             string
	Online            bool
	Active            bool
	Location          *Point
	LocationUpdatedAt *time.Time
	Status            CourierStatus
	Rating            float64
}

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// LocatedCourier is an eligible courier with a known position.
type LocatedCourier struct {
	ID       int64
	Location Point
}
