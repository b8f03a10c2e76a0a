// Package geo ranks couriers by great-circle distance.
package geo

import (
	"math"
	"slices"

	"service-dispatch/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// Ranked is a courier together with its distance from the origin.
type Ranked struct {
	CourierID  int64
	DistanceKm float64
}

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b domain.Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := lat2 - lat1
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Rank orders couriers by ascending distance from origin and keeps at most k.
// Equal distances keep input order. k <= 0 returns nil.
func Rank(origin domain.Point, couriers []domain.LocatedCourier, k int) []Ranked {
	if k <= 0 || len(couriers) == 0 {
		return nil
	}

	out := make([]Ranked, 0, len(couriers))
	for _, c := range couriers {
		out = append(out, Ranked{CourierID: c.ID, DistanceKm: Haversine(origin, c.Location)})
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return 0
		}
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// ValidPoint reports whether p is a finite coordinate within WGS84 bounds.
func ValidPoint(p domain.Point) bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
