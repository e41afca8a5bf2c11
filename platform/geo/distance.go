// Package geo provides great-circle distance calculations.
// This is part of the platform layer and contains no business logic.
package geo

import "math"

const (
	earthRadiusKm    = 6371
	kmToMiles        = 0.621371
	degreesToRadians = math.Pi / 180
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}

// DistanceMiles returns the Haversine distance between two points in miles.
func DistanceMiles(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * degreesToRadians
	dLng := (b.Lng - a.Lng) * degreesToRadians

	latA := a.Lat * degreesToRadians
	latB := b.Lat * degreesToRadians

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c * kmToMiles
}
