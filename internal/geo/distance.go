// Package geo ranks geo-tagged listings by great-circle distance from a reference point.
package geo

import (
	"math"

	"github.com/UnknownOlympus/foodbridge/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Haversine computes the great-circle distance between two points in kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	// Rounding can push a just outside [0, 1] near antipodes, which would make the root NaN.
	a = math.Min(1, math.Max(0, a))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// DistanceKm returns the distance between a and b in kilometers. When either point
// lacks a usable coordinate the distance is unknown and +Inf is returned, so unknown
// distances order after every known one.
func DistanceKm(a, b models.GeoPoint) float64 {
	d, ok := Distance(a, b)
	if !ok {
		return math.Inf(1)
	}
	return d
}

// Distance is DistanceKm with an explicit known flag.
func Distance(a, b models.GeoPoint) (float64, bool) {
	from, ok := a.Coordinates()
	if !ok {
		return 0, false
	}
	to, ok := b.Coordinates()
	if !ok {
		return 0, false
	}

	return Haversine(from.Latitude, from.Longitude, to.Latitude, to.Longitude), true
}

// IsUnknown reports whether d is the unknown distance returned by DistanceKm.
func IsUnknown(d float64) bool {
	return math.IsInf(d, 1) || math.IsNaN(d)
}

// degreesToRadians converts degrees to radians
func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
