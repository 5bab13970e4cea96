package models

import "math"

// Coordinates represents a known geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}

// Point converts the coordinates into a fully populated GeoPoint.
func (c Coordinates) Point() GeoPoint {
	return NewGeoPoint(c.Latitude, c.Longitude)
}

// GeoPoint is an optional location. Either coordinate may be absent when the backend
// has no location recorded for a listing, or when the record is malformed.
type GeoPoint struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// NewGeoPoint returns a GeoPoint with both coordinates set.
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Latitude: &lat, Longitude: &lon}
}

// Coordinates reports the point's coordinates and whether they are usable.
// A point is usable only when both coordinates are present and finite.
// Zero is a valid coordinate.
func (p GeoPoint) Coordinates() (Coordinates, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return Coordinates{}, false
	}
	lat, lon := *p.Latitude, *p.Longitude
	if !isFinite(lat) || !isFinite(lon) {
		return Coordinates{}, false
	}

	return Coordinates{Latitude: lat, Longitude: lon}, true
}

// Known reports whether both coordinates are present and finite.
func (p GeoPoint) Known() bool {
	_, ok := p.Coordinates()
	return ok
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
