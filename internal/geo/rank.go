package geo

import (
	"cmp"
	"slices"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/models"
)

// Locatable is anything that carries an optional position.
type Locatable interface {
	Location() models.GeoPoint
}

// Timestamped is anything with a last-activity time.
type Timestamped interface {
	LastActivity() time.Time
}

// Order compares two items the way slices.SortFunc expects.
type Order[T any] func(a, b T) int

// ByDistance orders items by ascending distance from ref. Items with an unknown
// distance compare equal to each other and after every item with a known one.
func ByDistance[T Locatable](ref models.GeoPoint) Order[T] {
	return func(a, b T) int {
		return cmp.Compare(DistanceKm(ref, a.Location()), DistanceKm(ref, b.Location()))
	}
}

// ByRecency orders items by descending last activity.
func ByRecency[T Timestamped]() Order[T] {
	return func(a, b T) int {
		return b.LastActivity().Compare(a.LastActivity())
	}
}

// Sort returns a stably sorted copy of items. Items that compare equal keep their
// input order. The input slice is left untouched.
func Sort[T any](items []T, order Order[T]) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	slices.SortStableFunc(out, order)
	return out
}

// RankByDistance returns items ordered by ascending distance from ref. Distances are
// computed once per item. Ties, including two unknown distances, keep input order.
func RankByDistance[T Locatable](ref models.GeoPoint, items []T) []T {
	type keyed struct {
		item T
		dist float64
	}

	ranked := make([]keyed, len(items))
	for i, item := range items {
		ranked[i] = keyed{item: item, dist: DistanceKm(ref, item.Location())}
	}
	slices.SortStableFunc(ranked, func(a, b keyed) int {
		return cmp.Compare(a.dist, b.dist)
	})

	out := make([]T, len(ranked))
	for i, k := range ranked {
		out[i] = k.item
	}
	return out
}

// RankByRecency returns items ordered newest first by max(updatedAt, createdAt).
func RankByRecency[T Timestamped](items []T) []T {
	return Sort(items, ByRecency[T]())
}
