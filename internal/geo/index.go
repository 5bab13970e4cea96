package geo

import (
	"cmp"
	"math"
	"slices"

	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/dhconnelly/rtreego"
)

const (
	indexDimensions = 2
	indexMinBranch  = 25
	indexMaxBranch  = 50
	pointTolerance  = 1e-9
	maxLatitude     = 90.0
	maxLongitude    = 180.0
	kmPerDegree     = EarthRadiusKm * math.Pi / 180.0
)

// Index is an R-tree over the items that have a known location. It answers radius
// queries without computing the distance to every item.
type Index[T Locatable] struct {
	tree *rtreego.Rtree
	size int
}

type indexEntry[T Locatable] struct {
	item   T
	pos    int
	coords models.Coordinates
	bounds rtreego.Rect
}

func (e *indexEntry[T]) Bounds() rtreego.Rect {
	return e.bounds
}

// NewIndex builds an index over items. Items without a usable location are skipped.
func NewIndex[T Locatable](items []T) *Index[T] {
	idx := &Index[T]{tree: rtreego.NewTree(indexDimensions, indexMinBranch, indexMaxBranch)}
	for pos, item := range items {
		coords, ok := item.Location().Coordinates()
		if !ok {
			continue
		}
		idx.tree.Insert(&indexEntry[T]{
			item:   item,
			pos:    pos,
			coords: coords,
			bounds: rtreego.Point{coords.Latitude, coords.Longitude}.ToRect(pointTolerance),
		})
		idx.size++
	}

	return idx
}

// Len is the number of indexed items.
func (ix *Index[T]) Len() int {
	return ix.size
}

// Within returns the indexed items no farther than radiusKm from ref, nearest first.
// Items at equal distance keep the order they had when the index was built.
// An unknown reference or a negative radius yields no items.
func (ix *Index[T]) Within(ref models.GeoPoint, radiusKm float64) []T {
	center, ok := ref.Coordinates()
	if !ok || radiusKm < 0 || math.IsNaN(radiusKm) || ix.size == 0 {
		return []T{}
	}

	type hit struct {
		entry *indexEntry[T]
		dist  float64
	}

	bounds, err := searchBounds(center, radiusKm)
	if err != nil {
		return []T{}
	}

	var hits []hit
	for _, spatial := range ix.tree.SearchIntersect(bounds) {
		entry, isEntry := spatial.(*indexEntry[T])
		if !isEntry {
			continue
		}
		d := Haversine(center.Latitude, center.Longitude, entry.coords.Latitude, entry.coords.Longitude)
		if d <= radiusKm {
			hits = append(hits, hit{entry: entry, dist: d})
		}
	}

	slices.SortFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.entry.pos, b.entry.pos)
	})

	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = h.entry.item
	}
	return out
}

// searchBounds is a lat/lon box enclosing the circle of radiusKm around center.
// Near the poles or across the antimeridian the box widens to every longitude; the
// exact haversine check in Within trims the extra candidates.
func searchBounds(center models.Coordinates, radiusKm float64) (rtreego.Rect, error) {
	latDelta := radiusKm / kmPerDegree
	minLat := math.Max(center.Latitude-latDelta, -maxLatitude)
	maxLat := math.Min(center.Latitude+latDelta, maxLatitude)

	minLon, maxLon := -maxLongitude, maxLongitude
	if minLat > -maxLatitude && maxLat < maxLatitude {
		widest := math.Max(math.Abs(minLat), math.Abs(maxLat))
		lonDelta := latDelta / math.Cos(degreesToRadians(widest))
		if center.Longitude-lonDelta >= -maxLongitude && center.Longitude+lonDelta <= maxLongitude {
			minLon, maxLon = center.Longitude-lonDelta, center.Longitude+lonDelta
		}
	}

	return rtreego.NewRect(
		rtreego.Point{minLat - pointTolerance, minLon - pointTolerance},
		[]float64{maxLat - minLat + 2*pointTolerance, maxLon - minLon + 2*pointTolerance},
	)
}
