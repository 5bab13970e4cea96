package geo_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/geo"
	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/stretchr/testify/assert"
)

func located(id int64, lat, lon *float64) models.Listing {
	return models.Listing{ID: id, GeoPoint: models.GeoPoint{Latitude: lat, Longitude: lon}}
}

func ids(listings []models.Listing) []int64 {
	out := make([]int64, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestRankByDistance(t *testing.T) {
	origin := models.NewGeoPoint(0, 0)

	t.Run("unknown locations sort last", func(t *testing.T) {
		items := []models.Listing{
			located(3, nil, nil),
			located(2, ptr(0), ptr(2)),
			located(1, ptr(0), ptr(1)),
		}

		ranked := geo.RankByDistance(origin, items)

		assert.Equal(t, []int64{1, 2, 3}, ids(ranked))
	})

	t.Run("scenario A B C", func(t *testing.T) {
		items := []models.Listing{
			located(1, ptr(0), ptr(1)),
			located(2, ptr(0), ptr(2)),
			located(3, nil, nil),
		}

		assert.Equal(t, []int64{1, 2, 3}, ids(geo.RankByDistance(origin, items)))
	})

	t.Run("ties keep input order", func(t *testing.T) {
		items := []models.Listing{
			located(10, nil, nil),
			located(11, ptr(0), ptr(1)),
			located(12, ptr(0), ptr(-1)),
			located(13, ptr(5), nil),
			located(14, ptr(1), ptr(0)),
		}

		ranked := geo.RankByDistance(origin, items)

		assert.Equal(t, []int64{11, 12, 14, 10, 13}, ids(ranked))
	})

	t.Run("antipodal listing sorts after a nearby one", func(t *testing.T) {
		ref := models.NewGeoPoint(-88.5, -180)
		items := []models.Listing{
			located(1, ptr(88.5), ptr(0)),
			located(2, nil, nil),
			located(3, ptr(-88.5), ptr(-179)),
		}

		assert.Equal(t, []int64{3, 1, 2}, ids(geo.RankByDistance(ref, items)))
		assert.Equal(t, []int64{3, 1, 2}, ids(geo.Sort(items, geo.ByDistance[models.Listing](ref))))
	})

	t.Run("unknown reference keeps input order", func(t *testing.T) {
		items := []models.Listing{located(2, ptr(0), ptr(2)), located(1, ptr(0), ptr(1))}

		ranked := geo.RankByDistance(models.GeoPoint{}, items)

		assert.Equal(t, []int64{2, 1}, ids(ranked))
	})

	t.Run("empty input", func(t *testing.T) {
		ranked := geo.RankByDistance(origin, []models.Listing{})
		assert.NotNil(t, ranked)
		assert.Empty(t, ranked)

		assert.Empty(t, geo.RankByDistance[models.Listing](origin, nil))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		items := []models.Listing{located(2, ptr(0), ptr(2)), located(1, ptr(0), ptr(1))}

		_ = geo.RankByDistance(origin, items)

		assert.Equal(t, []int64{2, 1}, ids(items))
	})
}

func TestRankByRecency(t *testing.T) {
	day := func(s string) time.Time {
		parsed, err := time.Parse(time.DateOnly, s)
		if err != nil {
			t.Fatalf("bad date %q: %v", s, err)
		}
		return parsed
	}

	t.Run("later date first", func(t *testing.T) {
		items := []models.Listing{
			{ID: 1, CreatedAt: day("2024-01-01")},
			{ID: 2, CreatedAt: day("2024-02-01")},
		}

		assert.Equal(t, []int64{2, 1}, ids(geo.RankByRecency(items)))
	})

	t.Run("update time counts when later than creation", func(t *testing.T) {
		items := []models.Listing{
			{ID: 1, CreatedAt: day("2024-02-01")},
			{ID: 2, CreatedAt: day("2024-01-01"), UpdatedAt: day("2024-03-01")},
			{ID: 3, CreatedAt: day("2024-01-15"), UpdatedAt: day("2023-12-01")},
		}

		assert.Equal(t, []int64{2, 1, 3}, ids(geo.RankByRecency(items)))
	})

	t.Run("equal times keep input order", func(t *testing.T) {
		items := []models.Listing{
			{ID: 5, CreatedAt: day("2024-01-01")},
			{ID: 4, CreatedAt: day("2024-01-01")},
		}

		assert.Equal(t, []int64{5, 4}, ids(geo.RankByRecency(items)))
	})
}

func TestSort(t *testing.T) {
	origin := models.NewGeoPoint(0, 0)
	items := []models.Listing{
		{ID: 1, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), GeoPoint: models.NewGeoPoint(0, 2)},
		{ID: 2, CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), GeoPoint: models.NewGeoPoint(0, 1)},
		{ID: 3, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	orders := map[string]struct {
		order    geo.Order[models.Listing]
		expected []int64
	}{
		"by distance": {order: geo.ByDistance[models.Listing](origin), expected: []int64{2, 1, 3}},
		"by recency":  {order: geo.ByRecency[models.Listing](), expected: []int64{3, 2, 1}},
	}

	for name, tc := range orders {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ids(geo.Sort(items, tc.order)))
			assert.Equal(t, []int64{1, 2, 3}, ids(items))
		})
	}

	t.Run("by distance agrees with rank by distance", func(t *testing.T) {
		assert.Equal(t, ids(geo.RankByDistance(origin, items)), ids(geo.Sort(items, geo.ByDistance[models.Listing](origin))))
	})
}
