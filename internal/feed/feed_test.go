package feed_test

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/cache"
	"github.com/UnknownOlympus/foodbridge/internal/feed"
	"github.com/UnknownOlympus/foodbridge/internal/metrics"
	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/UnknownOlympus/foodbridge/internal/status"
	"github.com/UnknownOlympus/foodbridge/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, store *mocks.Interface, backend *mocks.Backend, c feed.Cache) (*feed.Service, *metrics.Metrics) {
	t.Helper()
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	return feed.NewService(store, backend, c, appMetrics, 10, slog.Default()), appMetrics
}

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func ids(items []feed.Item) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func donation(id int64, st status.Status, point models.GeoPoint, created string) models.Listing {
	return models.Listing{
		ID:        id,
		Kind:      models.KindDonation,
		Title:     "Donation",
		Status:    st,
		Approved:  true,
		GeoPoint:  point,
		CreatedAt: date(created),
	}
}

func TestHome(t *testing.T) {
	origin := models.NewGeoPoint(0, 0)
	listings := []models.Listing{
		donation(3, status.Approved, models.GeoPoint{}, "2024-03-01"),
		donation(2, status.Approved, models.NewGeoPoint(0, 2), "2024-02-01"),
		donation(1, status.Approved, models.NewGeoPoint(0, 1), "2024-01-01"),
	}

	t.Run("nearest first with unknown positions last", func(t *testing.T) {
		store := mocks.NewInterface(t)
		svc, appMetrics := newService(t, store, mocks.NewBackend(t), nil)
		store.On("ListListings", mock.Anything, models.KindDonation).Return(listings, nil).Once()

		page, err := svc.Home(t.Context(), models.KindDonation, feed.Query{NearMe: true, Reference: origin})

		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, ids(page.Items))
		assert.Equal(t, feed.OrderDistance, page.Order)
		assert.False(t, page.LocationUnavailable)
		require.NotNil(t, page.Items[0].DistanceKm)
		assert.InDelta(t, 111.19, *page.Items[0].DistanceKm, 0.01)
		assert.Nil(t, page.Items[2].DistanceKm)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.FeedRequests.WithLabelValues("home", "distance")), 0)
	})

	t.Run("falls back to recency when location is unavailable", func(t *testing.T) {
		store := mocks.NewInterface(t)
		svc, _ := newService(t, store, mocks.NewBackend(t), nil)
		store.On("ListListings", mock.Anything, models.KindDonation).Return(listings, nil).Once()

		page, err := svc.Home(t.Context(), models.KindDonation, feed.Query{NearMe: true})

		require.NoError(t, err)
		assert.Equal(t, []int64{3, 2, 1}, ids(page.Items))
		assert.Equal(t, feed.OrderRecency, page.Order)
		assert.True(t, page.LocationUnavailable)
	})

	t.Run("recency without near me is not flagged", func(t *testing.T) {
		store := mocks.NewInterface(t)
		svc, _ := newService(t, store, mocks.NewBackend(t), nil)
		store.On("ListListings", mock.Anything, models.KindDonation).Return(listings, nil).Once()

		page, err := svc.Home(t.Context(), models.KindDonation, feed.Query{Reference: origin})

		require.NoError(t, err)
		assert.Equal(t, []int64{3, 2, 1}, ids(page.Items))
		assert.False(t, page.LocationUnavailable)
		require.NotNil(t, page.Items[2].DistanceKm)
	})

	t.Run("radius drops far and unknown listings", func(t *testing.T) {
		store := mocks.NewInterface(t)
		svc, _ := newService(t, store, mocks.NewBackend(t), nil)
		store.On("ListListings", mock.Anything, models.KindDonation).Return(listings, nil).Once()

		page, err := svc.Home(t.Context(), models.KindDonation,
			feed.Query{NearMe: true, Reference: origin, RadiusKm: 150})

		require.NoError(t, err)
		assert.Equal(t, []int64{1}, ids(page.Items))
		assert.Equal(t, 1, page.TotalItems)
	})

	t.Run("hides unreviewed listings", func(t *testing.T) {
		store := mocks.NewInterface(t)
		svc, _ := newService(t, store, mocks.NewBackend(t), nil)
		pending := donation(4, status.Pending, models.GeoPoint{}, "2024-04-01")
		pending.Approved = false
		requested := donation(5, status.Requested, models.GeoPoint{}, "2024-05-01")
		requested.Approved = false
		store.On("ListListings", mock.Anything, models.KindDonation).
			Return([]models.Listing{pending, requested}, nil).Once()

		page, err := svc.Home(t.Context(), models.KindDonation, feed.Query{})

		require.NoError(t, err)
		assert.Equal(t, []int64{5}, ids(page.Items))
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		svc, _ := newService(t, mocks.NewInterface(t), mocks.NewBackend(t), nil)

		_, err := svc.Home(t.Context(), models.Kind("volunteer"), feed.Query{})

		require.ErrorIs(t, err, feed.ErrInvalidKind)
	})

	t.Run("store failure", func(t *testing.T) {
		store := mocks.NewInterface(t)
		svc, _ := newService(t, store, mocks.NewBackend(t), nil)
		store.On("ListListings", mock.Anything, models.KindRequest).Return(nil, assert.AnError).Once()

		_, err := svc.Home(t.Context(), models.KindRequest, feed.Query{})

		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestPagination(t *testing.T) {
	listings := make([]models.Listing, 0, 5)
	for i := range 5 {
		l := donation(int64(i+1), status.Approved, models.GeoPoint{}, "2024-01-01")
		l.CreatedAt = l.CreatedAt.AddDate(0, 0, i)
		listings = append(listings, l)
	}

	tests := []struct {
		name      string
		query     feed.Query
		wantIDs   []int64
		wantPage  int
		wantSize  int
		wantPages int
	}{
		{name: "first page", query: feed.Query{PageSize: 2}, wantIDs: []int64{5, 4}, wantPage: 1, wantSize: 2, wantPages: 3},
		{name: "last partial page", query: feed.Query{Page: 3, PageSize: 2}, wantIDs: []int64{1}, wantPage: 3, wantSize: 2, wantPages: 3},
		{name: "past the end", query: feed.Query{Page: 4, PageSize: 2}, wantIDs: []int64{}, wantPage: 4, wantSize: 2, wantPages: 3},
		{name: "default size", query: feed.Query{}, wantIDs: []int64{5, 4, 3, 2, 1}, wantPage: 1, wantSize: 10, wantPages: 1},
		{name: "size is capped", query: feed.Query{PageSize: 1000}, wantIDs: []int64{5, 4, 3, 2, 1}, wantPage: 1, wantSize: 100, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewInterface(t)
			svc, _ := newService(t, store, mocks.NewBackend(t), nil)
			store.On("ListListings", mock.Anything, models.KindDonation).Return(listings, nil).Once()

			page, err := svc.Donations(t.Context(), tt.query)

			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(page.Items))
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantSize, page.PageSize)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, 5, page.TotalItems)
		})
	}
}

func TestDonations(t *testing.T) {
	t.Run("excludes finished and in-flight donations and attaches donors once", func(t *testing.T) {
		store := mocks.NewInterface(t)
		backend := mocks.NewBackend(t)
		svc, _ := newService(t, store, backend, nil)

		donorID := int64(42)
		open := donation(1, status.Approved, models.GeoPoint{}, "2024-01-01")
		open.DonorID = &donorID
		asked := donation(2, status.Requested, models.GeoPoint{}, "2024-01-02")
		asked.DonorID = &donorID
		done := donation(3, status.Completed, models.GeoPoint{}, "2024-01-03")
		moving := donation(4, status.OutForDelivery, models.GeoPoint{}, "2024-01-04")

		store.On("ListListings", mock.Anything, models.KindDonation).
			Return([]models.Listing{open, asked, done, moving}, nil).Once()
		backend.On("GetDonor", mock.Anything, donorID).Return(&models.Donor{ID: donorID, Name: "Bakery"}, nil).Once()

		page, err := svc.Donations(t.Context(), feed.Query{})

		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1}, ids(page.Items))
		for _, item := range page.Items {
			require.NotNil(t, item.Donor)
			assert.Equal(t, "Bakery", item.Donor.Name)
		}
	})

	t.Run("donor lookup failure leaves the profile empty", func(t *testing.T) {
		store := mocks.NewInterface(t)
		backend := mocks.NewBackend(t)
		svc, _ := newService(t, store, backend, nil)

		donorID := int64(42)
		open := donation(1, status.Approved, models.GeoPoint{}, "2024-01-01")
		open.DonorID = &donorID

		store.On("ListListings", mock.Anything, models.KindDonation).Return([]models.Listing{open}, nil).Once()
		backend.On("GetDonor", mock.Anything, donorID).Return(nil, assert.AnError).Once()

		page, err := svc.Donations(t.Context(), feed.Query{})

		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Nil(t, page.Items[0].Donor)
	})
}

func TestRequestsAndVolunteer(t *testing.T) {
	requests := []models.Listing{
		{ID: 10, Kind: models.KindRequest, Status: status.ReadyToDonate, CreatedAt: date("2024-01-02")},
		{ID: 11, Kind: models.KindRequest, Status: status.Pending, CreatedAt: date("2024-01-03")},
		{ID: 12, Kind: models.KindRequest, Status: status.Approved, CreatedAt: date("2024-01-01")},
	}
	donations := []models.Listing{
		donation(1, status.Requested, models.GeoPoint{}, "2024-01-05"),
	}

	t.Run("requests feed shows answerable requests", func(t *testing.T) {
		store := mocks.NewInterface(t)
		svc, _ := newService(t, store, mocks.NewBackend(t), nil)
		store.On("ListListings", mock.Anything, models.KindRequest).Return(requests, nil).Once()

		page, err := svc.Requests(t.Context(), feed.Query{})

		require.NoError(t, err)
		assert.Equal(t, []int64{10, 12}, ids(page.Items))
	})

	typed := []models.Listing{
		{ID: 20, Kind: models.KindRequest, Type: "Vegetables", Status: status.Approved, CreatedAt: date("2024-01-03")},
		{ID: 21, Kind: models.KindRequest, Type: "bakery", Status: status.Approved, CreatedAt: date("2024-01-02")},
		{ID: 22, Kind: models.KindRequest, Type: "vegetables", Status: status.Approved, CreatedAt: date("2024-01-01")},
	}
	typeFilters := []struct {
		filter string
		want   []int64
	}{
		{filter: "", want: []int64{20, 21, 22}},
		{filter: "all", want: []int64{20, 21, 22}},
		{filter: "ALL", want: []int64{20, 21, 22}},
		{filter: "VEGETABLES", want: []int64{20, 22}},
		{filter: "Bakery", want: []int64{21}},
		{filter: "dairy", want: []int64{}},
	}
	for _, tt := range typeFilters {
		t.Run("requests of type "+tt.filter, func(t *testing.T) {
			store := mocks.NewInterface(t)
			svc, _ := newService(t, store, mocks.NewBackend(t), nil)
			store.On("ListListings", mock.Anything, models.KindRequest).Return(typed, nil).Once()

			page, err := svc.Requests(t.Context(), feed.Query{Type: tt.filter})

			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(page.Items))
			assert.Equal(t, len(tt.want), page.TotalItems)
		})
	}

	t.Run("request export honours the type filter", func(t *testing.T) {
		store := mocks.NewInterface(t)
		svc, _ := newService(t, store, mocks.NewBackend(t), nil)
		store.On("ListListings", mock.Anything, models.KindRequest).Return(typed, nil).Once()

		items, err := svc.Export(t.Context(), feed.ViewRequests, feed.Query{Type: "vegetables"})

		require.NoError(t, err)
		assert.Equal(t, []int64{20, 22}, ids(items))
	})

	t.Run("volunteer feed merges both kinds", func(t *testing.T) {
		store := mocks.NewInterface(t)
		svc, _ := newService(t, store, mocks.NewBackend(t), nil)
		store.On("ListListings", mock.Anything, models.KindDonation).Return(donations, nil).Once()
		store.On("ListListings", mock.Anything, models.KindRequest).Return(requests, nil).Once()

		page, err := svc.Volunteer(t.Context(), feed.Query{})

		require.NoError(t, err)
		assert.Equal(t, []int64{1, 12}, ids(page.Items))
	})
}

func TestExport(t *testing.T) {
	t.Run("returns every ranked item", func(t *testing.T) {
		store := mocks.NewInterface(t)
		svc, _ := newService(t, store, mocks.NewBackend(t), nil)
		listings := make([]models.Listing, 0, 30)
		for i := range 30 {
			listings = append(listings, donation(int64(i+1), status.Approved, models.GeoPoint{}, "2024-01-01"))
		}
		store.On("ListListings", mock.Anything, models.KindDonation).Return(listings, nil).Once()

		items, err := svc.Export(t.Context(), feed.ViewDonations, feed.Query{PageSize: 5})

		require.NoError(t, err)
		assert.Len(t, items, 30)
	})

	t.Run("unknown view", func(t *testing.T) {
		svc, _ := newService(t, mocks.NewInterface(t), mocks.NewBackend(t), nil)

		_, err := svc.Export(t.Context(), feed.View("orders"), feed.Query{})

		require.ErrorIs(t, err, feed.ErrInvalidView)
	})
}

func TestListingCache(t *testing.T) {
	listings := []models.Listing{donation(1, status.Approved, models.GeoPoint{}, "2024-01-01")}

	t.Run("hit skips the store", func(t *testing.T) {
		c := mocks.NewCache(t)
		svc, appMetrics := newService(t, mocks.NewInterface(t), mocks.NewBackend(t), c)
		c.On("Listings", mock.Anything, models.KindDonation).Return(listings, nil).Once()

		page, err := svc.Home(t.Context(), models.KindDonation, feed.Query{})

		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.CacheLookups.WithLabelValues("hit")), 0)
	})

	t.Run("miss reads the store and fills the cache", func(t *testing.T) {
		c := mocks.NewCache(t)
		store := mocks.NewInterface(t)
		svc, appMetrics := newService(t, store, mocks.NewBackend(t), c)
		c.On("Listings", mock.Anything, models.KindDonation).Return(nil, cache.ErrMiss).Once()
		store.On("ListListings", mock.Anything, models.KindDonation).Return(listings, nil).Once()
		c.On("StoreListings", mock.Anything, models.KindDonation, listings).Return(nil).Once()

		_, err := svc.Home(t.Context(), models.KindDonation, feed.Query{})

		require.NoError(t, err)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.CacheLookups.WithLabelValues("miss")), 0)
	})

	t.Run("cache outage falls through to the store", func(t *testing.T) {
		c := mocks.NewCache(t)
		store := mocks.NewInterface(t)
		svc, appMetrics := newService(t, store, mocks.NewBackend(t), c)
		c.On("Listings", mock.Anything, models.KindDonation).Return(nil, assert.AnError).Once()
		store.On("ListListings", mock.Anything, models.KindDonation).Return(listings, nil).Once()
		c.On("StoreListings", mock.Anything, models.KindDonation, listings).Return(assert.AnError).Once()

		page, err := svc.Home(t.Context(), models.KindDonation, feed.Query{})

		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.CacheLookups.WithLabelValues("error")), 0)
	})
}

func TestRank_AntipodalListing(t *testing.T) {
	listings := []models.Listing{
		donation(1, status.Approved, models.NewGeoPoint(88.5, 0), "2024-01-01"),
		donation(2, status.Approved, models.GeoPoint{}, "2024-01-01"),
		donation(3, status.Approved, models.NewGeoPoint(-88.5, -179), "2024-01-01"),
	}

	items, order, _ := feed.Rank(listings, feed.Query{NearMe: true, Reference: models.NewGeoPoint(-88.5, -180)})

	assert.Equal(t, feed.OrderDistance, order)
	assert.Equal(t, []int64{3, 1, 2}, ids(items))
	require.NotNil(t, items[1].DistanceKm)
	assert.InDelta(t, 20015.09, *items[1].DistanceKm, 0.01)

	_, err := json.Marshal(items)
	require.NoError(t, err)
}

func TestDirectionsURL(t *testing.T) {
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=0%2C1",
		feed.DirectionsURL(models.Listing{GeoPoint: models.NewGeoPoint(0, 1)}))
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=1+Main+St",
		feed.DirectionsURL(models.Listing{Address: "1 Main St"}))
	assert.Empty(t, feed.DirectionsURL(models.Listing{}))
}
