package feed

import (
	"fmt"
	"net/url"

	"github.com/UnknownOlympus/foodbridge/internal/geo"
	"github.com/UnknownOlympus/foodbridge/internal/models"
)

// Order names how a page was ranked.
type Order string

const (
	OrderDistance Order = "distance"
	OrderRecency  Order = "recency"
)

// Query selects the ranking and page of a feed.
type Query struct {
	// NearMe asks for nearest-first ranking around Reference.
	NearMe bool
	// Reference is the caller's position; unknown when geolocation was denied or unavailable.
	Reference models.GeoPoint
	// RadiusKm drops listings farther than this when ranking by distance. Zero means no limit.
	RadiusKm float64
	Page     int
	PageSize int
	// Status filters owner lists: all, pending, approved, rejected, requested, donated, completed.
	Status string
	// Type narrows the request feed to one request type, matched case-insensitively. Empty or "all" keeps every type.
	Type string
}

// Item is a listing decorated for display.
type Item struct {
	models.Listing
	DistanceKm    *float64      `json:"distanceKm,omitempty"`
	DistanceLabel string        `json:"distanceLabel,omitempty"`
	StatusLabel   string        `json:"statusLabel"`
	DirectionsURL string        `json:"directionsUrl,omitempty"`
	Donor         *models.Donor `json:"donor,omitempty"`
}

// Page is one page of a ranked feed.
type Page struct {
	Items               []Item `json:"items"`
	Page                int    `json:"page"`
	PageSize            int    `json:"page_size"`
	TotalItems          int    `json:"total_items"`
	TotalPages          int    `json:"total_pages"`
	Order               Order  `json:"order"`
	LocationUnavailable bool   `json:"location_unavailable"`
}

// Rank decorates and orders listings for q without paginating. Nearest-first ranking needs
// both NearMe and a known reference; otherwise the most recently active listings come first.
func Rank(listings []models.Listing, q Query) ([]Item, Order, bool) {
	ref := q.Reference
	refKnown := ref.Known()

	items := make([]Item, len(listings))
	for i, l := range listings {
		item := Item{Listing: l, StatusLabel: l.Status.Label(), DirectionsURL: DirectionsURL(l)}
		if d, ok := geo.Distance(ref, l.Location()); ok {
			item.DistanceKm = &d
			item.DistanceLabel = geo.FormatDistance(d)
		}
		items[i] = item
	}

	switch {
	case q.NearMe && refKnown && q.RadiusKm > 0:
		return geo.NewIndex(items).Within(ref, q.RadiusKm), OrderDistance, false
	case q.NearMe && refKnown:
		return geo.RankByDistance(ref, items), OrderDistance, false
	default:
		return geo.RankByRecency(items), OrderRecency, q.NearMe && !refKnown
	}
}

// arrange ranks listings and cuts out the requested page.
func (s *Service) arrange(listings []models.Listing, q Query) Page {
	items, order, unavailable := Rank(listings, q)
	page := paginate(items, q.Page, s.resolvePageSize(q.PageSize))
	page.Order = order
	page.LocationUnavailable = unavailable
	return page
}

func (s *Service) resolvePageSize(requested int) int {
	size := requested
	if size <= 0 {
		size = s.pageSize
	}
	if size <= 0 {
		size = 1
	}
	return min(size, maxPageSize)
}

func paginate(items []Item, page, size int) Page {
	page = max(page, 1)
	total := len(items)
	totalPages := (total + size - 1) / size

	start := min((page-1)*size, total)
	end := min(start+size, total)

	out := make([]Item, end-start)
	copy(out, items[start:end])

	return Page{
		Items:      out,
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// DirectionsURL links to turn-by-turn directions to the listing: by coordinates when known,
// by address otherwise. It is empty when neither is available.
func DirectionsURL(l models.Listing) string {
	destination := l.Address
	if coords, ok := l.Location().Coordinates(); ok {
		destination = fmt.Sprintf("%g,%g", coords.Latitude, coords.Longitude)
	}
	if destination == "" {
		return ""
	}

	query := url.Values{}
	query.Set("api", "1")
	query.Set("destination", destination)
	return "https://www.google.com/maps/dir/?" + query.Encode()
}
