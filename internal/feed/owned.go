package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/UnknownOlympus/foodbridge/internal/status"
)

// Stats counts an owner's listings by status. A listing without a status counts as pending.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Requested int `json:"requested"`
	Donated   int `json:"donated"`
	Completed int `json:"completed"`
}

// OwnedPage is an owner's dashboard list with its counters.
type OwnedPage struct {
	Page
	Stats Stats `json:"stats"`
}

// Owned lists a donor's donations or a recipient's requests, hiding those in delivery or carrying
// a custom status (they belong to Orders). q.Status narrows the page but not the counters.
func (s *Service) Owned(ctx context.Context, kind models.Kind, ownerID int64, q Query) (OwnedPage, error) {
	if !kind.Valid() {
		return OwnedPage{}, ErrInvalidKind
	}

	match, err := statusFilter(q.Status)
	if err != nil {
		return OwnedPage{}, err
	}

	listings, err := s.ownerListings(ctx, kind, ownerID)
	if err != nil {
		return OwnedPage{}, err
	}

	standard := filter(listings, func(l models.Listing) bool { return l.Status.Standard() })
	page := s.arrange(filter(standard, func(l models.Listing) bool { return match(l.Status) }), q)

	return OwnedPage{Page: page, Stats: countStats(standard)}, nil
}

// Orders lists what is in flight for an owner: their own listings that are out for delivery or
// carry a custom status, plus listings of the other kind they answered that are in delivery or done.
func (s *Service) Orders(ctx context.Context, kind models.Kind, ownerID int64, q Query) (Page, error) {
	if !kind.Valid() {
		return Page{}, ErrInvalidKind
	}

	own, err := s.ownerListings(ctx, kind, ownerID)
	if err != nil {
		return Page{}, err
	}

	counterpart := models.KindRequest
	answeredBy := func(l models.Listing) *int64 { return l.DonorID }
	if kind == models.KindRequest {
		counterpart = models.KindDonation
		answeredBy = func(l models.Listing) *int64 { return l.RecipientID }
	}

	others, err := s.listings(ctx, counterpart)
	if err != nil {
		return Page{}, err
	}

	orders := filter(own, func(l models.Listing) bool {
		st := l.Status.Effective()
		return st == status.OutForDelivery || !st.Known()
	})
	orders = append(orders, filter(others, func(l models.Listing) bool {
		st := l.Status.Effective()
		by := answeredBy(l)
		return (st == status.OutForDelivery || st == status.Completed) && by != nil && *by == ownerID
	})...)

	return s.arrange(orders, q), nil
}

// ownerListings reads an owner's listings from the backend so freshly posted ones show up before the
// next sync, then borrows geocoded positions from the read-model. When the backend is down the
// read-model answers alone.
func (s *Service) ownerListings(ctx context.Context, kind models.Kind, ownerID int64) ([]models.Listing, error) {
	stored, storeErr := s.store.ListByOwner(ctx, kind, ownerID)

	fetch := s.backend.ListDonationsByDonor
	if kind == models.KindRequest {
		fetch = s.backend.ListRequestsByRecipient
	}

	fresh, err := fetch(ctx, ownerID)
	if err != nil {
		if storeErr != nil {
			return nil, fmt.Errorf("failed to load %s listings of owner %d: %w", kind, ownerID, err)
		}
		s.log.WarnContext(ctx, "Backend unavailable, serving owner listings from read-model",
			"kind", kind, "owner", ownerID, "error", err)
		return stored, nil
	}

	if storeErr != nil {
		s.log.WarnContext(ctx, "Read-model unavailable, owner listings lack geocoded positions",
			"kind", kind, "owner", ownerID, "error", storeErr)
		return fresh, nil
	}

	located := make(map[int64]models.Listing, len(stored))
	for _, l := range stored {
		if l.Geocoded {
			located[l.ID] = l
		}
	}
	for i := range fresh {
		if fresh[i].Location().Known() {
			continue
		}
		if l, ok := located[fresh[i].ID]; ok {
			fresh[i].GeoPoint = l.GeoPoint
			fresh[i].Geocoded = true
		}
	}

	return fresh, nil
}

// statusFilter parses an owner-list filter. "pending" also matches listings without a status and
// "donated" matches readytodonate.
func statusFilter(raw string) (func(status.Status) bool, error) {
	switch f := strings.ToLower(strings.TrimSpace(raw)); f {
	case "", "all":
		return func(status.Status) bool { return true }, nil
	case "donated":
		return func(st status.Status) bool { return st.Is(status.ReadyToDonate) }, nil
	default:
		want, err := status.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
		}
		return func(st status.Status) bool { return st.Effective() == want }, nil
	}
}

func countStats(listings []models.Listing) Stats {
	stats := Stats{Total: len(listings)}
	for _, l := range listings {
		switch l.Status.Effective() {
		case status.Pending:
			stats.Pending++
		case status.Approved:
			stats.Approved++
		case status.Rejected:
			stats.Rejected++
		case status.Requested:
			stats.Requested++
		case status.ReadyToDonate:
			stats.Donated++
		case status.Completed:
			stats.Completed++
		}
	}
	return stats
}
