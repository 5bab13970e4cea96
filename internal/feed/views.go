package feed

import (
	"context"
	"strings"

	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/UnknownOlympus/foodbridge/internal/status"
)

// View names a public feed.
type View string

const (
	ViewHome      View = "home"
	ViewDonations View = "donations"
	ViewRequests  View = "requests"
	ViewVolunteer View = "volunteer"
)

// onHome is the public landing filter: reviewed listings and donations already asked for.
func onHome(l models.Listing) bool {
	return l.Approved || l.Status.Is(status.Approved) || l.Status.Is(status.Requested)
}

// openDonation is a donation a recipient may still see in the donation feed.
func openDonation(l models.Listing) bool {
	return onHome(l) && !l.Status.Is(status.Completed) && l.Status.Standard()
}

// openRequest is a request a donor may still answer.
func openRequest(l models.Listing) bool {
	visible := l.Approved || l.Status.Is(status.Approved) || l.Status.Is(status.ReadyToDonate)
	return visible && !l.Status.Is(status.Completed) && l.Status.Standard()
}

// ofType matches listings whose type equals want, ignoring case. Empty or "all" matches everything.
func ofType(want string) func(models.Listing) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, "all") {
		return func(models.Listing) bool { return true }
	}
	return func(l models.Listing) bool { return strings.EqualFold(strings.TrimSpace(l.Type), want) }
}

// Home returns the landing page feed of one kind.
func (s *Service) Home(ctx context.Context, kind models.Kind, q Query) (Page, error) {
	if !kind.Valid() {
		return Page{}, ErrInvalidKind
	}

	listings, err := s.listings(ctx, kind)
	if err != nil {
		return Page{}, err
	}

	page := s.arrange(filter(listings, onHome), q)
	s.attachDonors(ctx, page.Items)
	s.count(ViewHome, page)

	return page, nil
}

// Donations is the recipient feed of donations that can be requested.
func (s *Service) Donations(ctx context.Context, q Query) (Page, error) {
	listings, err := s.listings(ctx, models.KindDonation)
	if err != nil {
		return Page{}, err
	}

	page := s.arrange(filter(listings, openDonation), q)
	s.attachDonors(ctx, page.Items)
	s.count(ViewDonations, page)

	return page, nil
}

// Requests is the donor feed of requests that can be answered.
func (s *Service) Requests(ctx context.Context, q Query) (Page, error) {
	listings, err := s.listings(ctx, models.KindRequest)
	if err != nil {
		return Page{}, err
	}

	page := s.arrange(filter(filter(listings, openRequest), ofType(q.Type)), q)
	s.count(ViewRequests, page)

	return page, nil
}

// Volunteer merges the landing donations and requests into one pickup feed.
func (s *Service) Volunteer(ctx context.Context, q Query) (Page, error) {
	donations, err := s.listings(ctx, models.KindDonation)
	if err != nil {
		return Page{}, err
	}
	requests, err := s.listings(ctx, models.KindRequest)
	if err != nil {
		return Page{}, err
	}

	combined := append(filter(donations, onHome), filter(requests, onHome)...)
	page := s.arrange(combined, q)
	s.attachDonors(ctx, page.Items)
	s.count(ViewVolunteer, page)

	return page, nil
}

// Export returns every item of a view, ranked but not paginated.
func (s *Service) Export(ctx context.Context, view View, q Query) ([]Item, error) {
	var listings []models.Listing

	switch view {
	case ViewHome, ViewVolunteer:
		donations, err := s.listings(ctx, models.KindDonation)
		if err != nil {
			return nil, err
		}
		requests, err := s.listings(ctx, models.KindRequest)
		if err != nil {
			return nil, err
		}
		listings = append(filter(donations, onHome), filter(requests, onHome)...)
	case ViewDonations:
		donations, err := s.listings(ctx, models.KindDonation)
		if err != nil {
			return nil, err
		}
		listings = filter(donations, openDonation)
	case ViewRequests:
		requests, err := s.listings(ctx, models.KindRequest)
		if err != nil {
			return nil, err
		}
		listings = filter(filter(requests, openRequest), ofType(q.Type))
	default:
		return nil, ErrInvalidView
	}

	items, _, _ := Rank(listings, q)
	return items, nil
}

// attachDonors fills in donor profiles for donation items. Lookup failures leave the profile empty.
func (s *Service) attachDonors(ctx context.Context, items []Item) {
	donors := make(map[int64]*models.Donor)
	for i := range items {
		if items[i].Kind != models.KindDonation || items[i].DonorID == nil {
			continue
		}
		id := *items[i].DonorID

		donor, seen := donors[id]
		if !seen {
			var err error
			donor, err = s.backend.GetDonor(ctx, id)
			if err != nil {
				s.log.WarnContext(ctx, "Failed to fetch donor", "donor", id, "error", err)
				donor = nil
			}
			donors[id] = donor
		}
		items[i].Donor = donor
	}
}

func (s *Service) count(view View, page Page) {
	s.metrics.FeedRequests.WithLabelValues(string(view), string(page.Order)).Inc()
}
