package models

import (
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/status"
)

// Kind tells a donation from a request.
type Kind string

const (
	// KindDonation is food offered by a donor.
	KindDonation Kind = "donation"
	// KindRequest is food asked for by a recipient.
	KindRequest Kind = "request"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindDonation || k == KindRequest
}

// Listing is a donation or a request as served by the backend. Both kinds share
// one shape; the owner fields tell who created it and who answered it.
type Listing struct {
	ID          int64         `json:"id"`
	Kind        Kind          `json:"kind,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	FoodType    string        `json:"foodType,omitempty"`
	Type        string        `json:"type,omitempty"`
	Status      status.Status `json:"status,omitempty"`
	Approved    bool          `json:"approved,omitempty"`
	Address     string        `json:"address,omitempty"`
	Photo       string        `json:"photo,omitempty"`
	Quantity    string        `json:"quantity,omitempty"`
	Remarks     string        `json:"remarks,omitempty"`
	DonorID     *int64        `json:"donorId,omitempty"`
	RecipientID *int64        `json:"recipientId,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt,omitzero"`
	GeoPoint
	// Geocoded is set when the position was derived from the address rather than supplied by the backend.
	Geocoded bool `json:"geocoded,omitempty"`
}

// Location returns the listing's optional position.
func (l Listing) Location() GeoPoint {
	return l.GeoPoint
}

// LastActivity is the later of the creation and update timestamps.
func (l Listing) LastActivity() time.Time {
	if l.UpdatedAt.After(l.CreatedAt) {
		return l.UpdatedAt
	}
	return l.CreatedAt
}

// OwnerID is the id of the party that created the listing: the donor of a
// donation or the recipient of a request.
func (l Listing) OwnerID() (int64, bool) {
	owner := l.DonorID
	if l.Kind == KindRequest {
		owner = l.RecipientID
	}
	if owner == nil {
		return 0, false
	}
	return *owner, true
}

// Upstream returns the listing as the backend knows it, without a geocoded position.
func (l Listing) Upstream() Listing {
	if l.Geocoded {
		l.GeoPoint = GeoPoint{}
		l.Geocoded = false
	}
	return l
}

// DisplayTitle falls back to the food type when the title is empty.
func (l Listing) DisplayTitle() string {
	if l.Title != "" {
		return l.Title
	}
	return l.FoodType
}

// Donor describes the party offering a donation.
type Donor struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	OrganizationName string `json:"organizationName,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email,omitempty"`
	Status           string `json:"status,omitempty"`
}

// VolunteerNotice is sent to the backend when a listing needs a pickup.
type VolunteerNotice struct {
	DonationID *int64 `json:"donationId,omitempty"`
	RequestID  *int64 `json:"requestId,omitempty"`
	Message    string `json:"message"`
	Location   string `json:"location,omitempty"`
}
