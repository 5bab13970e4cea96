package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/UnknownOlympus/foodbridge/internal/repository"
	"github.com/UnknownOlympus/foodbridge/internal/session"
	"github.com/UnknownOlympus/foodbridge/internal/status"
)

// RequestDonation marks a donation as requested by the calling recipient and alerts volunteers.
func (s *Service) RequestDonation(ctx context.Context, sess session.Session, id int64) (*models.Listing, error) {
	if err := requireRole(sess, session.RoleRecipient); err != nil {
		return nil, err
	}

	listing, err := s.transition(ctx, models.KindDonation, id, status.Requested)
	if err != nil {
		return nil, err
	}

	recipientID := sess.RoleID
	listing.RecipientID = &recipientID
	listing.Remarks = fmt.Sprintf("Requested by recipient ID: %d", sess.RoleID)

	if err = s.backend.UpdateDonation(ctx, listing.Upstream()); err != nil {
		return nil, fmt.Errorf("failed to request donation %d: %w", id, err)
	}
	s.applied(ctx, listing)

	s.notify(ctx, models.VolunteerNotice{
		DonationID: &listing.ID,
		Message:    "New donation requested: " + listing.DisplayTitle(),
		Location:   listing.Address,
	})

	return listing, nil
}

// DonateToRequest marks a request as ready to donate by the calling donor and alerts volunteers.
func (s *Service) DonateToRequest(ctx context.Context, sess session.Session, id int64) (*models.Listing, error) {
	if err := requireRole(sess, session.RoleDonor); err != nil {
		return nil, err
	}

	listing, err := s.transition(ctx, models.KindRequest, id, status.ReadyToDonate)
	if err != nil {
		return nil, err
	}

	donorID := sess.RoleID
	listing.DonorID = &donorID
	listing.Remarks = fmt.Sprintf("Ready to donate by donor ID: %d", sess.RoleID)

	if err = s.backend.UpdateRequest(ctx, listing.Upstream()); err != nil {
		return nil, fmt.Errorf("failed to donate to request %d: %w", id, err)
	}
	s.applied(ctx, listing)

	s.notify(ctx, models.VolunteerNotice{
		RequestID: &listing.ID,
		Message:   "New request ready to donate: " + listing.DisplayTitle(),
		Location:  listing.Address,
	})

	return listing, nil
}

// AcceptDelivery puts a listing out for delivery on behalf of the calling volunteer.
func (s *Service) AcceptDelivery(
	ctx context.Context,
	sess session.Session,
	kind models.Kind,
	id int64,
) (*models.Listing, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if err := requireRole(sess, session.RoleVolunteer); err != nil {
		return nil, err
	}

	listing, err := s.transition(ctx, kind, id, status.OutForDelivery)
	if err != nil {
		return nil, err
	}
	listing.Remarks = fmt.Sprintf("Accepted by %s (ID: %d)", sess.DisplayName(), sess.RoleID)

	if kind == models.KindDonation {
		err = s.backend.PatchDonationStatus(ctx, id, status.OutForDelivery, listing.Remarks)
	} else {
		err = s.backend.UpdateRequest(ctx, listing.Upstream())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to accept %s %d for delivery: %w", kind, id, err)
	}
	s.applied(ctx, listing)

	return listing, nil
}

// Delete removes a listing. Only its owner or an admin may do so, and never while it is on the road.
func (s *Service) Delete(ctx context.Context, sess session.Session, kind models.Kind, id int64) error {
	if !kind.Valid() {
		return ErrInvalidKind
	}
	if !sess.LoggedIn() {
		return ErrUnauthenticated
	}

	listing, err := s.get(ctx, kind, id)
	if err != nil {
		return err
	}
	if !ownedBy(listing, sess) {
		return ErrForbidden
	}
	if listing.Status.Is(status.OutForDelivery) {
		return fmt.Errorf("%w: %s %d is out for delivery", ErrInvalidTransition, kind, id)
	}

	if kind == models.KindDonation {
		err = s.backend.DeleteDonation(ctx, id)
	} else {
		err = s.backend.DeleteRequest(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
	}

	if err = s.store.DeleteListing(ctx, kind, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.WarnContext(ctx, "Deleted upstream but read-model kept the listing until next sync",
			"kind", kind, "id", id, "error", err)
	}
	s.invalidate(ctx, kind)

	return nil
}

// transition loads a listing and moves it to next, failing when the lifecycle forbids it.
func (s *Service) transition(
	ctx context.Context,
	kind models.Kind,
	id int64,
	next status.Status,
) (*models.Listing, error) {
	listing, err := s.get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if !status.CanTransition(listing.Status, next) {
		return nil, fmt.Errorf("%w: %s %d from %s to %s",
			ErrInvalidTransition, kind, id, listing.Status.Effective(), next)
	}
	listing.Status = next

	return listing, nil
}

func (s *Service) get(ctx context.Context, kind models.Kind, id int64) (*models.Listing, error) {
	listing, err := s.store.GetListing(ctx, kind, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %d: %w", kind, id, err)
	}
	return listing, nil
}

// applied mirrors an accepted change into the read-model so feeds reflect it before the next sync.
func (s *Service) applied(ctx context.Context, listing *models.Listing) {
	if err := s.store.UpdateStatus(ctx, listing.Kind, listing.ID, listing.Status); err != nil {
		s.log.WarnContext(ctx, "Failed to mirror status into read-model",
			"kind", listing.Kind, "id", listing.ID, "status", listing.Status, "error", err)
	}
	s.invalidate(ctx, listing.Kind)
}

// notify alerts volunteers. The action already succeeded, so a failure is only logged.
func (s *Service) notify(ctx context.Context, notice models.VolunteerNotice) {
	if err := s.backend.NotifyVolunteers(ctx, notice); err != nil {
		s.log.WarnContext(ctx, "Failed to notify volunteers", "message", notice.Message, "error", err)
	}
}

func requireRole(sess session.Session, role session.Role) error {
	if !sess.LoggedIn() {
		return ErrUnauthenticated
	}
	if sess.Role != role {
		return ErrForbidden
	}
	return nil
}

func ownedBy(listing *models.Listing, sess session.Session) bool {
	if sess.Role == session.RoleAdmin {
		return true
	}

	ownerRole := session.RoleDonor
	if listing.Kind == models.KindRequest {
		ownerRole = session.RoleRecipient
	}
	owner, ok := listing.OwnerID()
	return ok && sess.Role == ownerRole && owner == sess.RoleID
}
