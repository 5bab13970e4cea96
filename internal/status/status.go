// Package status models the lifecycle tags a donation or request can carry.
package status

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle tag of a listing. The zero value is Unset.
type Status string

// Known statuses.
const (
	Unset          Status = ""
	Pending        Status = "pending"
	Approved       Status = "approved"
	Rejected       Status = "rejected"
	Requested      Status = "requested"
	ReadyToDonate  Status = "readytodonate"
	OutForDelivery Status = "out_for_delivery"
	Completed      Status = "completed"
)

// ErrUnknownStatus is returned by Parse for strings outside the known tag set.
var ErrUnknownStatus = errors.New("unknown status")

var known = []Status{Pending, Approved, Rejected, Requested, ReadyToDonate, OutForDelivery, Completed}

// transitions lists, for each status, the statuses it may move to.
var transitions = map[Status][]Status{
	Pending:        {Approved, Rejected, Requested, ReadyToDonate},
	Approved:       {Requested, ReadyToDonate, OutForDelivery, Rejected},
	Requested:      {OutForDelivery, Completed},
	ReadyToDonate:  {OutForDelivery, Completed},
	OutForDelivery: {Completed},
	Rejected:       {Pending},
	Completed:      {},
}

// Parse converts a raw backend string into a Status. Matching is case-insensitive and
// ignores surrounding whitespace. An empty string yields Unset.
func Parse(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == Unset || s.Known() {
		return s, nil
	}

	return s, fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// Known returns all known statuses in lifecycle order.
func Known() []Status {
	out := make([]Status, len(known))
	copy(out, known)
	return out
}

// Known reports whether s is one of the known tags. Unset is not a known tag.
func (s Status) Known() bool {
	for _, k := range known {
		if s == k {
			return true
		}
	}
	return false
}

// Normalized lower-cases s without validating it.
func (s Status) Normalized() Status {
	return Status(strings.ToLower(strings.TrimSpace(string(s))))
}

// Effective maps Unset to Pending. Listings are created pending, so a missing
// status is read as "not yet reviewed".
func (s Status) Effective() Status {
	n := s.Normalized()
	if n == Unset {
		return Pending
	}
	return n
}

// Standard reports whether s may appear in the public feeds and owner lists.
// Unset counts as standard; out-for-delivery and custom tags do not.
func (s Status) Standard() bool {
	n := s.Normalized()
	if n == Unset {
		return true
	}
	return n.Known() && n != OutForDelivery
}

// Is compares two statuses after normalization.
func (s Status) Is(other Status) bool {
	return s.Normalized() == other.Normalized()
}

// CanTransition reports whether a listing in status from may move to status to.
// Unset is treated as Pending.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from.Effective()] {
		if next == to.Normalized() {
			return true
		}
	}
	return false
}

// Label is the display text of the status, e.g. "OUT FOR DELIVERY".
func (s Status) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(s.Effective()), "_", " "))
}

func (s Status) String() string {
	return string(s)
}
