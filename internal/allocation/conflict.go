// Package allocation holds the conflict rules applied before any
// assignment is written. The rules are pure functions over the
// exam's existing rows so they can be exercised directly in tests and
// reused by batch creation, which appends each accepted row to the
// working slice before checking the next candidate.
package allocation

import (
	"fmt"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

// ConflictType distinguishes the two rejection reasons.
type ConflictType string

const (
	// ConflictDuplicate means the identical assignment already exists.
	ConflictDuplicate ConflictType = "duplicate"
	// ConflictVenueClash means the person is already committed to a
	// different venue in the same date and shift.
	ConflictVenueClash ConflictType = "venue_clash"
)

// Conflict describes why a candidate assignment was rejected. The
// message is operator-facing and names the colliding assignment.
type Conflict struct {
	Type          ConflictType `json:"type"`
	ExistingVenue string       `json:"existing_venue"`
	Message       string       `json:"message"`
}

// DetectIO checks a candidate coordinator-kind assignment against the
// exam's existing coordinator rows. Exact duplicates are rejected for
// every role. The cross-venue rule applies only to Centre
// Coordinators: a coordinator holds one venue per (date, shift), while
// Flying Squad officers are expected to cover several venues in a
// single shift. The first matching row wins; nil means no conflict.
func DetectIO(existing []model.Allocation, person, date, shift, venue, role string) *Conflict {
	for _, a := range existing {
		if a.PersonName != person || a.Date != date || a.Shift != shift {
			continue
		}
		if a.Venue == venue && a.Role == role {
			return &Conflict{
				Type:          ConflictDuplicate,
				ExistingVenue: a.Venue,
				Message: fmt.Sprintf(
					"Duplicate allocation found! %s is already allocated to %s on %s (%s) as %s.",
					person, a.Venue, date, shift, a.Role),
			}
		}
		if role == model.RoleCentreCoordinator && a.Role == model.RoleCentreCoordinator && a.Venue != venue {
			return &Conflict{
				Type:          ConflictVenueClash,
				ExistingVenue: a.Venue,
				Message: fmt.Sprintf(
					"Centre Coordinator conflict! %s is already allocated to %s on %s (%s). Cannot assign to %s.",
					person, a.Venue, date, shift, venue),
			}
		}
	}
	return nil
}

// DetectEY checks a candidate EY observer assignment against the
// exam's existing EY rows. Duplicates are rejected, and the
// cross-venue rule is unconditional: an observer covers exactly one
// venue per (date, shift).
func DetectEY(existing []model.EYAllocation, person, date, shift, venue string) *Conflict {
	for _, a := range existing {
		if a.PersonName != person || a.Date != date || a.Shift != shift {
			continue
		}
		if a.Venue == venue {
			return &Conflict{
				Type:          ConflictDuplicate,
				ExistingVenue: a.Venue,
				Message: fmt.Sprintf(
					"Duplicate allocation found! %s is already allocated to %s on %s (%s) as %s.",
					person, a.Venue, date, shift, model.RoleEYPersonnel),
			}
		}
		return &Conflict{
			Type:          ConflictVenueClash,
			ExistingVenue: a.Venue,
			Message: fmt.Sprintf(
				"EY Personnel conflict! %s is already allocated to %s on %s (%s). Cannot assign to %s.",
				person, a.Venue, date, shift, venue),
		}
	}
	return nil
}
