package model

// VenueSlot is one assignable (venue, date, shift) combination from
// the venue master.  A venue typically appears many times, once per
// date × shift.  Dates are stored in the display format dd-mm-yyyy.
//
// Fields:
//  Venue      – venue name.
//  Date       – calendar day, dd-mm-yyyy.
//  Shift      – shift label; free-form for coordinator allocation,
//               one of EYShifts for EY allocation.
//  CentreCode – 4-digit zero-padded centre code.
//  Address    – postal address of the venue.
type VenueSlot struct {
	Venue      string `json:"venue"`       // venue_slots.venue
	Date       string `json:"date"`        // venue_slots.slot_date
	Shift      string `json:"shift"`       // venue_slots.shift
	CentreCode string `json:"centre_code"` // venue_slots.centre_code
	Address    string `json:"address"`     // venue_slots.address
}

// EYShifts is the fixed shift set for EY allocation.
var EYShifts = []string{"Morning", "Afternoon", "Evening"}

// ValidEYShift reports whether s is one of the fixed EY shift labels.
func ValidEYShift(s string) bool {
	for _, v := range EYShifts {
		if v == s {
			return true
		}
	}
	return false
}
