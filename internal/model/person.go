package model

// Person is one row of the coordinator/flying-squad roster.  The
// roster is supplied by an external master file; the engine only reads
// it.  Names are unique within a loaded roster but not globally
// enforced.
//
// Fields:
//  Name       – person name, required.
//  Area       – home area/district.
//  CentreCode – 4-digit zero-padded centre code.
//  Mobile     – optional contact number.
//  Email      – optional contact address.
type Person struct {
	Name       string `json:"name"`        // coordinator_roster.name
	Area       string `json:"area"`        // coordinator_roster.area
	CentreCode string `json:"centre_code"` // coordinator_roster.centre_code
	Mobile     string `json:"mobile"`      // coordinator_roster.mobile
	Email      string `json:"email"`       // coordinator_roster.email
}

// EYPerson is one row of the EY observer roster.  Only the name is
// required; the remaining fields are carried through onto allocations
// as contact snapshots when present.
type EYPerson struct {
	Name        string `json:"name"`        // ey_roster.name
	Mobile      string `json:"mobile"`      // ey_roster.mobile
	Email       string `json:"email"`       // ey_roster.email
	IDNumber    string `json:"id_number"`   // ey_roster.id_number
	Designation string `json:"designation"` // ey_roster.designation
	Department  string `json:"department"`  // ey_roster.department
}
