package repository

import (
	"context"
	"database/sql"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

// RosterRepo manages the three master lists allocations draw from:
// the coordinator roster, the venue slot master and the EY personnel
// roster. Each master is replaced wholesale on upload; partial edits
// are not supported.
type RosterRepo struct {
	db *sql.DB
}

// NewRosterRepo returns a new RosterRepo bound to the given database.
func NewRosterRepo(db *sql.DB) *RosterRepo { return &RosterRepo{db: db} }

// ReplaceCoordinatorsTx swaps the coordinator roster for the given
// list within a transaction.
func (r *RosterRepo) ReplaceCoordinatorsTx(ctx context.Context, tx *sql.Tx, people []model.Person) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM coordinator_roster"); err != nil {
		return err
	}
	if len(people) == 0 {
		return nil
	}
	query := `INSERT INTO coordinator_roster (name, area, centre_code, mobile, email) VALUES `
	args := make([]interface{}, 0, len(people)*5)
	for i, p := range people {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, p.Name, p.Area, p.CentreCode, p.Mobile, p.Email)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ListCoordinators returns the coordinator roster in name order.
func (r *RosterRepo) ListCoordinators(ctx context.Context) ([]model.Person, error) {
	const q = `SELECT name, area, centre_code, mobile, email FROM coordinator_roster ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Person, 0)
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.Name, &p.Area, &p.CentreCode, &p.Mobile, &p.Email); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetCoordinator fetches one roster entry by exact name. Returns
// sql.ErrNoRows when the person is not on the roster.
func (r *RosterRepo) GetCoordinator(ctx context.Context, name string) (model.Person, error) {
	const q = `SELECT name, area, centre_code, mobile, email FROM coordinator_roster WHERE name = ? LIMIT 1`
	var p model.Person
	err := r.db.QueryRowContext(ctx, q, name).Scan(&p.Name, &p.Area, &p.CentreCode, &p.Mobile, &p.Email)
	return p, err
}

// ReplaceVenueSlotsTx swaps the venue slot master for the given list
// within a transaction.
func (r *RosterRepo) ReplaceVenueSlotsTx(ctx context.Context, tx *sql.Tx, slots []model.VenueSlot) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM venue_slots"); err != nil {
		return err
	}
	if len(slots) == 0 {
		return nil
	}
	query := `INSERT INTO venue_slots (venue, slot_date, shift, centre_code, address) VALUES `
	args := make([]interface{}, 0, len(slots)*5)
	for i, s := range slots {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, s.Venue, s.Date, s.Shift, s.CentreCode, s.Address)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ListVenueSlots returns the full venue slot master.
func (r *RosterRepo) ListVenueSlots(ctx context.Context) ([]model.VenueSlot, error) {
	const q = `SELECT venue, slot_date, shift, centre_code, address FROM venue_slots ORDER BY venue, slot_date, shift`
	return r.queryVenueSlots(ctx, q)
}

// ListSlotsByVenue returns the slots of a single venue.
func (r *RosterRepo) ListSlotsByVenue(ctx context.Context, venue string) ([]model.VenueSlot, error) {
	const q = `SELECT venue, slot_date, shift, centre_code, address FROM venue_slots
	           WHERE venue = ? ORDER BY slot_date, shift`
	return r.queryVenueSlots(ctx, q, venue)
}

func (r *RosterRepo) queryVenueSlots(ctx context.Context, q string, args ...interface{}) ([]model.VenueSlot, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.VenueSlot, 0)
	for rows.Next() {
		var s model.VenueSlot
		if err := rows.Scan(&s.Venue, &s.Date, &s.Shift, &s.CentreCode, &s.Address); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListVenues returns the distinct venue names of the slot master.
func (r *RosterRepo) ListVenues(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT venue FROM venue_slots ORDER BY venue")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ReplaceEYTx swaps the EY personnel roster for the given list within
// a transaction.
func (r *RosterRepo) ReplaceEYTx(ctx context.Context, tx *sql.Tx, people []model.EYPerson) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM ey_roster"); err != nil {
		return err
	}
	if len(people) == 0 {
		return nil
	}
	query := `INSERT INTO ey_roster (name, mobile, email, id_number, designation, department) VALUES `
	args := make([]interface{}, 0, len(people)*6)
	for i, p := range people {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, p.Name, p.Mobile, p.Email, p.IDNumber, p.Designation, p.Department)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ListEY returns the EY roster in name order.
func (r *RosterRepo) ListEY(ctx context.Context) ([]model.EYPerson, error) {
	const q = `SELECT name, mobile, email, id_number, designation, department FROM ey_roster ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.EYPerson, 0)
	for rows.Next() {
		var p model.EYPerson
		if err := rows.Scan(&p.Name, &p.Mobile, &p.Email, &p.IDNumber, &p.Designation, &p.Department); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetEY fetches one EY roster entry by exact name. Returns
// sql.ErrNoRows when the person is not on the roster.
func (r *RosterRepo) GetEY(ctx context.Context, name string) (model.EYPerson, error) {
	const q = `SELECT name, mobile, email, id_number, designation, department FROM ey_roster WHERE name = ? LIMIT 1`
	var p model.EYPerson
	err := r.db.QueryRowContext(ctx, q, name).Scan(
		&p.Name, &p.Mobile, &p.Email, &p.IDNumber, &p.Designation, &p.Department)
	return p, err
}
