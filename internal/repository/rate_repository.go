package repository

import (
	"context"
	"database/sql"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

// RateRepo persists the single remuneration rate table. The table
// holds at most one row (id = 1); before the operator saves anything
// the built-in defaults apply.
type RateRepo struct {
	db *sql.DB
}

// NewRateRepo returns a new RateRepo bound to the given database.
func NewRateRepo(db *sql.DB) *RateRepo { return &RateRepo{db: db} }

// Load returns the saved rate table, or the defaults when none has
// been saved yet.
func (r *RateRepo) Load(ctx context.Context) (model.Rates, error) {
	const q = `SELECT multiple_shifts, single_shift, mock_test, ey_personnel
	           FROM remuneration_rates WHERE id = 1`
	var rates model.Rates
	err := r.db.QueryRowContext(ctx, q).Scan(
		&rates.MultipleShifts, &rates.SingleShift, &rates.MockTest, &rates.EYPersonnel)
	if err == sql.ErrNoRows {
		return model.DefaultRates(), nil
	}
	if err != nil {
		return model.Rates{}, err
	}
	return rates, nil
}

// Save stores the rate table, replacing any previous values.
func (r *RateRepo) Save(ctx context.Context, rates model.Rates) error {
	const q = `INSERT INTO remuneration_rates (id, multiple_shifts, single_shift, mock_test, ey_personnel)
	           VALUES (1, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE multiple_shifts = VALUES(multiple_shifts),
	               single_shift = VALUES(single_shift), mock_test = VALUES(mock_test),
	               ey_personnel = VALUES(ey_personnel)`
	_, err := r.db.ExecContext(ctx, q,
		rates.MultipleShifts, rates.SingleShift, rates.MockTest, rates.EYPersonnel)
	return err
}

// ResetTx removes the saved row so the defaults apply again. Used by
// the full data reset.
func (r *RateRepo) ResetTx(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM remuneration_rates")
	return err
}
