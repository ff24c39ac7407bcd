package model

// Rates is the process-wide remuneration rate table.  Coordinator pay
// is derived per (person, day) from the shift pattern; EY observers
// are paid a flat per-day amount.  Amounts are whole rupees.
type Rates struct {
	MultipleShifts uint32 `json:"multiple_shifts"` // remuneration_rates.multiple_shifts
	SingleShift    uint32 `json:"single_shift"`    // remuneration_rates.single_shift
	MockTest       uint32 `json:"mock_test"`       // remuneration_rates.mock_test
	EYPersonnel    uint32 `json:"ey_personnel"`    // remuneration_rates.ey_personnel
}

// DefaultRates returns the rate table used before the operator saves
// one of their own.
func DefaultRates() Rates {
	return Rates{
		MultipleShifts: 750,
		SingleShift:    450,
		MockTest:       450,
		EYPersonnel:    5000,
	}
}
