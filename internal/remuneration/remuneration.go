// Package remuneration computes payment lines from allocation rows.
// Pay is granted per person per calendar day, never per row: a
// coordinator working two shifts on one day earns the multiple-shift
// amount once.
package remuneration

import (
	"sort"
	"time"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

// Shift type labels shown on payment lines.
const (
	ShiftTypeMock     = "Mock Test"
	ShiftTypeMultiple = "Multiple Shifts"
	ShiftTypeSingle   = "Single Shift"
	ShiftTypePerDay   = "Per Day"
)

// DayPay is one payment line: what one person earns for one day.
type DayPay struct {
	Person    string `json:"person"`
	Date      string `json:"date"`
	Shifts    int    `json:"shifts"`
	ShiftType string `json:"shift_type"`
	Amount    uint32 `json:"amount"`
}

// PersonTotal aggregates a person's payment lines.
type PersonTotal struct {
	Person      string `json:"person"`
	TotalDays   int    `json:"total_days"`
	TotalAmount uint32 `json:"total_amount"`
}

type dayKey struct {
	person string
	date   string
}

// CoordinatorDayPays derives the payment lines for coordinator-kind
// allocations. A mock test day pays the mock rate regardless of shift
// count; otherwise working more than one distinct shift on a day pays
// the multiple-shift amount, and a single shift the single-shift
// amount.
func CoordinatorDayPays(allocs []model.Allocation, rates model.Rates) []DayPay {
	shiftSets := make(map[dayKey]map[string]struct{})
	mockDays := make(map[dayKey]bool)
	for _, a := range allocs {
		k := dayKey{person: a.PersonName, date: a.Date}
		if shiftSets[k] == nil {
			shiftSets[k] = make(map[string]struct{})
		}
		shiftSets[k][a.Shift] = struct{}{}
		if a.MockTest {
			mockDays[k] = true
		}
	}
	out := make([]DayPay, 0, len(shiftSets))
	for k, shifts := range shiftSets {
		p := DayPay{Person: k.person, Date: k.date, Shifts: len(shifts)}
		switch {
		case mockDays[k]:
			p.ShiftType = ShiftTypeMock
			p.Amount = rates.MockTest
		case len(shifts) > 1:
			p.ShiftType = ShiftTypeMultiple
			p.Amount = rates.MultipleShifts
		default:
			p.ShiftType = ShiftTypeSingle
			p.Amount = rates.SingleShift
		}
		out = append(out, p)
	}
	sortDayPays(out)
	return out
}

// EYDayPays derives the payment lines for EY observer allocations.
// Observers earn a flat per-day amount however many shifts they sit.
// Rows carry the rate snapshotted at allocation time; a zero snapshot
// (rows predating rate capture) falls back to the current table.
func EYDayPays(allocs []model.EYAllocation, rates model.Rates) []DayPay {
	shiftSets := make(map[dayKey]map[string]struct{})
	dayRates := make(map[dayKey]uint32)
	for _, a := range allocs {
		k := dayKey{person: a.PersonName, date: a.Date}
		if shiftSets[k] == nil {
			shiftSets[k] = make(map[string]struct{})
		}
		shiftSets[k][a.Shift] = struct{}{}
		if a.Rate > 0 {
			dayRates[k] = a.Rate
		}
	}
	out := make([]DayPay, 0, len(shiftSets))
	for k, shifts := range shiftSets {
		amount := dayRates[k]
		if amount == 0 {
			amount = rates.EYPersonnel
		}
		out = append(out, DayPay{
			Person:    k.person,
			Date:      k.date,
			Shifts:    len(shifts),
			ShiftType: ShiftTypePerDay,
			Amount:    amount,
		})
	}
	sortDayPays(out)
	return out
}

// Totals folds payment lines into per-person totals, sorted by name.
func Totals(pays []DayPay) []PersonTotal {
	byPerson := make(map[string]*PersonTotal)
	order := make([]string, 0)
	for _, p := range pays {
		t, ok := byPerson[p.Person]
		if !ok {
			t = &PersonTotal{Person: p.Person}
			byPerson[p.Person] = t
			order = append(order, p.Person)
		}
		t.TotalDays++
		t.TotalAmount += p.Amount
	}
	sort.Strings(order)
	out := make([]PersonTotal, 0, len(order))
	for _, name := range order {
		out = append(out, *byPerson[name])
	}
	return out
}

// GrandTotal sums the amounts of the given payment lines.
func GrandTotal(pays []DayPay) uint32 {
	var sum uint32
	for _, p := range pays {
		sum += p.Amount
	}
	return sum
}

func sortDayPays(pays []DayPay) {
	sort.Slice(pays, func(i, j int) bool {
		if pays[i].Person != pays[j].Person {
			return pays[i].Person < pays[j].Person
		}
		return dateBefore(pays[i].Date, pays[j].Date)
	})
}

// dateBefore orders dd-mm-yyyy dates chronologically, falling back to
// a plain string compare for values that do not parse.
func dateBefore(a, b string) bool {
	ta, errA := time.Parse("02-01-2006", a)
	tb, errB := time.Parse("02-01-2006", b)
	if errA == nil && errB == nil {
		return ta.Before(tb)
	}
	return a < b
}
