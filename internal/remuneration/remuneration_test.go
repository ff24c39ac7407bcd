package remuneration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

func coordRow(person, date, shift string, mock bool) model.Allocation {
	return model.Allocation{
		PersonName: person,
		Date:       date,
		Shift:      shift,
		MockTest:   mock,
		Role:       model.RoleCentreCoordinator,
	}
}

func eyRow(person, date, shift string, rate uint32) model.EYAllocation {
	return model.EYAllocation{
		PersonName: person,
		Date:       date,
		Shift:      shift,
		Rate:       rate,
	}
}

func TestCoordinatorDayPaysSingleShift(t *testing.T) {
	rates := model.DefaultRates()
	pays := CoordinatorDayPays([]model.Allocation{
		coordRow("Anita Das", "01-09-2025", "Morning", false),
	}, rates)

	require.Len(t, pays, 1)
	assert.Equal(t, 1, pays[0].Shifts)
	assert.Equal(t, ShiftTypeSingle, pays[0].ShiftType)
	assert.Equal(t, rates.SingleShift, pays[0].Amount)
}

func TestCoordinatorDayPaysMultipleShiftsPaidOnce(t *testing.T) {
	rates := model.DefaultRates()
	pays := CoordinatorDayPays([]model.Allocation{
		coordRow("Anita Das", "01-09-2025", "Morning", false),
		coordRow("Anita Das", "01-09-2025", "Afternoon", false),
	}, rates)

	// Two rows on one day collapse to one multiple-shift line.
	require.Len(t, pays, 1)
	assert.Equal(t, 2, pays[0].Shifts)
	assert.Equal(t, ShiftTypeMultiple, pays[0].ShiftType)
	assert.Equal(t, rates.MultipleShifts, pays[0].Amount)
}

func TestCoordinatorDayPaysRepeatShiftStaysSingle(t *testing.T) {
	rates := model.DefaultRates()
	pays := CoordinatorDayPays([]model.Allocation{
		coordRow("Ravi Kumar", "01-09-2025", "Morning", false),
		coordRow("Ravi Kumar", "01-09-2025", "Morning", false),
	}, rates)

	// Distinct shifts decide the type, not row count.
	require.Len(t, pays, 1)
	assert.Equal(t, 1, pays[0].Shifts)
	assert.Equal(t, ShiftTypeSingle, pays[0].ShiftType)
}

func TestCoordinatorDayPaysMockTakesPrecedence(t *testing.T) {
	rates := model.DefaultRates()
	pays := CoordinatorDayPays([]model.Allocation{
		coordRow("Anita Das", "01-09-2025", "Morning", true),
		coordRow("Anita Das", "01-09-2025", "Afternoon", false),
	}, rates)

	require.Len(t, pays, 1)
	assert.Equal(t, ShiftTypeMock, pays[0].ShiftType)
	assert.Equal(t, rates.MockTest, pays[0].Amount)
}

func TestCoordinatorDayPaysSortedByPersonThenDate(t *testing.T) {
	rates := model.DefaultRates()
	pays := CoordinatorDayPays([]model.Allocation{
		coordRow("Ravi Kumar", "02-09-2025", "Morning", false),
		coordRow("Anita Das", "10-09-2025", "Morning", false),
		coordRow("Anita Das", "02-09-2025", "Morning", false),
	}, rates)

	require.Len(t, pays, 3)
	assert.Equal(t, "Anita Das", pays[0].Person)
	assert.Equal(t, "02-09-2025", pays[0].Date)
	assert.Equal(t, "10-09-2025", pays[1].Date)
	assert.Equal(t, "Ravi Kumar", pays[2].Person)
}

func TestEYDayPaysFlatPerDay(t *testing.T) {
	rates := model.DefaultRates()
	pays := EYDayPays([]model.EYAllocation{
		eyRow("Priya Sen", "01-09-2025", "Morning", 5000),
		eyRow("Priya Sen", "01-09-2025", "Evening", 5000),
	}, rates)

	require.Len(t, pays, 1)
	assert.Equal(t, 2, pays[0].Shifts)
	assert.Equal(t, ShiftTypePerDay, pays[0].ShiftType)
	assert.Equal(t, uint32(5000), pays[0].Amount)
}

func TestEYDayPaysSnapshotBeatsTable(t *testing.T) {
	rates := model.DefaultRates()
	rates.EYPersonnel = 6000
	pays := EYDayPays([]model.EYAllocation{
		eyRow("Priya Sen", "01-09-2025", "Morning", 4500), // snapshotted at allocation time
	}, rates)

	require.Len(t, pays, 1)
	assert.Equal(t, uint32(4500), pays[0].Amount)
}

func TestEYDayPaysZeroSnapshotFallsBackToTable(t *testing.T) {
	rates := model.DefaultRates()
	pays := EYDayPays([]model.EYAllocation{
		eyRow("Priya Sen", "01-09-2025", "Morning", 0),
	}, rates)

	require.Len(t, pays, 1)
	assert.Equal(t, rates.EYPersonnel, pays[0].Amount)
}

func TestTotalsAndGrandTotal(t *testing.T) {
	pays := []DayPay{
		{Person: "Anita Das", Date: "01-09-2025", Amount: 450},
		{Person: "Anita Das", Date: "02-09-2025", Amount: 750},
		{Person: "Ravi Kumar", Date: "01-09-2025", Amount: 450},
	}

	totals := Totals(pays)
	require.Len(t, totals, 2)
	assert.Equal(t, "Anita Das", totals[0].Person)
	assert.Equal(t, 2, totals[0].TotalDays)
	assert.Equal(t, uint32(1200), totals[0].TotalAmount)
	assert.Equal(t, "Ravi Kumar", totals[1].Person)
	assert.Equal(t, uint32(450), totals[1].TotalAmount)

	assert.Equal(t, uint32(1650), GrandTotal(pays))
}

func TestDateBeforeChronological(t *testing.T) {
	// 02-09 precedes 10-09 even though "10" sorts before "02" as text.
	assert.True(t, dateBefore("02-09-2025", "10-09-2025"))
	assert.False(t, dateBefore("10-09-2025", "02-09-2025"))
	// Unparseable values fall back to string ordering.
	assert.True(t, dateBefore("abc", "abd"))
}
