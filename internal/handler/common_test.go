package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

func TestPadCentreCode(t *testing.T) {
	assert.Equal(t, "0042", padCentreCode("42"))
	assert.Equal(t, "0042", padCentreCode(" 42 "))
	assert.Equal(t, "1234", padCentreCode("1234"))
	assert.Equal(t, "12345", padCentreCode("12345"))
	// Non-numeric codes pass through untouched apart from trimming.
	assert.Equal(t, "KOL-7", padCentreCode(" KOL-7 "))
	assert.Equal(t, "", padCentreCode("  "))
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "01-09-2025", normalizeDate("01-09-2025"))
	assert.Equal(t, "01-09-2025", normalizeDate("2025-09-01"))
	assert.Equal(t, "01-09-2025", normalizeDate("01/09/2025"))
	assert.Equal(t, "01-09-2025", normalizeDate(" 01-09-2025 "))
	// Unparseable input is returned trimmed, never invented.
	assert.Equal(t, "first of sept", normalizeDate(" first of sept "))
}

func TestMissingAuthorizations(t *testing.T) {
	rows := []model.Allocation{
		{PersonName: "Anita Das", Role: model.RoleCentreCoordinator},
		{PersonName: "Ravi Kumar", Role: model.RoleFlyingSquad},
		{PersonName: "Sunil Roy", Role: model.RoleCentreCoordinator},
	}

	missing := missingAuthorizations(rows, map[string]string{
		model.RoleCentreCoordinator: "ORD-11",
		model.RoleFlyingSquad:       "ORD-12",
	})
	assert.Empty(t, missing)

	missing = missingAuthorizations(rows, map[string]string{
		model.RoleCentreCoordinator: "ORD-11",
	})
	assert.Equal(t, []string{model.RoleFlyingSquad}, missing)

	// Blank order numbers do not count as authorization.
	missing = missingAuthorizations(rows, map[string]string{
		model.RoleCentreCoordinator: "  ",
		model.RoleFlyingSquad:       "ORD-12",
	})
	assert.Equal(t, []string{model.RoleCentreCoordinator}, missing)

	missing = missingAuthorizations(rows, nil)
	assert.Len(t, missing, 2)
}

func TestDeletedFromIOCarriesAuditFields(t *testing.T) {
	a := model.Allocation{
		ExamKey:    "CGL - 2025",
		Venue:      "Venue A",
		Date:       "01-09-2025",
		Shift:      "Morning",
		PersonName: "Anita Das",
		Area:       "Salt Lake",
		Role:       model.RoleCentreCoordinator,
		OrderNo:    "ORD-1",
		PageNo:     "3",
	}

	rec := deletedFromIO(a, "duplicate entry", "ORD-9")
	assert.Equal(t, model.DeletedKindIO, rec.Kind)
	assert.Equal(t, "Anita Das", rec.PersonName)
	assert.Equal(t, "ORD-1", rec.OrderNo)
	assert.Equal(t, "duplicate entry", rec.DeletionReason)
	assert.Equal(t, "ORD-9", rec.DeletionOrderNo)
}

func TestDeletedFromEYCarriesRate(t *testing.T) {
	a := model.EYAllocation{
		ExamKey:    "CGL - 2025",
		Venue:      "Venue A",
		Date:       "01-09-2025",
		Shift:      "Morning",
		PersonName: "Priya Sen",
		Rate:       5000,
	}

	rec := deletedFromEY(a, "venue dropped", "ORD-7")
	assert.Equal(t, model.DeletedKindEY, rec.Kind)
	assert.Equal(t, uint32(5000), rec.Rate)
	assert.Equal(t, "venue dropped", rec.DeletionReason)
	assert.Equal(t, "ORD-7", rec.DeletionOrderNo)
}
