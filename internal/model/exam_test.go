package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExamKey(t *testing.T) {
	assert.Equal(t, "CGL - 2025", ExamKey("CGL", "2025"))
	assert.Equal(t, "CGL - 2025", ExamKey("  CGL ", " 2025 "))
}

func TestSplitExamKey(t *testing.T) {
	name, year := SplitExamKey("CGL - 2025")
	assert.Equal(t, "CGL", name)
	assert.Equal(t, "2025", year)

	// Hyphens inside the name survive; only the last separator splits.
	name, year = SplitExamKey("CHSL - Tier I - 2024")
	assert.Equal(t, "CHSL - Tier I", name)
	assert.Equal(t, "2024", year)

	// Keys from older datasets may lack the separator entirely.
	name, year = SplitExamKey("LegacyExam")
	assert.Equal(t, "LegacyExam", name)
	assert.Equal(t, "", year)
}

func TestValidIORole(t *testing.T) {
	assert.True(t, ValidIORole(RoleCentreCoordinator))
	assert.True(t, ValidIORole(RoleFlyingSquad))
	assert.False(t, ValidIORole(RoleEYPersonnel))
	assert.False(t, ValidIORole("Invigilator"))
	assert.False(t, ValidIORole(""))
}

func TestValidEYShift(t *testing.T) {
	for _, s := range EYShifts {
		assert.True(t, ValidEYShift(s))
	}
	assert.False(t, ValidEYShift("Night"))
	assert.False(t, ValidEYShift("morning"))
	assert.False(t, ValidEYShift(""))
}
