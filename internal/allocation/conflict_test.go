package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

func ioRow(person, date, shift, venue, role string) model.Allocation {
	return model.Allocation{
		ExamKey:    "CGL - 2025",
		Venue:      venue,
		Date:       date,
		Shift:      shift,
		PersonName: person,
		Role:       role,
	}
}

func TestDetectIODuplicate(t *testing.T) {
	existing := []model.Allocation{
		ioRow("Anita Das", "01-09-2025", "Morning", "Venue A", model.RoleCentreCoordinator),
	}

	c := DetectIO(existing, "Anita Das", "01-09-2025", "Morning", "Venue A", model.RoleCentreCoordinator)
	require.NotNil(t, c)
	assert.Equal(t, ConflictDuplicate, c.Type)
	assert.Equal(t, "Venue A", c.ExistingVenue)
	assert.Equal(t,
		"Duplicate allocation found! Anita Das is already allocated to Venue A on 01-09-2025 (Morning) as Centre Coordinator.",
		c.Message)
}

func TestDetectIODuplicateAppliesToFlyingSquad(t *testing.T) {
	existing := []model.Allocation{
		ioRow("Ravi Kumar", "01-09-2025", "Morning", "Venue A", model.RoleFlyingSquad),
	}

	c := DetectIO(existing, "Ravi Kumar", "01-09-2025", "Morning", "Venue A", model.RoleFlyingSquad)
	require.NotNil(t, c)
	assert.Equal(t, ConflictDuplicate, c.Type)
}

func TestDetectIOCoordinatorVenueClash(t *testing.T) {
	existing := []model.Allocation{
		ioRow("Anita Das", "01-09-2025", "Morning", "Venue A", model.RoleCentreCoordinator),
	}

	c := DetectIO(existing, "Anita Das", "01-09-2025", "Morning", "Venue B", model.RoleCentreCoordinator)
	require.NotNil(t, c)
	assert.Equal(t, ConflictVenueClash, c.Type)
	assert.Equal(t, "Venue A", c.ExistingVenue)
	assert.Equal(t,
		"Centre Coordinator conflict! Anita Das is already allocated to Venue A on 01-09-2025 (Morning). Cannot assign to Venue B.",
		c.Message)
}

func TestDetectIOFlyingSquadMayCoverSeveralVenues(t *testing.T) {
	existing := []model.Allocation{
		ioRow("Ravi Kumar", "01-09-2025", "Morning", "Venue A", model.RoleFlyingSquad),
	}

	// Same person, same slot, different venue: allowed for Flying Squad.
	assert.Nil(t, DetectIO(existing, "Ravi Kumar", "01-09-2025", "Morning", "Venue B", model.RoleFlyingSquad))

	// A coordinator candidate does not clash with a Flying Squad row
	// either; the venue rule binds only when both sides coordinate.
	assert.Nil(t, DetectIO(existing, "Ravi Kumar", "01-09-2025", "Morning", "Venue B", model.RoleCentreCoordinator))
}

func TestDetectIONoConflictAcrossSlots(t *testing.T) {
	existing := []model.Allocation{
		ioRow("Anita Das", "01-09-2025", "Morning", "Venue A", model.RoleCentreCoordinator),
	}

	assert.Nil(t, DetectIO(existing, "Anita Das", "01-09-2025", "Afternoon", "Venue B", model.RoleCentreCoordinator))
	assert.Nil(t, DetectIO(existing, "Anita Das", "02-09-2025", "Morning", "Venue B", model.RoleCentreCoordinator))
	assert.Nil(t, DetectIO(existing, "Someone Else", "01-09-2025", "Morning", "Venue B", model.RoleCentreCoordinator))
}

func TestDetectIOBatchAgainstGrowingSlice(t *testing.T) {
	// Mirrors how batch creation uses the detector: each accepted row
	// joins the working slice before the next candidate is checked.
	existing := []model.Allocation{}

	first := DetectIO(existing, "Anita Das", "01-09-2025", "Morning", "Venue A", model.RoleCentreCoordinator)
	require.Nil(t, first)
	existing = append(existing, ioRow("Anita Das", "01-09-2025", "Morning", "Venue A", model.RoleCentreCoordinator))

	second := DetectIO(existing, "Anita Das", "01-09-2025", "Morning", "Venue B", model.RoleCentreCoordinator)
	require.NotNil(t, second)
	assert.Equal(t, ConflictVenueClash, second.Type)
}

func eyRow(person, date, shift, venue string) model.EYAllocation {
	return model.EYAllocation{
		ExamKey:    "CGL - 2025",
		Venue:      venue,
		Date:       date,
		Shift:      shift,
		PersonName: person,
	}
}

func TestDetectEYDuplicate(t *testing.T) {
	existing := []model.EYAllocation{
		eyRow("Priya Sen", "01-09-2025", "Morning", "Venue A"),
	}

	c := DetectEY(existing, "Priya Sen", "01-09-2025", "Morning", "Venue A")
	require.NotNil(t, c)
	assert.Equal(t, ConflictDuplicate, c.Type)
	assert.Equal(t,
		"Duplicate allocation found! Priya Sen is already allocated to Venue A on 01-09-2025 (Morning) as EY Personnel.",
		c.Message)
}

func TestDetectEYVenueClashIsUnconditional(t *testing.T) {
	existing := []model.EYAllocation{
		eyRow("Priya Sen", "01-09-2025", "Morning", "Venue A"),
	}

	c := DetectEY(existing, "Priya Sen", "01-09-2025", "Morning", "Venue B")
	require.NotNil(t, c)
	assert.Equal(t, ConflictVenueClash, c.Type)
	assert.Equal(t, "Venue A", c.ExistingVenue)
	assert.Equal(t,
		"EY Personnel conflict! Priya Sen is already allocated to Venue A on 01-09-2025 (Morning). Cannot assign to Venue B.",
		c.Message)
}

func TestDetectEYNoConflictAcrossSlots(t *testing.T) {
	existing := []model.EYAllocation{
		eyRow("Priya Sen", "01-09-2025", "Morning", "Venue A"),
	}

	assert.Nil(t, DetectEY(existing, "Priya Sen", "01-09-2025", "Afternoon", "Venue B"))
	assert.Nil(t, DetectEY(existing, "Priya Sen", "02-09-2025", "Morning", "Venue A"))
	assert.Nil(t, DetectEY(existing, "Someone Else", "01-09-2025", "Morning", "Venue B"))
}
