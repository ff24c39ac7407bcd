package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

func TestWriteSnapshotNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	data := map[string]ExamData{
		"CGL - 2025": {
			IOAllocations: []model.Allocation{},
			EYAllocations: []model.EYAllocation{},
		},
	}

	full, err := store.WriteSnapshot(data, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, "full_backup_"))
	assert.True(t, strings.HasSuffix(full, ".json"))

	single, err := store.WriteSnapshot(data, "CGL - 2025")
	require.NoError(t, err)
	// Spaces and hyphens in the key flatten to underscores.
	assert.True(t, strings.HasPrefix(single, "backup_CGL___2025_"))
}

func TestSnapshotRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	data := map[string]ExamData{
		"CGL - 2025": {
			IOAllocations: []model.Allocation{
				{ExamKey: "CGL - 2025", Venue: "Venue A", Date: "01-09-2025",
					Shift: "Morning", PersonName: "Anita Das", Role: model.RoleCentreCoordinator},
			},
			EYAllocations: []model.EYAllocation{
				{ExamKey: "CGL - 2025", Venue: "Venue A", Date: "01-09-2025",
					Shift: "Morning", PersonName: "Priya Sen", Rate: 5000},
			},
		},
	}

	name, err := store.WriteSnapshot(data, "CGL - 2025")
	require.NoError(t, err)

	got, err := store.Read(name)
	require.NoError(t, err)
	require.Contains(t, got, "CGL - 2025")
	require.Len(t, got["CGL - 2025"].IOAllocations, 1)
	assert.Equal(t, "Anita Das", got["CGL - 2025"].IOAllocations[0].PersonName)
	require.Len(t, got["CGL - 2025"].EYAllocations, 1)
	assert.Equal(t, uint32(5000), got["CGL - 2025"].EYAllocations[0].Rate)
}

func TestReadLegacyFlatLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	// Older tooling wrote the exam value as a bare allocation array.
	legacy := `{"CGL - 2025": [{"io_name": "Anita Das", "venue": "Venue A", "date": "01-09-2025", "shift": "Morning", "role": "Centre Coordinator"}]}`
	name := "backup_CGL___2025_20240101_000000.json"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(legacy), 0o644))

	got, err := store.Read(name)
	require.NoError(t, err)
	require.Contains(t, got, "CGL - 2025")
	require.Len(t, got["CGL - 2025"].IOAllocations, 1)
	assert.Equal(t, "Anita Das", got["CGL - 2025"].IOAllocations[0].PersonName)
	assert.Empty(t, got["CGL - 2025"].EYAllocations)
}

func TestReadRejectsBadNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{
		"",
		"../etc/passwd",
		"notes.txt",
		"snapshot_x.json",
		"backup_x/../../x.json",
	} {
		_, err := store.Read(name)
		assert.ErrorIs(t, err, ErrBadName, "name %q", name)
	}
}

func TestListSkipsNonSnapshots(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	_, err = store.WriteSnapshot(map[string]ExamData{}, "")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	infos, err := store.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.True(t, strings.HasSuffix(infos[0].Name, ".json"))
	assert.Greater(t, infos[0].SizeBytes, int64(0))
}
