// Package backup writes and reads JSON snapshots of the allocation
// data. Snapshots are plain files in a configured directory so they
// can be copied off the host or inspected by hand.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

// ExamData is the snapshot payload for one exam: the two allocation
// lists side by side.
type ExamData struct {
	IOAllocations []model.Allocation   `json:"io_allocations"`
	EYAllocations []model.EYAllocation `json:"ey_allocations"`
}

// Info describes one snapshot file on disk.
type Info struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrBadName is returned for snapshot names that do not look like
// files this package produced. It guards the read path against
// traversal outside the snapshot directory.
var ErrBadName = errors.New("invalid backup name")

// Store reads and writes snapshots under a single directory.
type Store struct {
	Dir string
}

// NewStore returns a Store for the given directory, creating it if
// needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

// WriteSnapshot persists the given exam map and returns the file name.
// An empty examKey produces a full backup; otherwise the key is
// embedded in the name with spaces and hyphens flattened to
// underscores.
func (s *Store) WriteSnapshot(data map[string]ExamData, examKey string) (string, error) {
	ts := time.Now().UTC().Format("20060102_150405")
	var name string
	if examKey == "" {
		name = fmt.Sprintf("full_backup_%s.json", ts)
	} else {
		flat := strings.NewReplacer(" ", "_", "-", "_").Replace(examKey)
		name = fmt.Sprintf("backup_%s_%s.json", flat, ts)
	}
	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), buf, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// List returns the snapshots on disk, newest first.
func (s *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, err
		}
		out = append(out, Info{Name: e.Name(), SizeBytes: fi.Size(), CreatedAt: fi.ModTime().UTC()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Read loads a snapshot by name. Exam values written by older tooling
// as a bare allocation array are accepted and treated as a coordinator
// list with no EY entries.
func (s *Store) Read(name string) (map[string]ExamData, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	buf, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]ExamData, len(raw))
	for key, val := range raw {
		var ed ExamData
		if err := json.Unmarshal(val, &ed); err == nil {
			if ed.IOAllocations == nil {
				ed.IOAllocations = []model.Allocation{}
			}
			if ed.EYAllocations == nil {
				ed.EYAllocations = []model.EYAllocation{}
			}
			out[key] = ed
			continue
		}
		// Legacy layout: the exam value is a flat coordinator list.
		var flat []model.Allocation
		if err := json.Unmarshal(val, &flat); err != nil {
			return nil, fmt.Errorf("backup %s: exam %q: %w", name, key, err)
		}
		out[key] = ExamData{IOAllocations: flat, EYAllocations: []model.EYAllocation{}}
	}
	return out, nil
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, "/\\") {
		return ErrBadName
	}
	if !strings.HasSuffix(name, ".json") {
		return ErrBadName
	}
	if !strings.HasPrefix(name, "backup_") && !strings.HasPrefix(name, "full_backup_") {
		return ErrBadName
	}
	return nil
}
