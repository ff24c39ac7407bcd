package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bijayshruti/SSC-APP5/internal/backup"
	"github.com/bijayshruti/SSC-APP5/internal/model"
	"github.com/bijayshruti/SSC-APP5/internal/repository"
)

// BackupHandler writes, lists and restores JSON snapshots. A restore
// replaces the allocation data wholesale inside one transaction, which
// is why it demands an explicit confirmation flag.
type BackupHandler struct {
	DB       *sql.DB
	Store    *backup.Store
	Exams    *repository.ExamRepo
	Allocs   *repository.AllocationRepo
	EYAllocs *repository.EYAllocationRepo
}

func NewBackupHandler(db *sql.DB, s *backup.Store, e *repository.ExamRepo,
	a *repository.AllocationRepo, ey *repository.EYAllocationRepo) *BackupHandler {
	return &BackupHandler{DB: db, Store: s, Exams: e, Allocs: a, EYAllocs: ey}
}

type createBackupReq struct {
	Exam string `json:"exam"` // empty means full backup
}

// snapshot assembles the exam map from the live tables, optionally
// narrowed to one exam key.
func (h *BackupHandler) snapshot(ctx context.Context, examKey string) (map[string]backup.ExamData, error) {
	io, err := h.Allocs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ey, err := h.EYAllocs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	data := make(map[string]backup.ExamData)
	get := func(key string) backup.ExamData {
		ed, ok := data[key]
		if !ok {
			ed = backup.ExamData{IOAllocations: []model.Allocation{}, EYAllocations: []model.EYAllocation{}}
		}
		return ed
	}
	for _, a := range io {
		if examKey != "" && a.ExamKey != examKey {
			continue
		}
		ed := get(a.ExamKey)
		ed.IOAllocations = append(ed.IOAllocations, a)
		data[a.ExamKey] = ed
	}
	for _, a := range ey {
		if examKey != "" && a.ExamKey != examKey {
			continue
		}
		ed := get(a.ExamKey)
		ed.EYAllocations = append(ed.EYAllocations, a)
		data[a.ExamKey] = ed
	}
	if examKey != "" {
		if _, ok := data[examKey]; !ok {
			data[examKey] = backup.ExamData{IOAllocations: []model.Allocation{}, EYAllocations: []model.EYAllocation{}}
		}
	}
	return data, nil
}

// Create writes a snapshot. An "exam" field narrows it to one exam;
// otherwise everything is captured.
func (h *BackupHandler) Create(c echo.Context) error {
	var req createBackupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	examKey := trimmed(req.Exam)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if examKey != "" {
		ok, err := h.Exams.Exists(ctx, examKey)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
		}
	}

	data, err := h.snapshot(ctx, examKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assemble snapshot failed"})
	}
	name, err := h.Store.WriteSnapshot(data, examKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write snapshot failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"name": name, "exams": len(data)})
}

// List returns the snapshots on disk, newest first.
func (h *BackupHandler) List(c echo.Context) error {
	infos, err := h.Store.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list backups failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"backups": infos})
}

type restoreReq struct {
	Confirm bool `json:"confirm"`
}

// Restore replaces the allocation data with a snapshot's contents.
// All current allocations are dropped first; exams named only in the
// snapshot are re-registered.
func (h *BackupHandler) Restore(c echo.Context) error {
	name := c.Param("name")
	var req restoreReq
	if err := c.Bind(&req); err != nil || !req.Confirm {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "confirm=true required"})
	}

	data, err := h.Store.Read(name)
	if err != nil {
		if err == backup.ErrBadName {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid backup name"})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": "backup not found or unreadable"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Allocs.DeleteAllTx(ctx, tx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear allocations failed"})
	}
	if err := h.EYAllocs.DeleteAllTx(ctx, tx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear ey allocations failed"})
	}

	var restoredIO, restoredEY int
	for key, ed := range data {
		examName, year := model.SplitExamKey(key)
		if err := h.Exams.CreateTx(ctx, tx, key, examName, year); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "register exam failed"})
		}
		ioRows := make([]model.Allocation, len(ed.IOAllocations))
		copy(ioRows, ed.IOAllocations)
		for i := range ioRows {
			ioRows[i].ExamKey = key
		}
		if err := h.Allocs.RestoreBulkTx(ctx, tx, ioRows); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "restore allocations failed"})
		}
		eyRows := make([]model.EYAllocation, len(ed.EYAllocations))
		copy(eyRows, ed.EYAllocations)
		for i := range eyRows {
			eyRows[i].ExamKey = key
		}
		if err := h.EYAllocs.RestoreBulkTx(ctx, tx, eyRows); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "restore ey allocations failed"})
		}
		restoredIO += len(ioRows)
		restoredEY += len(eyRows)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{
		"restored_exams":          len(data),
		"restored_io_allocations": restoredIO,
		"restored_ey_allocations": restoredEY,
	})
}
