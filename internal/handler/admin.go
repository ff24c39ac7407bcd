package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bijayshruti/SSC-APP5/internal/backup"
	"github.com/bijayshruti/SSC-APP5/internal/repository"
)

// AdminHandler holds the full data reset. A safety snapshot is written
// before anything is dropped, so even a confirmed reset can be undone
// by restoring the snapshot it produced.
type AdminHandler struct {
	DB         *sql.DB
	Backups    *BackupHandler
	Store      *backup.Store
	Exams      *repository.ExamRepo
	Allocs     *repository.AllocationRepo
	EYAllocs   *repository.EYAllocationRepo
	References *repository.ReferenceRepo
	Deleted    *repository.DeletedRecordRepo
	Rates      *repository.RateRepo
}

func NewAdminHandler(db *sql.DB, b *BackupHandler, s *backup.Store, e *repository.ExamRepo,
	a *repository.AllocationRepo, ey *repository.EYAllocationRepo, r *repository.ReferenceRepo,
	d *repository.DeletedRecordRepo, rates *repository.RateRepo) *AdminHandler {
	return &AdminHandler{DB: db, Backups: b, Store: s, Exams: e, Allocs: a, EYAllocs: ey,
		References: r, Deleted: d, Rates: rates}
}

// ResetData wipes exams, allocations, references, the deletion log and
// the saved rate table. Requires confirm=true. Rosters and operator
// accounts survive.
func (h *AdminHandler) ResetData(c echo.Context) error {
	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "confirm=true required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	data, err := h.Backups.snapshot(ctx, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assemble snapshot failed"})
	}
	snapshotName, err := h.Store.WriteSnapshot(data, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write safety snapshot failed"})
	}

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
	if err := h.References.DeleteAllTx(ctx, tx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear references failed"})
	}
	if err := h.Deleted.ClearTx(ctx, tx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear deleted records failed"})
	}
	if err := h.Rates.ResetTx(ctx, tx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset rates failed"})
	}
	if err := h.Exams.DeleteAll(ctx, tx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear exams failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"reset": true, "safety_backup": snapshotName})
}
