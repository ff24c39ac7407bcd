package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bijayshruti/SSC-APP5/internal/backup"
	"github.com/bijayshruti/SSC-APP5/internal/model"
	"github.com/bijayshruti/SSC-APP5/internal/repository"
)

// ExamHandler serves exam registration, listing and deletion. Deleting
// an exam is the one removal that bypasses the deleted-records log, so
// a snapshot of the exam's data is written first and the route demands
// an explicit confirmation flag.
type ExamHandler struct {
	Exams      *repository.ExamRepo
	Allocs     *repository.AllocationRepo
	EYAllocs   *repository.EYAllocationRepo
	References *repository.ReferenceRepo
	Store      *backup.Store
}

func NewExamHandler(e *repository.ExamRepo, a *repository.AllocationRepo, ey *repository.EYAllocationRepo,
	r *repository.ReferenceRepo, s *backup.Store) *ExamHandler {
	return &ExamHandler{Exams: e, Allocs: a, EYAllocs: ey, References: r, Store: s}
}

type createExamReq struct {
	Name string `json:"name"`
	Year string `json:"year"`
}

// Create registers an exam under the key "<name> - <year>".
// Re-registering an existing key returns the stored exam unchanged.
func (h *ExamHandler) Create(c echo.Context) error {
	var req createExamReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name, year := trimmed(req.Name), trimmed(req.Year)
	if name == "" || year == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and year required"})
	}
	key := model.ExamKey(name, year)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Exams.Create(ctx, key, name, year)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create exam failed"})
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"key": key, "name": name, "year": year})
}

// List returns all registered exams with their allocation counts.
func (h *ExamHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exams, err := h.Exams.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list exams failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"exams": exams})
}

// Get returns one exam with both allocation lists.
func (h *ExamHandler) Get(c echo.Context) error {
	key := c.Param("key")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Exams.Exists(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
	}
	io, err := h.Allocs.ListByExam(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list allocations failed"})
	}
	ey, err := h.EYAllocs.ListByExam(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list ey allocations failed"})
	}
	name, year := model.SplitExamKey(key)
	return c.JSON(http.StatusOK, echo.Map{
		"key":            key,
		"name":           name,
		"year":           year,
		"io_allocations": io,
		"ey_allocations": ey,
	})
}

// Delete removes an exam and everything recorded under it. Requires
// confirm=true in the query string; nothing moves to the deletion log,
// so a snapshot of the exam's data is written to disk first.
func (h *ExamHandler) Delete(c echo.Context) error {
	key := c.Param("key")
	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "confirm=true required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	ok, err := h.Exams.Exists(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
	}

	io, err := h.Allocs.ListByExam(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list allocations failed"})
	}
	ey, err := h.EYAllocs.ListByExam(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list ey allocations failed"})
	}
	snapshot, err := h.Store.WriteSnapshot(map[string]backup.ExamData{
		key: {IOAllocations: io, EYAllocations: ey},
	}, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write backup failed"})
	}

	tx, err := h.Exams.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Allocs.DeleteByExamTx(ctx, tx, key); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete allocations failed"})
	}
	if err := h.EYAllocs.DeleteByExamTx(ctx, tx, key); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete ey allocations failed"})
	}
	if err := h.References.DeleteByExamTx(ctx, tx, key); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete references failed"})
	}
	if err := h.Exams.DeleteTx(ctx, tx, key); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete exam failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"message": "exam deleted",
		"exam":    key,
		"backup":  snapshot,
	})
}
