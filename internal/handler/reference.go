package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bijayshruti/SSC-APP5/internal/model"
	"github.com/bijayshruti/SSC-APP5/internal/repository"
)

// ReferenceHandler manages the administrative authorizations gating
// allocation. References are keyed by (exam, role); the role path
// segment must be one of the three fixed role labels.
type ReferenceHandler struct {
	Exams      *repository.ExamRepo
	References *repository.ReferenceRepo
}

func NewReferenceHandler(e *repository.ExamRepo, r *repository.ReferenceRepo) *ReferenceHandler {
	return &ReferenceHandler{Exams: e, References: r}
}

func validReferenceRole(role string) bool {
	return role == model.RoleCentreCoordinator || role == model.RoleFlyingSquad || role == model.RoleEYPersonnel
}

type saveReferenceReq struct {
	OrderNo string `json:"order_no"`
	PageNo  string `json:"page_no"`
	Remarks string `json:"remarks"`
}

// Save records or replaces the reference for (exam, role). Order and
// page numbers are mandatory; remarks are free-form.
func (h *ReferenceHandler) Save(c echo.Context) error {
	key := c.Param("key")
	role := c.Param("role")
	if !validReferenceRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}
	var req saveReferenceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if trimmed(req.OrderNo) == "" || trimmed(req.PageNo) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order_no and page_no required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Exams.Exists(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
	}

	ref := model.Reference{
		ExamKey: key,
		Role:    role,
		OrderNo: trimmed(req.OrderNo),
		PageNo:  trimmed(req.PageNo),
		Remarks: trimmed(req.Remarks),
	}
	if err := h.References.Upsert(ctx, ref); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save reference failed"})
	}
	saved, err := h.References.Get(ctx, key, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reference failed"})
	}
	return c.JSON(http.StatusOK, saved)
}

// Get returns the live reference for (exam, role).
func (h *ReferenceHandler) Get(c echo.Context) error {
	key := c.Param("key")
	role := c.Param("role")
	if !validReferenceRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ref, err := h.References.Get(ctx, key, role)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reference not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, ref)
}

// ListByExam returns all references recorded for one exam.
func (h *ReferenceHandler) ListByExam(c echo.Context) error {
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
	refs, err := h.References.ListByExam(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list references failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"references": refs})
}

// ListAll returns the reference overview across all exams.
func (h *ReferenceHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	refs, err := h.References.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list references failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"references": refs})
}

// Delete removes the live reference for (exam, role). Allocations
// already recorded keep their snapshotted reference fields.
func (h *ReferenceHandler) Delete(c echo.Context) error {
	key := c.Param("key")
	role := c.Param("role")
	if !validReferenceRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.References.Delete(ctx, key, role); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reference not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete reference failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
