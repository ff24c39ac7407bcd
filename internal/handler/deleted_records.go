package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bijayshruti/SSC-APP5/internal/repository"
)

// DeletedRecordHandler exposes the append-only deletion log.
type DeletedRecordHandler struct {
	Deleted *repository.DeletedRecordRepo
}

func NewDeletedRecordHandler(d *repository.DeletedRecordRepo) *DeletedRecordHandler {
	return &DeletedRecordHandler{Deleted: d}
}

// List returns the deletion log, optionally filtered to one exam via
// the ?exam= query parameter.
func (h *DeletedRecordHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if exam := c.QueryParam("exam"); exam != "" {
		recs, err := h.Deleted.ListByExam(ctx, exam)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list deleted records failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"deleted_records": recs})
	}
	recs, err := h.Deleted.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list deleted records failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted_records": recs})
}

// Clear wipes the deletion log. Requires confirm=true.
func (h *DeletedRecordHandler) Clear(c echo.Context) error {
	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "confirm=true required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Deleted.Clear(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear deleted records failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cleared": n})
}
