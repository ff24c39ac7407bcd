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

// RosterHandler manages the three master lists. Each upload replaces
// its master wholesale inside a transaction so a half-parsed list
// never lands.
type RosterHandler struct {
	DB     *sql.DB
	Roster *repository.RosterRepo
}

func NewRosterHandler(db *sql.DB, r *repository.RosterRepo) *RosterHandler {
	return &RosterHandler{DB: db, Roster: r}
}

type coordinatorsReq struct {
	Coordinators []model.Person `json:"coordinators"`
}

// ReplaceCoordinators swaps the coordinator roster. Entries without a
// name are dropped; centre codes are zero-padded to four digits.
func (h *RosterHandler) ReplaceCoordinators(c echo.Context) error {
	var req coordinatorsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	people := make([]model.Person, 0, len(req.Coordinators))
	for _, p := range req.Coordinators {
		p.Name = trimmed(p.Name)
		if p.Name == "" {
			continue
		}
		p.CentreCode = padCentreCode(p.CentreCode)
		people = append(people, p)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
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

	if err := h.Roster.ReplaceCoordinatorsTx(ctx, tx, people); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "replace roster failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"count": len(people)})
}

// ListCoordinators returns the coordinator roster.
func (h *RosterHandler) ListCoordinators(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	people, err := h.Roster.ListCoordinators(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list roster failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"coordinators": people})
}

type venueSlotsReq struct {
	Slots []model.VenueSlot `json:"slots"`
}

// ReplaceVenueSlots swaps the venue slot master. Dates are normalized
// to dd-mm-yyyy and centre codes zero-padded.
func (h *RosterHandler) ReplaceVenueSlots(c echo.Context) error {
	var req venueSlotsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	slots := make([]model.VenueSlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		s.Venue = trimmed(s.Venue)
		if s.Venue == "" {
			continue
		}
		s.Date = normalizeDate(s.Date)
		s.Shift = trimmed(s.Shift)
		s.CentreCode = padCentreCode(s.CentreCode)
		slots = append(slots, s)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
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

	if err := h.Roster.ReplaceVenueSlotsTx(ctx, tx, slots); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "replace venue slots failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"count": len(slots)})
}

// ListVenueSlots returns the venue slot master, optionally filtered by
// ?venue=.
func (h *RosterHandler) ListVenueSlots(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if venue := c.QueryParam("venue"); venue != "" {
		slots, err := h.Roster.ListSlotsByVenue(ctx, venue)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list venue slots failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"slots": slots})
	}
	slots, err := h.Roster.ListVenueSlots(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list venue slots failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": slots})
}

// ListVenues returns the distinct venue names.
func (h *RosterHandler) ListVenues(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	venues, err := h.Roster.ListVenues(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list venues failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": venues})
}

type eyRosterReq struct {
	Personnel []model.EYPerson `json:"personnel"`
}

// ReplaceEY swaps the EY personnel roster.
func (h *RosterHandler) ReplaceEY(c echo.Context) error {
	var req eyRosterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	people := make([]model.EYPerson, 0, len(req.Personnel))
	for _, p := range req.Personnel {
		p.Name = trimmed(p.Name)
		if p.Name == "" {
			continue
		}
		people = append(people, p)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
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

	if err := h.Roster.ReplaceEYTx(ctx, tx, people); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "replace roster failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"count": len(people)})
}

// ListEY returns the EY personnel roster.
func (h *RosterHandler) ListEY(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	people, err := h.Roster.ListEY(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list roster failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"personnel": people})
}
