package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bijayshruti/SSC-APP5/internal/model"
	"github.com/bijayshruti/SSC-APP5/internal/repository"
)

// RateHandler reads and updates the remuneration rate table. Rates
// apply at computation time; EY rows additionally snapshot the per-day
// rate when allocated.
type RateHandler struct {
	Rates *repository.RateRepo
}

func NewRateHandler(r *repository.RateRepo) *RateHandler { return &RateHandler{Rates: r} }

// Get returns the rate table in force.
func (h *RateHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rates, err := h.Rates.Load(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load rates failed"})
	}
	return c.JSON(http.StatusOK, rates)
}

// Update replaces the rate table. All four amounts must be positive.
func (h *RateHandler) Update(c echo.Context) error {
	var rates model.Rates
	if err := c.Bind(&rates); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if rates.MultipleShifts == 0 || rates.SingleShift == 0 || rates.MockTest == 0 || rates.EYPersonnel == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "all rates must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rates.Save(ctx, rates); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save rates failed"})
	}
	return c.JSON(http.StatusOK, rates)
}
