package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bijayshruti/SSC-APP5/internal/model"
	"github.com/bijayshruti/SSC-APP5/internal/remuneration"
	"github.com/bijayshruti/SSC-APP5/internal/repository"
)

// ReportHandler serves read-only rollups over one exam's allocations.
// These routes sit behind the response cache; any mutation simply
// waits out the short TTL.
type ReportHandler struct {
	Exams    *repository.ExamRepo
	Allocs   *repository.AllocationRepo
	EYAllocs *repository.EYAllocationRepo
	Deleted  *repository.DeletedRecordRepo
	Rates    *repository.RateRepo
}

func NewReportHandler(e *repository.ExamRepo, a *repository.AllocationRepo,
	ey *repository.EYAllocationRepo, d *repository.DeletedRecordRepo, r *repository.RateRepo) *ReportHandler {
	return &ReportHandler{Exams: e, Allocs: a, EYAllocs: ey, Deleted: d, Rates: r}
}

func (h *ReportHandler) examLists(ctx context.Context, c echo.Context, key string) ([]model.Allocation, []model.EYAllocation, bool) {
	ok, err := h.Exams.Exists(ctx, key)
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		return nil, nil, false
	}
	if !ok {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
		return nil, nil, false
	}
	io, err := h.Allocs.ListByExam(ctx, key)
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "list allocations failed"})
		return nil, nil, false
	}
	ey, err := h.EYAllocs.ListByExam(ctx, key)
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "list ey allocations failed"})
		return nil, nil, false
	}
	return io, ey, true
}

// Allocations returns the full allocation report for one exam: both
// lists with serial numbers, plus the exam's deleted records so the
// report shows the complete audit picture.
func (h *ReportHandler) Allocations(c echo.Context) error {
	key := c.Param("key")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	io, ey, ok := h.examLists(ctx, c, key)
	if !ok {
		return nil
	}
	deleted, err := h.Deleted.ListByExam(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list deleted records failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"exam":            key,
		"io_allocations":  io,
		"ey_allocations":  ey,
		"deleted_records": deleted,
	})
}

type personSummary struct {
	Person       string `json:"person"`
	Role         string `json:"role,omitempty"`
	UniqueVenues int    `json:"unique_venues"`
	UniqueDates  int    `json:"unique_dates"`
	TotalShifts  int    `json:"total_shifts"`
}

type dateSummary struct {
	Date        string `json:"date"`
	IOShifts    int    `json:"io_shifts"`
	EYShifts    int    `json:"ey_shifts"`
	TotalShifts int    `json:"total_shifts"`
}

// Summary returns per-person workload counts and a date-wise rollup.
func (h *ReportHandler) Summary(c echo.Context) error {
	key := c.Param("key")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	io, ey, ok := h.examLists(ctx, c, key)
	if !ok {
		return nil
	}

	type counter struct {
		role   string
		venues map[string]struct{}
		dates  map[string]struct{}
		shifts int
	}
	people := make(map[string]*counter)
	addTo := func(name, role, venue, date string) {
		ctr, ok := people[name]
		if !ok {
			ctr = &counter{role: role, venues: map[string]struct{}{}, dates: map[string]struct{}{}}
			people[name] = ctr
		}
		ctr.venues[venue] = struct{}{}
		ctr.dates[date] = struct{}{}
		ctr.shifts++
	}
	byDate := make(map[string]*dateSummary)
	for _, a := range io {
		addTo(a.PersonName, a.Role, a.Venue, a.Date)
		d, ok := byDate[a.Date]
		if !ok {
			d = &dateSummary{Date: a.Date}
			byDate[a.Date] = d
		}
		d.IOShifts++
	}
	for _, a := range ey {
		addTo(a.PersonName, model.RoleEYPersonnel, a.Venue, a.Date)
		d, ok := byDate[a.Date]
		if !ok {
			d = &dateSummary{Date: a.Date}
			byDate[a.Date] = d
		}
		d.EYShifts++
	}

	persons := make([]personSummary, 0, len(people))
	for name, ctr := range people {
		persons = append(persons, personSummary{
			Person:       name,
			Role:         ctr.role,
			UniqueVenues: len(ctr.venues),
			UniqueDates:  len(ctr.dates),
			TotalShifts:  ctr.shifts,
		})
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].Person < persons[j].Person })

	dates := make([]dateSummary, 0, len(byDate))
	for _, d := range byDate {
		d.TotalShifts = d.IOShifts + d.EYShifts
		dates = append(dates, *d)
	}
	sort.Slice(dates, func(i, j int) bool { return chronoBefore(dates[i].Date, dates[j].Date) })

	return c.JSON(http.StatusOK, echo.Map{
		"exam":      key,
		"persons":   persons,
		"date_wise": dates,
	})
}

// chronoBefore orders dd-mm-yyyy strings by calendar date, falling
// back to string order for unparseable values.
func chronoBefore(a, b string) bool {
	ta, errA := time.Parse("02-01-2006", a)
	tb, errB := time.Parse("02-01-2006", b)
	if errA == nil && errB == nil {
		return ta.Before(tb)
	}
	return a < b
}

// Remuneration returns the full payment report: per-day lines and
// per-person totals for both kinds, with grand totals.
func (h *ReportHandler) Remuneration(c echo.Context) error {
	key := c.Param("key")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	io, ey, ok := h.examLists(ctx, c, key)
	if !ok {
		return nil
	}
	rates, err := h.Rates.Load(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load rates failed"})
	}

	ioPays := remuneration.CoordinatorDayPays(io, rates)
	eyPays := remuneration.EYDayPays(ey, rates)

	return c.JSON(http.StatusOK, echo.Map{
		"exam":  key,
		"rates": rates,
		"coordinators": echo.Map{
			"day_pays":    ioPays,
			"totals":      remuneration.Totals(ioPays),
			"grand_total": remuneration.GrandTotal(ioPays),
		},
		"ey_personnel": echo.Map{
			"day_pays":    eyPays,
			"totals":      remuneration.Totals(eyPays),
			"grand_total": remuneration.GrandTotal(eyPays),
		},
	})
}
