package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bijayshruti/SSC-APP5/internal/allocation"
	"github.com/bijayshruti/SSC-APP5/internal/model"
	"github.com/bijayshruti/SSC-APP5/internal/queue"
	"github.com/bijayshruti/SSC-APP5/internal/repository"
	audit "github.com/bijayshruti/SSC-APP5/internal/service"
)

// EYAllocationHandler serves EY observer allocations. It mirrors
// AllocationHandler but with the fixed shift set, roster-sourced
// contact fields and the per-day rate snapshot.
type EYAllocationHandler struct {
	DB         *sql.DB
	Allocs     *repository.EYAllocationRepo
	Exams      *repository.ExamRepo
	References *repository.ReferenceRepo
	Deleted    *repository.DeletedRecordRepo
	Roster     *repository.RosterRepo
	Rates      *repository.RateRepo
}

func NewEYAllocationHandler(db *sql.DB, a *repository.EYAllocationRepo, e *repository.ExamRepo,
	r *repository.ReferenceRepo, d *repository.DeletedRecordRepo, ro *repository.RosterRepo,
	rates *repository.RateRepo) *EYAllocationHandler {
	return &EYAllocationHandler{DB: db, Allocs: a, Exams: e, References: r, Deleted: d, Roster: ro, Rates: rates}
}

type createEYAllocationsReq struct {
	Person    string           `json:"person"`
	Venue     string           `json:"venue"`
	Slots     []slotReq        `json:"slots"`
	Reference referencePayload `json:"reference"`
}

// Create records a batch of observer slots with partial success.
// Shifts must come from the fixed Morning/Afternoon/Evening set, and
// contact details are copied from the EY roster when the person is on
// it.
func (h *EYAllocationHandler) Create(c echo.Context) error {
	key := c.Param("key")
	var req createEYAllocationsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	person := trimmed(req.Person)
	venue := trimmed(req.Venue)
	if person == "" || venue == "" || len(req.Slots) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "person, venue and slots required"})
	}
	for _, s := range req.Slots {
		if !model.ValidEYShift(trimmed(s.Shift)) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "shift must be Morning, Afternoon or Evening"})
		}
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

	ref, err := resolveReference(ctx, h.References, key, model.RoleEYPersonnel, req.Reference)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no reference on file for EY Personnel; supply order_no or save one first"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve reference failed"})
	}

	rates, err := h.Rates.Load(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load rates failed"})
	}

	var contact model.EYPerson
	if p, err := h.Roster.GetEY(ctx, person); err == nil {
		contact = p
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

	existing, err := h.Allocs.ListByExamTx(ctx, tx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list allocations failed"})
	}

	accepted := make([]model.EYAllocation, 0, len(req.Slots))
	conflicts := make([]slotConflict, 0)
	for _, s := range req.Slots {
		date := normalizeDate(s.Date)
		shift := trimmed(s.Shift)
		if date == "" {
			continue
		}
		if conf := allocation.DetectEY(existing, person, date, shift, venue); conf != nil {
			conflicts = append(conflicts, slotConflict{Date: date, Shift: shift, Conflict: *conf})
			continue
		}
		a := model.EYAllocation{
			ExamKey:          key,
			Venue:            venue,
			Date:             date,
			Shift:            shift,
			PersonName:       person,
			Mobile:           contact.Mobile,
			Email:            contact.Email,
			IDNumber:         contact.IDNumber,
			Designation:      contact.Designation,
			Department:       contact.Department,
			Rate:             rates.EYPersonnel,
			OrderNo:          ref.OrderNo,
			PageNo:           ref.PageNo,
			ReferenceRemarks: ref.Remarks,
		}
		existing = append(existing, a)
		accepted = append(accepted, a)
	}

	if err := h.Allocs.CreateBulkTx(ctx, tx, accepted); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create allocations failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	if len(accepted) > 0 {
		go func() {
			_ = audit.Publish(context.Background(), queue.AllocationAuditEvent{
				Action:     queue.ActionAllocated,
				Kind:       model.DeletedKindEY,
				ExamKey:    key,
				Person:     person,
				Role:       model.RoleEYPersonnel,
				Venues:     []string{venue},
				Count:      len(accepted),
				OrderNo:    ref.OrderNo,
				OccurredAt: time.Now().UTC().Format(time.RFC3339),
			})
		}()
	}

	status := http.StatusCreated
	if len(accepted) == 0 {
		status = http.StatusConflict
	}
	return c.JSON(status, echo.Map{"created": accepted, "conflicts": conflicts})
}

// List returns the exam's EY allocations with serial numbers.
func (h *EYAllocationHandler) List(c echo.Context) error {
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
	allocs, err := h.Allocs.ListByExam(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list allocations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"allocations": allocs})
}

// DeleteLast removes the most recent EY allocation of the exam, moving
// it to the deleted-records log.
func (h *EYAllocationHandler) DeleteLast(c echo.Context) error {
	key := c.Param("key")
	var req deleteLastReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if trimmed(req.Reason) == "" || trimmed(req.OrderNo) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason and order_no required"})
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

	last, err := h.Allocs.LastByExamTx(ctx, tx, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no allocations to delete"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	rec := deletedFromEY(last, trimmed(req.Reason), trimmed(req.OrderNo))
	if err := h.Deleted.AppendTx(ctx, tx, []model.DeletedRecord{rec}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record deletion failed"})
	}
	if _, err := h.Allocs.DeleteByIDsTx(ctx, tx, []uint64{last.ID}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete allocation failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	go func() {
		_ = audit.Publish(context.Background(), queue.AllocationAuditEvent{
			Action:     queue.ActionDeleted,
			Kind:       model.DeletedKindEY,
			ExamKey:    key,
			Person:     last.PersonName,
			Role:       model.RoleEYPersonnel,
			Venues:     []string{last.Venue},
			Count:      1,
			OrderNo:    rec.DeletionOrderNo,
			Reason:     rec.DeletionReason,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, echo.Map{"deleted": rec})
}

type eyBulkDeleteReq struct {
	IDs     []uint64 `json:"ids"`
	Reason  string   `json:"reason"`
	OrderNo string   `json:"order_no"`
}

// BulkDelete removes several EY allocations at once under a single
// authorization; EY rows carry no role split, so one order number
// covers the batch.
func (h *EYAllocationHandler) BulkDelete(c echo.Context) error {
	key := c.Param("key")
	var req eyBulkDeleteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.IDs) == 0 || trimmed(req.Reason) == "" || trimmed(req.OrderNo) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids, reason and order_no required"})
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

	rows, err := h.Allocs.GetByIDsTx(ctx, tx, key, req.IDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(rows) != len(req.IDs) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "some allocations not found in this exam"})
	}

	recs := make([]model.DeletedRecord, 0, len(rows))
	ids := make([]uint64, 0, len(rows))
	for _, a := range rows {
		recs = append(recs, deletedFromEY(a, trimmed(req.Reason), trimmed(req.OrderNo)))
		ids = append(ids, a.ID)
	}
	if err := h.Deleted.AppendTx(ctx, tx, recs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record deletion failed"})
	}
	if _, err := h.Allocs.DeleteByIDsTx(ctx, tx, ids); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete allocations failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	go func() {
		venues := make([]string, 0, len(rows))
		for _, a := range rows {
			venues = append(venues, a.Venue)
		}
		_ = audit.Publish(context.Background(), queue.AllocationAuditEvent{
			Action:     queue.ActionDeleted,
			Kind:       model.DeletedKindEY,
			ExamKey:    key,
			Venues:     venues,
			Count:      len(rows),
			OrderNo:    trimmed(req.OrderNo),
			Reason:     trimmed(req.Reason),
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, echo.Map{"deleted": len(recs)})
}

func deletedFromEY(a model.EYAllocation, reason, orderNo string) model.DeletedRecord {
	return model.DeletedRecord{
		Kind:             model.DeletedKindEY,
		ExamKey:          a.ExamKey,
		Venue:            a.Venue,
		Date:             a.Date,
		Shift:            a.Shift,
		PersonName:       a.PersonName,
		MockTest:         a.MockTest,
		Rate:             a.Rate,
		OrderNo:          a.OrderNo,
		PageNo:           a.PageNo,
		ReferenceRemarks: a.ReferenceRemarks,
		DeletionReason:   reason,
		DeletionOrderNo:  orderNo,
	}
}
