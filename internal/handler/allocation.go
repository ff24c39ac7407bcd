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

// AllocationHandler serves creation, listing and removal of
// coordinator-kind allocations. Every mutation runs inside one
// transaction: conflict checks read the exam's rows under lock, and a
// removal writes its deleted-records entry in the same transaction as
// the delete.
type AllocationHandler struct {
	DB         *sql.DB
	Allocs     *repository.AllocationRepo
	Exams      *repository.ExamRepo
	References *repository.ReferenceRepo
	Deleted    *repository.DeletedRecordRepo
	Roster     *repository.RosterRepo
}

func NewAllocationHandler(db *sql.DB, a *repository.AllocationRepo, e *repository.ExamRepo,
	r *repository.ReferenceRepo, d *repository.DeletedRecordRepo, ro *repository.RosterRepo) *AllocationHandler {
	return &AllocationHandler{DB: db, Allocs: a, Exams: e, References: r, Deleted: d, Roster: ro}
}

// referencePayload either points at the live reference (use_existing)
// or carries a fresh authorization that replaces it.
type referencePayload struct {
	UseExisting bool   `json:"use_existing"`
	OrderNo     string `json:"order_no"`
	PageNo      string `json:"page_no"`
	Remarks     string `json:"remarks"`
}

type slotReq struct {
	Date  string `json:"date"`
	Shift string `json:"shift"`
}

type createAllocationsReq struct {
	Person    string           `json:"person"`
	Area      string           `json:"area"`
	Role      string           `json:"role"`
	Venue     string           `json:"venue"`
	MockTest  bool             `json:"mock_test"`
	Slots     []slotReq        `json:"slots"`
	Reference referencePayload `json:"reference"`
}

type slotConflict struct {
	Date     string              `json:"date"`
	Shift    string              `json:"shift"`
	Conflict allocation.Conflict `json:"conflict"`
}

// resolveReference applies the authorization gate shared by both
// allocation kinds. A fresh order number in the payload replaces the
// live reference; otherwise use_existing picks it up. No reference at
// all blocks the allocation.
func resolveReference(ctx context.Context, refs *repository.ReferenceRepo, examKey, role string, p referencePayload) (model.Reference, error) {
	if trimmed(p.OrderNo) != "" {
		ref := model.Reference{
			ExamKey: examKey,
			Role:    role,
			OrderNo: trimmed(p.OrderNo),
			PageNo:  trimmed(p.PageNo),
			Remarks: trimmed(p.Remarks),
		}
		if err := refs.Upsert(ctx, ref); err != nil {
			return model.Reference{}, err
		}
		return ref, nil
	}
	if !p.UseExisting {
		return model.Reference{}, sql.ErrNoRows
	}
	return refs.Get(ctx, examKey, role)
}

// Create records a batch of slots for one person with partial success:
// clean slots are inserted, clashing slots come back in the conflicts
// list, and the response reports both sides.
func (h *AllocationHandler) Create(c echo.Context) error {
	key := c.Param("key")
	var req createAllocationsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	person := trimmed(req.Person)
	venue := trimmed(req.Venue)
	if person == "" || venue == "" || len(req.Slots) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "person, venue and slots required"})
	}
	if !model.ValidIORole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be Centre Coordinator or Flying Squad"})
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

	ref, err := resolveReference(ctx, h.References, key, req.Role, req.Reference)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no reference on file for this role; supply order_no or save one first"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve reference failed"})
	}

	area := trimmed(req.Area)
	if p, err := h.Roster.GetCoordinator(ctx, person); err == nil {
		area = p.Area
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

	accepted := make([]model.Allocation, 0, len(req.Slots))
	conflicts := make([]slotConflict, 0)
	for _, s := range req.Slots {
		date := normalizeDate(s.Date)
		shift := trimmed(s.Shift)
		if date == "" || shift == "" {
			continue
		}
		if conf := allocation.DetectIO(existing, person, date, shift, venue, req.Role); conf != nil {
			conflicts = append(conflicts, slotConflict{Date: date, Shift: shift, Conflict: *conf})
			continue
		}
		a := model.Allocation{
			ExamKey:          key,
			Venue:            venue,
			Date:             date,
			Shift:            shift,
			PersonName:       person,
			Area:             area,
			Role:             req.Role,
			MockTest:         req.MockTest,
			OrderNo:          ref.OrderNo,
			PageNo:           ref.PageNo,
			ReferenceRemarks: ref.Remarks,
		}
		// Accepted rows join the working set so the next slot in the
		// batch is checked against them too.
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
				Kind:       model.DeletedKindIO,
				ExamKey:    key,
				Person:     person,
				Role:       req.Role,
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

// List returns the exam's coordinator allocations with serial numbers.
func (h *AllocationHandler) List(c echo.Context) error {
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

type deleteLastReq struct {
	Reason  string `json:"reason"`
	OrderNo string `json:"order_no"`
}

// DeleteLast removes the most recent allocation of the exam, moving it
// to the deleted-records log. Both a reason and the authorizing order
// number are mandatory.
func (h *AllocationHandler) DeleteLast(c echo.Context) error {
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
	rec := deletedFromIO(last, trimmed(req.Reason), trimmed(req.OrderNo))
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
			Kind:       model.DeletedKindIO,
			ExamKey:    key,
			Person:     last.PersonName,
			Role:       last.Role,
			Venues:     []string{last.Venue},
			Count:      1,
			OrderNo:    rec.DeletionOrderNo,
			Reason:     rec.DeletionReason,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, echo.Map{"deleted": rec})
}

type bulkDeleteReq struct {
	IDs            []uint64          `json:"ids"`
	Reason         string            `json:"reason"`
	Authorizations map[string]string `json:"authorizations"` // role -> order_no
}

// missingAuthorizations returns the roles among the targeted rows that
// lack an order number in the request, sorted set semantics aside.
func missingAuthorizations(rows []model.Allocation, auths map[string]string) []string {
	seen := make(map[string]bool)
	missing := make([]string, 0)
	for _, a := range rows {
		if seen[a.Role] {
			continue
		}
		seen[a.Role] = true
		if trimmed(auths[a.Role]) == "" {
			missing = append(missing, a.Role)
		}
	}
	return missing
}

// BulkDelete removes several allocations at once. Every role present
// among the targeted rows needs its own authorizing order number, and
// one shared reason covers the batch.
func (h *AllocationHandler) BulkDelete(c echo.Context) error {
	key := c.Param("key")
	var req bulkDeleteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.IDs) == 0 || trimmed(req.Reason) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids and reason required"})
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
	if missing := missingAuthorizations(rows, req.Authorizations); len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":         "authorization order_no required for each role",
			"missing_roles": missing,
		})
	}

	recs := make([]model.DeletedRecord, 0, len(rows))
	ids := make([]uint64, 0, len(rows))
	for _, a := range rows {
		rec := deletedFromIO(a, trimmed(req.Reason), trimmed(req.Authorizations[a.Role]))
		recs = append(recs, rec)
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
			Kind:       model.DeletedKindIO,
			ExamKey:    key,
			Venues:     venues,
			Count:      len(rows),
			Reason:     trimmed(req.Reason),
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, echo.Map{"deleted": len(recs)})
}

func deletedFromIO(a model.Allocation, reason, orderNo string) model.DeletedRecord {
	return model.DeletedRecord{
		Kind:             model.DeletedKindIO,
		ExamKey:          a.ExamKey,
		Venue:            a.Venue,
		Date:             a.Date,
		Shift:            a.Shift,
		PersonName:       a.PersonName,
		Area:             a.Area,
		Role:             a.Role,
		MockTest:         a.MockTest,
		OrderNo:          a.OrderNo,
		PageNo:           a.PageNo,
		ReferenceRemarks: a.ReferenceRemarks,
		DeletionReason:   reason,
		DeletionOrderNo:  orderNo,
	}
}
