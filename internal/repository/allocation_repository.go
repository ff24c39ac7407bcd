package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

// AllocationRepo provides CRUD operations for coordinator and flying
// squad allocations (the io_allocations table). Rows are never
// updated in place; an allocation is created once with its reference
// snapshot and later either kept or moved to the deleted-records log.
type AllocationRepo struct {
	db *sql.DB
}

// NewAllocationRepo returns a new AllocationRepo bound to the given database.
func NewAllocationRepo(db *sql.DB) *AllocationRepo { return &AllocationRepo{db: db} }

const ioColumns = `id, exam_key, venue, slot_date, shift, person_name, area, role,
	mock_test, order_no, page_no, reference_remarks, created_at`

func scanAllocation(row interface{ Scan(...interface{}) error }) (model.Allocation, error) {
	var a model.Allocation
	err := row.Scan(&a.ID, &a.ExamKey, &a.Venue, &a.Date, &a.Shift, &a.PersonName,
		&a.Area, &a.Role, &a.MockTest, &a.OrderNo, &a.PageNo, &a.ReferenceRemarks, &a.CreatedAt)
	return a, err
}

// ListByExam returns the exam's allocations in insertion order with
// 1-based serial numbers assigned. Serials are display positions, not
// stored identifiers.
func (r *AllocationRepo) ListByExam(ctx context.Context, examKey string) ([]model.Allocation, error) {
	const q = `SELECT ` + ioColumns + ` FROM io_allocations WHERE exam_key = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, examKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAllocations(rows)
}

// ListByExamTx is ListByExam inside a transaction. Batch creation
// reads the existing rows through the same transaction that will
// insert, so a concurrent batch cannot slip a clash in between.
func (r *AllocationRepo) ListByExamTx(ctx context.Context, tx *sql.Tx, examKey string) ([]model.Allocation, error) {
	const q = `SELECT ` + ioColumns + ` FROM io_allocations WHERE exam_key = ? ORDER BY id FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, examKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAllocations(rows)
}

func collectAllocations(rows *sql.Rows) ([]model.Allocation, error) {
	out := make([]model.Allocation, 0)
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		a.SerialNo = len(out) + 1
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListAll returns every coordinator allocation across all exams in
// insertion order. Used to assemble backup snapshots.
func (r *AllocationRepo) ListAll(ctx context.Context) ([]model.Allocation, error) {
	const q = `SELECT ` + ioColumns + ` FROM io_allocations ORDER BY exam_key, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Allocation, 0)
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateBulkTx inserts the given allocations in a single statement
// within the provided transaction and populates their generated IDs.
// Passing an empty slice has no effect and returns nil.
func (r *AllocationRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, allocs []model.Allocation) error {
	if len(allocs) == 0 {
		return nil
	}
	query := `INSERT INTO io_allocations (exam_key, venue, slot_date, shift, person_name, area, role,
		mock_test, order_no, page_no, reference_remarks) VALUES `
	args := make([]interface{}, 0, len(allocs)*11)
	for i, a := range allocs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, a.ExamKey, a.Venue, a.Date, a.Shift, a.PersonName, a.Area, a.Role,
			a.MockTest, a.OrderNo, a.PageNo, a.ReferenceRemarks)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	// MySQL reports the first ID of a multi-row insert; the rest are
	// sequential for auto_increment_increment = 1.
	first, err := result.LastInsertId()
	if err != nil {
		return err
	}
	for i := range allocs {
		allocs[i].ID = uint64(first) + uint64(i)
	}
	return nil
}

// RestoreBulkTx re-inserts snapshot rows with their original
// created_at, so restoring a backup does not restamp the audit trail.
// Rows whose snapshot carries no timestamp get the restore time.
func (r *AllocationRepo) RestoreBulkTx(ctx context.Context, tx *sql.Tx, allocs []model.Allocation) error {
	if len(allocs) == 0 {
		return nil
	}
	query := `INSERT INTO io_allocations (exam_key, venue, slot_date, shift, person_name, area, role,
		mock_test, order_no, page_no, reference_remarks, created_at) VALUES `
	now := time.Now().UTC()
	args := make([]interface{}, 0, len(allocs)*12)
	for i, a := range allocs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		createdAt := a.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		args = append(args, a.ExamKey, a.Venue, a.Date, a.Shift, a.PersonName, a.Area, a.Role,
			a.MockTest, a.OrderNo, a.PageNo, a.ReferenceRemarks, createdAt)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	first, err := result.LastInsertId()
	if err != nil {
		return err
	}
	for i := range allocs {
		allocs[i].ID = uint64(first) + uint64(i)
	}
	return nil
}

// LastByExamTx returns the most recently inserted allocation of the
// exam, locked for the remainder of the transaction. Returns
// sql.ErrNoRows when the exam has no allocations.
func (r *AllocationRepo) LastByExamTx(ctx context.Context, tx *sql.Tx, examKey string) (model.Allocation, error) {
	const q = `SELECT ` + ioColumns + ` FROM io_allocations
	           WHERE exam_key = ? ORDER BY id DESC LIMIT 1 FOR UPDATE`
	return scanAllocation(tx.QueryRowContext(ctx, q, examKey))
}

// GetByIDsTx fetches the given allocations of one exam, locked for
// update. IDs that do not belong to the exam are simply absent from
// the result; the caller decides whether that is an error.
func (r *AllocationRepo) GetByIDsTx(ctx context.Context, tx *sql.Tx, examKey string, ids []uint64) ([]model.Allocation, error) {
	if len(ids) == 0 {
		return []model.Allocation{}, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, examKey)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	q := `SELECT ` + ioColumns + ` FROM io_allocations
	      WHERE exam_key = ? AND id IN (` + strings.Join(placeholders, ",") + `) ORDER BY id FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Allocation, 0, len(ids))
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteByIDsTx removes the given rows within a transaction and
// returns the number actually deleted.
func (r *AllocationRepo) DeleteByIDsTx(ctx context.Context, tx *sql.Tx, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM io_allocations WHERE id IN ("+strings.Join(placeholders, ",")+")", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByExamTx removes every allocation of the exam within a
// transaction. Used when an exam is dropped or a backup is restored.
func (r *AllocationRepo) DeleteByExamTx(ctx context.Context, tx *sql.Tx, examKey string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM io_allocations WHERE exam_key = ?", examKey)
	return err
}

// DeleteAllTx wipes the table. Used by the full data reset and by
// full-backup restore.
func (r *AllocationRepo) DeleteAllTx(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM io_allocations")
	return err
}
