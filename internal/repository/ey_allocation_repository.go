package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

// EYAllocationRepo provides CRUD operations for EY observer
// allocations (the ey_allocations table). The shape mirrors
// AllocationRepo; EY rows additionally carry contact details and the
// per-day rate snapshotted at allocation time.
type EYAllocationRepo struct {
	db *sql.DB
}

// NewEYAllocationRepo returns a new EYAllocationRepo bound to the given database.
func NewEYAllocationRepo(db *sql.DB) *EYAllocationRepo { return &EYAllocationRepo{db: db} }

const eyColumns = `id, exam_key, venue, slot_date, shift, person_name, mobile, email,
	id_number, designation, department, mock_test, rate, order_no, page_no,
	reference_remarks, created_at`

func scanEYAllocation(row interface{ Scan(...interface{}) error }) (model.EYAllocation, error) {
	var a model.EYAllocation
	err := row.Scan(&a.ID, &a.ExamKey, &a.Venue, &a.Date, &a.Shift, &a.PersonName,
		&a.Mobile, &a.Email, &a.IDNumber, &a.Designation, &a.Department,
		&a.MockTest, &a.Rate, &a.OrderNo, &a.PageNo, &a.ReferenceRemarks, &a.CreatedAt)
	return a, err
}

// ListByExam returns the exam's EY allocations in insertion order with
// 1-based serial numbers assigned.
func (r *EYAllocationRepo) ListByExam(ctx context.Context, examKey string) ([]model.EYAllocation, error) {
	const q = `SELECT ` + eyColumns + ` FROM ey_allocations WHERE exam_key = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, examKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEYAllocations(rows)
}

// ListByExamTx is ListByExam inside a transaction with the rows
// locked, so conflict checks and the following insert see one
// consistent snapshot.
func (r *EYAllocationRepo) ListByExamTx(ctx context.Context, tx *sql.Tx, examKey string) ([]model.EYAllocation, error) {
	const q = `SELECT ` + eyColumns + ` FROM ey_allocations WHERE exam_key = ? ORDER BY id FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, examKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEYAllocations(rows)
}

func collectEYAllocations(rows *sql.Rows) ([]model.EYAllocation, error) {
	out := make([]model.EYAllocation, 0)
	for rows.Next() {
		a, err := scanEYAllocation(rows)
		if err != nil {
			return nil, err
		}
		a.SerialNo = len(out) + 1
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListAll returns every EY allocation across all exams in insertion
// order. Used to assemble backup snapshots.
func (r *EYAllocationRepo) ListAll(ctx context.Context) ([]model.EYAllocation, error) {
	const q = `SELECT ` + eyColumns + ` FROM ey_allocations ORDER BY exam_key, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.EYAllocation, 0)
	for rows.Next() {
		a, err := scanEYAllocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateBulkTx inserts the given EY allocations in a single statement
// within the provided transaction and populates their generated IDs.
func (r *EYAllocationRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, allocs []model.EYAllocation) error {
	if len(allocs) == 0 {
		return nil
	}
	query := `INSERT INTO ey_allocations (exam_key, venue, slot_date, shift, person_name, mobile, email,
		id_number, designation, department, mock_test, rate, order_no, page_no, reference_remarks) VALUES `
	args := make([]interface{}, 0, len(allocs)*15)
	for i, a := range allocs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, a.ExamKey, a.Venue, a.Date, a.Shift, a.PersonName, a.Mobile, a.Email,
			a.IDNumber, a.Designation, a.Department, a.MockTest, a.Rate, a.OrderNo, a.PageNo, a.ReferenceRemarks)
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

// RestoreBulkTx re-inserts snapshot rows with their original
// created_at, so restoring a backup does not restamp the audit trail.
// Rows whose snapshot carries no timestamp get the restore time.
func (r *EYAllocationRepo) RestoreBulkTx(ctx context.Context, tx *sql.Tx, allocs []model.EYAllocation) error {
	if len(allocs) == 0 {
		return nil
	}
	query := `INSERT INTO ey_allocations (exam_key, venue, slot_date, shift, person_name, mobile, email,
		id_number, designation, department, mock_test, rate, order_no, page_no, reference_remarks, created_at) VALUES `
	now := time.Now().UTC()
	args := make([]interface{}, 0, len(allocs)*16)
	for i, a := range allocs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		createdAt := a.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		args = append(args, a.ExamKey, a.Venue, a.Date, a.Shift, a.PersonName, a.Mobile, a.Email,
			a.IDNumber, a.Designation, a.Department, a.MockTest, a.Rate, a.OrderNo, a.PageNo,
			a.ReferenceRemarks, createdAt)
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

// LastByExamTx returns the most recently inserted EY allocation of the
// exam, locked for the remainder of the transaction. Returns
// sql.ErrNoRows when the exam has none.
func (r *EYAllocationRepo) LastByExamTx(ctx context.Context, tx *sql.Tx, examKey string) (model.EYAllocation, error) {
	const q = `SELECT ` + eyColumns + ` FROM ey_allocations
	           WHERE exam_key = ? ORDER BY id DESC LIMIT 1 FOR UPDATE`
	return scanEYAllocation(tx.QueryRowContext(ctx, q, examKey))
}

// GetByIDsTx fetches the given EY allocations of one exam, locked for
// update.
func (r *EYAllocationRepo) GetByIDsTx(ctx context.Context, tx *sql.Tx, examKey string, ids []uint64) ([]model.EYAllocation, error) {
	if len(ids) == 0 {
		return []model.EYAllocation{}, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, examKey)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	q := `SELECT ` + eyColumns + ` FROM ey_allocations
	      WHERE exam_key = ? AND id IN (` + strings.Join(placeholders, ",") + `) ORDER BY id FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.EYAllocation, 0, len(ids))
	for rows.Next() {
		a, err := scanEYAllocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteByIDsTx removes the given rows within a transaction and
// returns the number actually deleted.
func (r *EYAllocationRepo) DeleteByIDsTx(ctx context.Context, tx *sql.Tx, ids []uint64) (int64, error) {
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
		"DELETE FROM ey_allocations WHERE id IN ("+strings.Join(placeholders, ",")+")", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByExamTx removes every EY allocation of the exam within a
// transaction.
func (r *EYAllocationRepo) DeleteByExamTx(ctx context.Context, tx *sql.Tx, examKey string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM ey_allocations WHERE exam_key = ?", examKey)
	return err
}

// DeleteAllTx wipes the table.
func (r *EYAllocationRepo) DeleteAllTx(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM ey_allocations")
	return err
}
