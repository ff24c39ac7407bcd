package repository

import (
	"context"
	"database/sql"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

// ReferenceRepo provides CRUD operations for allocation references.
// One live reference exists per (exam_key, role); Upsert replaces the
// previous one wholesale.
type ReferenceRepo struct {
	db *sql.DB
}

// NewReferenceRepo returns a new ReferenceRepo bound to the given database.
func NewReferenceRepo(db *sql.DB) *ReferenceRepo { return &ReferenceRepo{db: db} }

// Upsert stores the reference for (exam, role), replacing any previous
// one. The created_at timestamp is refreshed on replacement so the
// listing shows when the current authorization was recorded.
func (r *ReferenceRepo) Upsert(ctx context.Context, ref model.Reference) error {
	const q = `INSERT INTO allocation_references (exam_key, role, order_no, page_no, remarks)
	           VALUES (?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE order_no = VALUES(order_no), page_no = VALUES(page_no),
	               remarks = VALUES(remarks), created_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, q, ref.ExamKey, ref.Role, ref.OrderNo, ref.PageNo, ref.Remarks)
	return err
}

// Get fetches the live reference for (exam, role). Returns
// sql.ErrNoRows when none has been recorded.
func (r *ReferenceRepo) Get(ctx context.Context, examKey, role string) (model.Reference, error) {
	const q = `SELECT exam_key, role, order_no, page_no, remarks, created_at
	           FROM allocation_references WHERE exam_key = ? AND role = ? LIMIT 1`
	var ref model.Reference
	err := r.db.QueryRowContext(ctx, q, examKey, role).Scan(
		&ref.ExamKey, &ref.Role, &ref.OrderNo, &ref.PageNo, &ref.Remarks, &ref.CreatedAt)
	return ref, err
}

// ListByExam returns all references recorded for one exam.
func (r *ReferenceRepo) ListByExam(ctx context.Context, examKey string) ([]model.Reference, error) {
	const q = `SELECT exam_key, role, order_no, page_no, remarks, created_at
	           FROM allocation_references WHERE exam_key = ? ORDER BY role`
	rows, err := r.db.QueryContext(ctx, q, examKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReferences(rows)
}

// ListAll returns every recorded reference across all exams. Used by
// the reference overview and by backup snapshots.
func (r *ReferenceRepo) ListAll(ctx context.Context) ([]model.Reference, error) {
	const q = `SELECT exam_key, role, order_no, page_no, remarks, created_at
	           FROM allocation_references ORDER BY exam_key, role`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReferences(rows)
}

func collectReferences(rows *sql.Rows) ([]model.Reference, error) {
	out := make([]model.Reference, 0)
	for rows.Next() {
		var ref model.Reference
		if err := rows.Scan(&ref.ExamKey, &ref.Role, &ref.OrderNo, &ref.PageNo, &ref.Remarks, &ref.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

// Delete removes the reference for (exam, role). Existing allocations
// keep their snapshots. Returns ErrNotFound when none exists.
func (r *ReferenceRepo) Delete(ctx context.Context, examKey, role string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM allocation_references WHERE exam_key = ? AND role = ?", examKey, role)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByExamTx removes every reference of the exam within a
// transaction. Part of exam deletion.
func (r *ReferenceRepo) DeleteByExamTx(ctx context.Context, tx *sql.Tx, examKey string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM allocation_references WHERE exam_key = ?", examKey)
	return err
}

// DeleteAllTx wipes the table. Used by the full data reset.
func (r *ReferenceRepo) DeleteAllTx(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM allocation_references")
	return err
}
