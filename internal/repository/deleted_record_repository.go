package repository

import (
	"context"
	"database/sql"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

// DeletedRecordRepo manages the append-only log of removed
// allocations. Records are only ever inserted (in the same
// transaction as the removal) or wiped wholesale by an explicit
// operator action.
type DeletedRecordRepo struct {
	db *sql.DB
}

// NewDeletedRecordRepo returns a new DeletedRecordRepo bound to the given database.
func NewDeletedRecordRepo(db *sql.DB) *DeletedRecordRepo { return &DeletedRecordRepo{db: db} }

const deletedColumns = `id, kind, exam_key, venue, slot_date, shift, person_name, area, role,
	mock_test, rate, order_no, page_no, reference_remarks, deletion_reason,
	deletion_order_no, deleted_at`

// AppendTx writes the given records within a transaction. The caller
// has already filled the deletion reason, order number and kind.
func (r *DeletedRecordRepo) AppendTx(ctx context.Context, tx *sql.Tx, recs []model.DeletedRecord) error {
	if len(recs) == 0 {
		return nil
	}
	query := `INSERT INTO deleted_records (kind, exam_key, venue, slot_date, shift, person_name, area, role,
		mock_test, rate, order_no, page_no, reference_remarks, deletion_reason, deletion_order_no) VALUES `
	args := make([]interface{}, 0, len(recs)*15)
	for i, d := range recs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, d.Kind, d.ExamKey, d.Venue, d.Date, d.Shift, d.PersonName, d.Area, d.Role,
			d.MockTest, d.Rate, d.OrderNo, d.PageNo, d.ReferenceRemarks, d.DeletionReason, d.DeletionOrderNo)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// List returns the full deletion log, newest first.
func (r *DeletedRecordRepo) List(ctx context.Context) ([]model.DeletedRecord, error) {
	const q = `SELECT ` + deletedColumns + ` FROM deleted_records ORDER BY deleted_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeletedRecords(rows)
}

// ListByExam returns the deletion log entries of one exam, newest first.
func (r *DeletedRecordRepo) ListByExam(ctx context.Context, examKey string) ([]model.DeletedRecord, error) {
	const q = `SELECT ` + deletedColumns + ` FROM deleted_records
	           WHERE exam_key = ? ORDER BY deleted_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, examKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeletedRecords(rows)
}

func collectDeletedRecords(rows *sql.Rows) ([]model.DeletedRecord, error) {
	out := make([]model.DeletedRecord, 0)
	for rows.Next() {
		var d model.DeletedRecord
		if err := rows.Scan(&d.ID, &d.Kind, &d.ExamKey, &d.Venue, &d.Date, &d.Shift, &d.PersonName,
			&d.Area, &d.Role, &d.MockTest, &d.Rate, &d.OrderNo, &d.PageNo, &d.ReferenceRemarks,
			&d.DeletionReason, &d.DeletionOrderNo, &d.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Clear wipes the deletion log and returns the number of records
// removed.
func (r *DeletedRecordRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM deleted_records")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearTx is Clear within a transaction. Used by the full data reset.
func (r *DeletedRecordRepo) ClearTx(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM deleted_records")
	return err
}
