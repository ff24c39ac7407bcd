package repository

import (
	"context"
	"database/sql"
	"time"
)

// ExamRepo provides CRUD operations for exams. An exam is identified
// by its key ("<name> - <year>"); the key is the natural primary key
// and every allocation table references it. All timestamp fields are
// assumed to be stored in UTC.
type ExamRepo struct {
	db *sql.DB
}

// NewExamRepo returns a new ExamRepo bound to the given database.
func NewExamRepo(db *sql.DB) *ExamRepo { return &ExamRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning several repositories.
func (r *ExamRepo) DB() *sql.DB { return r.db }

// Create registers an exam. Re-registering an existing key is a no-op;
// the stored name and year win. Returns true when a new row was
// inserted.
func (r *ExamRepo) Create(ctx context.Context, key, name, year string) (bool, error) {
	const q = `INSERT INTO exams (exam_key, name, year) VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE exam_key = exam_key`
	res, err := r.db.ExecContext(ctx, q, key, name, year)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// CreateTx is Create within a transaction. Restore uses it to
// re-register exam keys found in a snapshot.
func (r *ExamRepo) CreateTx(ctx context.Context, tx *sql.Tx, key, name, year string) error {
	const q = `INSERT INTO exams (exam_key, name, year) VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE exam_key = exam_key`
	_, err := tx.ExecContext(ctx, q, key, name, year)
	return err
}

// Exists reports whether an exam with the given key is registered.
func (r *ExamRepo) Exists(ctx context.Context, key string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM exams WHERE exam_key = ? LIMIT 1", key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ExamSummary is one row of the exam listing: the exam plus how many
// allocations of each kind it currently holds.
type ExamSummary struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Year      string    `json:"year"`
	IOCount   int       `json:"io_allocations"`
	EYCount   int       `json:"ey_allocations"`
	CreatedAt time.Time `json:"created_at"`
}

// List returns all registered exams with per-kind allocation counts,
// newest first.
func (r *ExamRepo) List(ctx context.Context) ([]ExamSummary, error) {
	const q = `SELECT e.exam_key, e.name, e.year,
	                  (SELECT COUNT(*) FROM io_allocations a WHERE a.exam_key = e.exam_key),
	                  (SELECT COUNT(*) FROM ey_allocations a WHERE a.exam_key = e.exam_key),
	                  e.created_at
	           FROM exams e
	           ORDER BY e.created_at DESC, e.exam_key`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ExamSummary, 0)
	for rows.Next() {
		var s ExamSummary
		if err := rows.Scan(&s.Key, &s.Name, &s.Year, &s.IOCount, &s.EYCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteTx removes the exam row itself within a transaction. The
// caller is responsible for clearing dependent allocation and
// reference rows first. Returns ErrNotFound when no such exam exists.
func (r *ExamRepo) DeleteTx(ctx context.Context, tx *sql.Tx, key string) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM exams WHERE exam_key = ?", key)
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

// DeleteAll wipes every exam row. Used by the full data reset.
func (r *ExamRepo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM exams")
	return err
}
