package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

func ioRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "exam_key", "venue", "slot_date", "shift", "person_name", "area",
		"role", "mock_test", "order_no", "page_no", "reference_remarks", "created_at",
	})
}

func TestAllocationRepoListByExamAssignsSerials(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("FROM io_allocations WHERE exam_key").
		WithArgs("CGL - 2025").
		WillReturnRows(ioRows().
			AddRow(7, "CGL - 2025", "Venue A", "01-09-2025", "Morning", "Anita Das",
				"Salt Lake", model.RoleCentreCoordinator, false, "ORD-1", "3", "", now).
			AddRow(9, "CGL - 2025", "Venue B", "01-09-2025", "Morning", "Ravi Kumar",
				"Howrah", model.RoleFlyingSquad, false, "ORD-2", "4", "", now))

	out, err := NewAllocationRepo(db).ListByExam(context.Background(), "CGL - 2025")
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Serials are display positions, independent of row IDs.
	assert.Equal(t, 1, out[0].SerialNo)
	assert.Equal(t, uint64(7), out[0].ID)
	assert.Equal(t, 2, out[1].SerialNo)
	assert.Equal(t, uint64(9), out[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepoCreateBulkTxPopulatesIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO io_allocations").
		WillReturnResult(sqlmock.NewResult(41, 2))

	tx, err := db.Begin()
	require.NoError(t, err)

	allocs := []model.Allocation{
		{ExamKey: "CGL - 2025", Venue: "Venue A", Date: "01-09-2025", Shift: "Morning",
			PersonName: "Anita Das", Role: model.RoleCentreCoordinator},
		{ExamKey: "CGL - 2025", Venue: "Venue B", Date: "01-09-2025", Shift: "Morning",
			PersonName: "Ravi Kumar", Role: model.RoleFlyingSquad},
	}
	require.NoError(t, NewAllocationRepo(db).CreateBulkTx(context.Background(), tx, allocs))
	assert.Equal(t, uint64(41), allocs[0].ID)
	assert.Equal(t, uint64(42), allocs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepoCreateBulkTxEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	// No statement is issued for an empty batch.
	require.NoError(t, NewAllocationRepo(db).CreateBulkTx(context.Background(), tx, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepoRestoreBulkTxKeepsCreatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stamped := time.Date(2025, 9, 1, 8, 30, 0, 0, time.UTC)
	mock.ExpectBegin()
	// The snapshot timestamp is written back; a row without one gets a
	// fresh stamp instead of a zero date.
	mock.ExpectExec("INSERT INTO io_allocations").
		WithArgs(
			"CGL - 2025", "Venue A", "01-09-2025", "Morning", "Anita Das", "Salt Lake",
			model.RoleCentreCoordinator, false, "ORD-1", "3", "", stamped,
			"CGL - 2025", "Venue B", "01-09-2025", "Morning", "Ravi Kumar", "Howrah",
			model.RoleFlyingSquad, false, "ORD-2", "4", "", sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(51, 2))

	tx, err := db.Begin()
	require.NoError(t, err)

	allocs := []model.Allocation{
		{ExamKey: "CGL - 2025", Venue: "Venue A", Date: "01-09-2025", Shift: "Morning",
			PersonName: "Anita Das", Area: "Salt Lake", Role: model.RoleCentreCoordinator,
			OrderNo: "ORD-1", PageNo: "3", CreatedAt: stamped},
		{ExamKey: "CGL - 2025", Venue: "Venue B", Date: "01-09-2025", Shift: "Morning",
			PersonName: "Ravi Kumar", Area: "Howrah", Role: model.RoleFlyingSquad,
			OrderNo: "ORD-2", PageNo: "4"},
	}
	require.NoError(t, NewAllocationRepo(db).RestoreBulkTx(context.Background(), tx, allocs))
	assert.Equal(t, uint64(51), allocs[0].ID)
	assert.Equal(t, uint64(52), allocs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepoLastByExamTxEmptyExam(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("ORDER BY id DESC LIMIT 1").
		WithArgs("CGL - 2025").
		WillReturnRows(ioRows())

	tx, err := db.Begin()
	require.NoError(t, err)

	_, err = NewAllocationRepo(db).LastByExamTx(context.Background(), tx, "CGL - 2025")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepoDeleteByIDsTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM io_allocations WHERE id IN").
		WithArgs(7, 9).
		WillReturnResult(sqlmock.NewResult(0, 2))

	tx, err := db.Begin()
	require.NoError(t, err)

	n, err := NewAllocationRepo(db).DeleteByIDsTx(context.Background(), tx, []uint64{7, 9})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
