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

func TestReferenceRepoUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO allocation_references").
		WithArgs("CGL - 2025", model.RoleCentreCoordinator, "ORD-11", "3", "initial order").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = NewReferenceRepo(db).Upsert(context.Background(), model.Reference{
		ExamKey: "CGL - 2025",
		Role:    model.RoleCentreCoordinator,
		OrderNo: "ORD-11",
		PageNo:  "3",
		Remarks: "initial order",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceRepoGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("FROM allocation_references WHERE exam_key").
		WithArgs("CGL - 2025", model.RoleCentreCoordinator).
		WillReturnRows(sqlmock.NewRows(
			[]string{"exam_key", "role", "order_no", "page_no", "remarks", "created_at"}).
			AddRow("CGL - 2025", model.RoleCentreCoordinator, "ORD-11", "3", "", now))

	ref, err := NewReferenceRepo(db).Get(context.Background(), "CGL - 2025", model.RoleCentreCoordinator)
	require.NoError(t, err)
	assert.Equal(t, "ORD-11", ref.OrderNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceRepoGetNotRecorded(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM allocation_references WHERE exam_key").
		WithArgs("CGL - 2025", model.RoleFlyingSquad).
		WillReturnRows(sqlmock.NewRows(
			[]string{"exam_key", "role", "order_no", "page_no", "remarks", "created_at"}))

	_, err = NewReferenceRepo(db).Get(context.Background(), "CGL - 2025", model.RoleFlyingSquad)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReferenceRepoDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM allocation_references").
		WithArgs("CGL - 2025", model.RoleFlyingSquad).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewReferenceRepo(db).Delete(context.Background(), "CGL - 2025", model.RoleFlyingSquad)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
