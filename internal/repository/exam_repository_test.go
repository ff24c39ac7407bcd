package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamRepoCreateNew(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO exams").
		WithArgs("CGL - 2025", "CGL", "2025").
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := NewExamRepo(db).Create(context.Background(), "CGL - 2025", "CGL", "2025")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepoCreateExistingIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// ON DUPLICATE KEY UPDATE with no change reports zero affected rows.
	mock.ExpectExec("INSERT INTO exams").
		WithArgs("CGL - 2025", "CGL", "2025").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := NewExamRepo(db).Create(context.Background(), "CGL - 2025", "CGL", "2025")
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepoExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM exams").
		WithArgs("CGL - 2025").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM exams").
		WithArgs("Missing - 2025").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := NewExamRepo(db)
	ok, err := repo.Exists(context.Background(), "CGL - 2025")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(context.Background(), "Missing - 2025")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepoList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("FROM exams e").
		WillReturnRows(sqlmock.NewRows(
			[]string{"exam_key", "name", "year", "io", "ey", "created_at"}).
			AddRow("CHSL - 2025", "CHSL", "2025", 4, 2, now).
			AddRow("CGL - 2025", "CGL", "2025", 0, 0, now.Add(-time.Hour)))

	out, err := NewExamRepo(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "CHSL - 2025", out[0].Key)
	assert.Equal(t, 4, out[0].IOCount)
	assert.Equal(t, 2, out[0].EYCount)
	assert.Equal(t, "CGL - 2025", out[1].Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepoDeleteTxNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM exams WHERE exam_key").
		WithArgs("Missing - 2025").
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	require.NoError(t, err)

	err = NewExamRepo(db).DeleteTx(context.Background(), tx, "Missing - 2025")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
