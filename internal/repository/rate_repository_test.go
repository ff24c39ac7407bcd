package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bijayshruti/SSC-APP5/internal/model"
)

func TestRateRepoLoadSaved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM remuneration_rates WHERE id = 1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"multiple_shifts", "single_shift", "mock_test", "ey_personnel"}).
			AddRow(800, 500, 400, 5500))

	rates, err := NewRateRepo(db).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(800), rates.MultipleShifts)
	assert.Equal(t, uint32(500), rates.SingleShift)
	assert.Equal(t, uint32(400), rates.MockTest)
	assert.Equal(t, uint32(5500), rates.EYPersonnel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateRepoLoadDefaultsWhenUnsaved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM remuneration_rates WHERE id = 1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"multiple_shifts", "single_shift", "mock_test", "ey_personnel"}))

	rates, err := NewRateRepo(db).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRates(), rates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateRepoSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO remuneration_rates").
		WithArgs(800, 500, 400, 5500).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = NewRateRepo(db).Save(context.Background(), model.Rates{
		MultipleShifts: 800, SingleShift: 500, MockTest: 400, EYPersonnel: 5500,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
