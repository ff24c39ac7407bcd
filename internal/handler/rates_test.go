package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bijayshruti/SSC-APP5/internal/repository"
)

func TestRateHandlerGetDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// No saved row: the built-in defaults are served.
	mock.ExpectQuery("FROM remuneration_rates").
		WillReturnRows(sqlmock.NewRows(
			[]string{"multiple_shifts", "single_shift", "mock_test", "ey_personnel"}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rates", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewRateHandler(repository.NewRateRepo(db))
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ey_personnel":5000`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateHandlerUpdateRejectsZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	e := echo.New()
	body := `{"multiple_shifts": 800, "single_shift": 0, "mock_test": 400, "ey_personnel": 5500}`
	req := httptest.NewRequest(http.MethodPut, "/v1/rates", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewRateHandler(repository.NewRateRepo(db))
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateHandlerUpdateSaves(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO remuneration_rates").
		WithArgs(800, 500, 400, 5500).
		WillReturnResult(sqlmock.NewResult(1, 1))

	e := echo.New()
	body := `{"multiple_shifts": 800, "single_shift": 500, "mock_test": 400, "ey_personnel": 5500}`
	req := httptest.NewRequest(http.MethodPut, "/v1/rates", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewRateHandler(repository.NewRateRepo(db))
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
