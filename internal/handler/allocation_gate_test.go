package handler

import (
	"database/sql"
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

func newIOHandler(db *sql.DB) *AllocationHandler {
	return NewAllocationHandler(db,
		repository.NewAllocationRepo(db),
		repository.NewExamRepo(db),
		repository.NewReferenceRepo(db),
		repository.NewDeletedRecordRepo(db),
		repository.NewRosterRepo(db))
}

func newEYHandler(db *sql.DB) *EYAllocationHandler {
	return NewEYAllocationHandler(db,
		repository.NewEYAllocationRepo(db),
		repository.NewExamRepo(db),
		repository.NewReferenceRepo(db),
		repository.NewDeletedRecordRepo(db),
		repository.NewRosterRepo(db),
		repository.NewRateRepo(db))
}

func examCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("key")
	c.SetParamValues("CGL - 2025")
	return c, rec
}

func examExistsRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"1"}).AddRow(1)
}

func referenceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"exam_key", "role", "order_no", "page_no", "remarks", "created_at"})
}

func TestAllocationCreateBlockedWhenNoReferenceStored(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM exams").
		WithArgs("CGL - 2025").
		WillReturnRows(examExistsRows())
	mock.ExpectQuery("FROM allocation_references").
		WithArgs("CGL - 2025", "Centre Coordinator").
		WillReturnRows(referenceRows())

	body := `{"person": "Anita Das", "venue": "Venue A", "role": "Centre Coordinator",
		"slots": [{"date": "01-09-2025", "shift": "Morning"}],
		"reference": {"use_existing": true}}`
	c, rec := examCtx(http.MethodPost, "/v1/exams/CGL%20-%202025/allocations", body)

	require.NoError(t, newIOHandler(db).Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "no reference on file")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationCreateBlockedWithoutReferencePayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Neither use_existing nor a fresh order: the gate fails before any
	// reference lookup is issued.
	mock.ExpectQuery("SELECT 1 FROM exams").
		WithArgs("CGL - 2025").
		WillReturnRows(examExistsRows())

	body := `{"person": "Anita Das", "venue": "Venue A", "role": "Centre Coordinator",
		"slots": [{"date": "01-09-2025", "shift": "Morning"}],
		"reference": {}}`
	c, rec := examCtx(http.MethodPost, "/v1/exams/CGL%20-%202025/allocations", body)

	require.NoError(t, newIOHandler(db).Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationCreateFreshOrderUpsertsAndSnapshots(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM exams").
		WithArgs("CGL - 2025").
		WillReturnRows(examExistsRows())
	mock.ExpectExec("INSERT INTO allocation_references").
		WithArgs("CGL - 2025", "Centre Coordinator", "55/2025", "12", "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("FROM coordinator_roster").
		WithArgs("Anita Das").
		WillReturnRows(sqlmock.NewRows([]string{"name", "area", "centre_code", "mobile", "email"}))
	mock.ExpectBegin()
	mock.ExpectQuery("FROM io_allocations WHERE exam_key").
		WithArgs("CGL - 2025").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "exam_key", "venue", "slot_date", "shift", "person_name", "area",
			"role", "mock_test", "order_no", "page_no", "reference_remarks", "created_at",
		}))
	mock.ExpectExec("INSERT INTO io_allocations").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	body := `{"person": "Anita Das", "area": "Salt Lake", "venue": "Venue A",
		"role": "Centre Coordinator",
		"slots": [{"date": "01-09-2025", "shift": "Morning"}],
		"reference": {"order_no": "55/2025", "page_no": "12"}}`
	c, rec := examCtx(http.MethodPost, "/v1/exams/CGL%20-%202025/allocations", body)

	require.NoError(t, newIOHandler(db).Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	// The fresh authorization is snapshotted onto the created row.
	assert.Contains(t, rec.Body.String(), `"order_no":"55/2025"`)
	assert.Contains(t, rec.Body.String(), `"page_no":"12"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEYAllocationCreateBlockedWhenNoReferenceStored(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM exams").
		WithArgs("CGL - 2025").
		WillReturnRows(examExistsRows())
	mock.ExpectQuery("FROM allocation_references").
		WithArgs("CGL - 2025", "EY Personnel").
		WillReturnRows(referenceRows())

	body := `{"person": "Sourav Bose", "venue": "Venue A",
		"slots": [{"date": "01-09-2025", "shift": "Morning"}],
		"reference": {"use_existing": true}}`
	c, rec := examCtx(http.MethodPost, "/v1/exams/CGL%20-%202025/ey-allocations", body)

	require.NoError(t, newEYHandler(db).Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "no reference on file")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLastRequiresReasonAndOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Both fields gate the deletion; nothing reaches the database when
	// either is missing.
	for _, body := range []string{
		`{"reason": "duplicate entry"}`,
		`{"order_no": "60/2025"}`,
		`{"reason": "  ", "order_no": "60/2025"}`,
	} {
		c, rec := examCtx(http.MethodDelete, "/v1/exams/CGL%20-%202025/allocations/last", body)
		require.NoError(t, newIOHandler(db).DeleteLast(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEYDeleteLastRequiresReasonAndOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, body := range []string{
		`{"reason": "duplicate entry"}`,
		`{"order_no": "60/2025"}`,
	} {
		c, rec := examCtx(http.MethodDelete, "/v1/exams/CGL%20-%202025/ey-allocations/last", body)
		require.NoError(t, newEYHandler(db).DeleteLast(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
