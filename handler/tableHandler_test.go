package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/siherrmann/dataTable/database"
	"github.com/siherrmann/dataTable/helper"
	"github.com/siherrmann/dataTable/model"
	"github.com/siherrmann/dataTable/table"
	"github.com/siherrmann/dataTable/upload"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDatabaseDown = errors.New("db down")

// failingRecordDB delegates to the test database and fails the
// operations that have an error set.
type failingRecordDB struct {
	database.RecordDBHandlerFunctions
	deleteErr   error
	insertErr   error
	insertLimit int
	inserted    int
}

func (f *failingRecordDB) DeleteRecord(rid uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.RecordDBHandlerFunctions.DeleteRecord(rid)
}

func (f *failingRecordDB) DeleteRecords(rids []uuid.UUID) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.RecordDBHandlerFunctions.DeleteRecords(rids)
}

func (f *failingRecordDB) InsertRecord(tableName string, record *model.Record) (*model.Record, error) {
	if f.insertErr != nil && f.inserted >= f.insertLimit {
		return nil, f.insertErr
	}
	f.inserted++
	return f.RecordDBHandlerFunctions.InsertRecord(tableName, record)
}

func newFailingTableHandler(db *failingRecordDB) *TableHandler {
	db.RecordDBHandlerFunctions = recordDB
	return NewTableHandler(upload.NewFilesystemMemory(), db, queue, testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// insertTestRecords inserts n records into a new table and returns its name and the records.
func insertTestRecords(t *testing.T, n int) (string, []model.Record) {
	tableName := "table-" + uuid.NewString()
	records := []model.Record{}
	for i := 1; i <= n; i++ {
		record := model.NewRecord(
			model.Field{Key: "id", Value: i},
			model.Field{Key: "name", Value: fmt.Sprintf("name-%02d", i)},
			model.Field{Key: "active", Value: i%2 == 0},
		)
		inserted, err := recordDB.InsertRecord(tableName, &record)
		require.NoError(t, err)
		records = append(records, *inserted)
	}
	return tableName, records
}

func newFormRequest(method string, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func newJSONRequest(method string, target string, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHealthCheck(t *testing.T) {
	handler, _ := newTestTableHandler(testConfig())
	e := echo.New()

	t.Run("Should return healthy status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.HealthCheck(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "healthy")
		assert.Contains(t, rec.Body.String(), "data-table")
	})
}

func TestNewTableHandler(t *testing.T) {
	t.Run("Defaults for nil config and logger", func(t *testing.T) {
		handler := NewTableHandler(nil, recordDB, queue, nil, nil)
		require.NotNil(t, handler.config)
		require.NotNil(t, handler.logger)
		assert.NotNil(t, handler.validator)
		assert.Empty(t, handler.tables)
	})

	t.Run("Actions follow the config", func(t *testing.T) {
		handler := NewTableHandler(nil, recordDB, queue, &helper.Config{Actions: helper.ActionsConfig{Details: true}}, nil)
		actions := handler.actions("any")
		assert.NotNil(t, actions.OnDetails)
		assert.Nil(t, actions.OnEdit)
		assert.Nil(t, actions.OnDelete)
		assert.NotNil(t, actions.OnSelected)
	})
}

func TestTablesView(t *testing.T) {
	handler, _ := newTestTableHandler(testConfig())
	tableName, _ := insertTestRecords(t, 1)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.TablesView(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), tableName)
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
}

func TestWithTableLoadsOnce(t *testing.T) {
	handler, _ := newTestTableHandler(testConfig())
	tableName, _ := insertTestRecords(t, 3)

	var count int
	err := handler.withTable(tableName, func(co *table.Coordinator) error {
		count = len(co.Records())
		assert.False(t, co.Loading())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	extra := model.NewRecord(model.Field{Key: "id", Value: 4})
	_, err = recordDB.InsertRecord(tableName, &extra)
	require.NoError(t, err)

	err = handler.withTable(tableName, func(co *table.Coordinator) error {
		count = len(co.Records())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count, "records are cached until invalidated")

	handler.invalidate(tableName)
	err = handler.withTable(tableName, func(co *table.Coordinator) error {
		count = len(co.Records())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestWithTablePagesThroughRecords(t *testing.T) {
	handler, _ := newTestTableHandler(testConfig())
	handler.pageSize = 2
	tableName, records := insertTestRecords(t, 5)

	var loaded []model.Record
	err := handler.withTable(tableName, func(co *table.Coordinator) error {
		loaded = co.Records()
		return nil
	})
	require.NoError(t, err)
	require.Len(t, loaded, 5)
	for i, record := range records {
		assert.Equal(t, record.RID, loaded[i].RID)
	}

	t.Run("Page size equal to the record count", func(t *testing.T) {
		handler, _ := newTestTableHandler(testConfig())
		handler.pageSize = 5

		all, err := handler.selectAllRecords(tableName)
		require.NoError(t, err)
		assert.Len(t, all, 5)
	})

	t.Run("Empty table", func(t *testing.T) {
		all, err := handler.selectAllRecords("table-" + uuid.NewString())
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
