package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/siherrmann/dataTable/table"
	"github.com/siherrmann/dataTable/upload"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readExport(t *testing.T, fs upload.Filesystem) string {
	reader, err := fs.Open(context.Background(), table.EXPORT_FILENAME)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	return string(data)
}

func TestExportHandler(t *testing.T) {
	handler, _ := newTestTableHandler(testConfig())
	tableName, _ := insertTestRecords(t, 12)
	e := echo.New()

	req := newFormRequest(http.MethodPost, "/api/table/"+tableName+"/search", url.Values{"search": {"name-1"}})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues(tableName)
	require.NoError(t, handler.Search(c))

	req = httptest.NewRequest(http.MethodGet, "/api/table/"+tableName+"/export", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues(tableName)

	err := handler.Export(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, table.EXPORT_MIME_TYPE, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), table.EXPORT_FILENAME)
	assert.Equal(t, "id,name,active\n10,name-10,true\n11,name-11,false\n12,name-12,true", rec.Body.String())
}

func TestExportJobHandler(t *testing.T) {
	tableName, _ := insertTestRecords(t, 3)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/table/"+tableName+"/exportJob", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues(tableName)

	err := exportHandler.ExportJob(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "Export job")

	assert.Eventually(t, func() bool {
		reader, err := exportFilesystem.Open(context.Background(), table.EXPORT_FILENAME)
		if err != nil {
			return false
		}
		defer reader.Close()
		data, err := io.ReadAll(reader)
		return err == nil && strings.Contains(string(data), "name-03")
	}, 10*time.Second, 100*time.Millisecond, "export job should write the CSV file")

	assert.Equal(t, "id,name,active\n1,name-01,false\n2,name-02,true\n3,name-03,false", readExport(t, exportFilesystem))
}

func TestExportCsvTask(t *testing.T) {
	handler, fs := newTestTableHandler(testConfig())
	tableName, _ := insertTestRecords(t, 12)

	t.Run("Writes filtered records", func(t *testing.T) {
		err := handler.ExportCsvTask(tableName, "NAME-12")
		require.NoError(t, err)
		assert.Equal(t, "id,name,active\n12,name-12,true", readExport(t, fs))
	})

	t.Run("Reads records past one page", func(t *testing.T) {
		handler, fs := newTestTableHandler(testConfig())
		handler.pageSize = 5

		err := handler.ExportCsvTask(tableName, "")
		require.NoError(t, err)
		assert.Len(t, strings.Split(readExport(t, fs), "\n"), 13)
	})

	t.Run("Empty table writes empty file", func(t *testing.T) {
		err := handler.ExportCsvTask("empty-table", "")
		require.NoError(t, err)
		assert.Equal(t, "", readExport(t, fs))
	})
}

func TestExportFilesHandlers(t *testing.T) {
	handler, fs := newTestTableHandler(testConfig())
	e := echo.New()

	err := fs.WriteArtifact(context.Background(), "export-data.csv", table.EXPORT_MIME_TYPE, []byte("a,b\n1,2"))
	require.NoError(t, err)

	t.Run("ExportsView lists files", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/exports", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.ExportsView(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "export-data.csv")
	})

	t.Run("DownloadExport streams the file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/export/download?name=export-data.csv", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.DownloadExport(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv;charset=utf-8", rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, "a,b\n1,2", rec.Body.String())
	})

	t.Run("DownloadExport without name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/export/download", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.DownloadExport(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("DeleteExport removes the file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/export/deleteExport/export-data.csv", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("filename")
		c.SetParamValues("export-data.csv")

		err := handler.DeleteExport(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "deleted successfully")
		assert.Contains(t, rec.Body.String(), "popup-success")

		files, err := fs.ListFiles(context.Background())
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("DownloadExport of missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/export/download?name=missing.csv", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.DownloadExport(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("DownloadExport outside of the storage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/export/download?name=../config.yaml", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.DownloadExport(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("DeleteExport of missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/export/deleteExport/missing.csv", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("filename")
		c.SetParamValues("missing.csv")

		err := handler.DeleteExport(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRenderPopupOrJson(t *testing.T) {
	e := echo.New()

	t.Run("JSON with message and value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := renderPopupOrJson(c, http.StatusCreated, "done", map[string]int{"count": 1})
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"message":"done","value":{"count":1}}`, rec.Body.String())
	})

	t.Run("Popup for htmx requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := renderPopupOrJson(c, http.StatusBadRequest, "<broken>")
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "beforeend", rec.Header().Get("HX-Reswap"))
		assert.Contains(t, rec.Body.String(), "popup-error")
		assert.Contains(t, rec.Body.String(), "&lt;broken&gt;")
		assert.False(t, bytes.Contains(rec.Body.Bytes(), []byte("<broken>")))
	})

	t.Run("No value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := renderPopupOrJson(c, http.StatusNoContent)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
