package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/siherrmann/dataTable/helper"
	"github.com/siherrmann/dataTable/model"
	"github.com/siherrmann/dataTable/table"
	"github.com/siherrmann/dataTable/upload"
	"github.com/siherrmann/dataTable/view/screens"

	"github.com/labstack/echo/v4"
)

// =======API Handlers=======

// Export downloads the filtered records of the table as CSV
func (m *TableHandler) Export(c echo.Context) error {
	name := c.Param("name")

	var data []byte
	err := m.withTable(name, func(co *table.Coordinator) error {
		data = co.ExportCsv(co.Filtered())
		return nil
	})
	if err != nil {
		return renderTableError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", table.EXPORT_FILENAME))
	return c.Blob(http.StatusOK, table.EXPORT_MIME_TYPE, data)
}

// ExportJob adds a job writing the filtered records of the table to the export storage
func (m *TableHandler) ExportJob(c echo.Context) error {
	name := c.Param("name")

	var search string
	err := m.withTable(name, func(co *table.Coordinator) error {
		search = co.Search()
		return nil
	})
	if err != nil {
		return renderTableError(c, err)
	}

	job, err := m.Queuer.AddJob(TASK_EXPORT_CSV, nil, name, search)
	if err != nil {
		return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to add export job: %v", err))
	}

	return renderPopupOrJson(c, http.StatusAccepted, fmt.Sprintf("Export job %v added", job.RID), job)
}

// ExportCsvTask is the queuer task behind ExportJob. It reads the records from the
// database so it never shares state with the coordinators of the handler.
func (m *TableHandler) ExportCsvTask(tableName string, search string) error {
	records, err := m.selectAllRecords(tableName)
	if err != nil {
		return fmt.Errorf("failed to load records of table %s: %w", tableName, err)
	}

	co := table.NewCoordinator(nil, model.Actions{}, m.logger.With("table", tableName))
	co.SetRecords(records, false)
	co.SetSearch(search)

	return co.Export(context.Background(), m.filesystem)
}

// DownloadExport streams an artifact from the export storage
func (m *TableHandler) DownloadExport(c echo.Context) error {
	filename := c.QueryParam("name")
	if filename == "" {
		return renderPopupOrJson(c, http.StatusBadRequest, "File name is required")
	}

	file, err := m.filesystem.Open(c.Request().Context(), filename)
	if err != nil {
		return renderPopupOrJson(c, storageErrorStatus(err), fmt.Sprintf("Failed to open file %s: %v", filename, err))
	}
	defer file.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", path.Base(filename)))
	return c.Stream(http.StatusOK, helper.GetMimeType(filename), file)
}

// DeleteExport deletes an artifact from the export storage
func (m *TableHandler) DeleteExport(c echo.Context) error {
	filename, err := url.PathUnescape(c.Param("filename"))
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid file name: %v", err))
	}

	err = m.filesystem.Delete(c.Request().Context(), filename)
	if err != nil {
		return renderPopupOrJson(c, storageErrorStatus(err), fmt.Sprintf("Failed to delete file %s: %v", filename, err))
	}

	c.Response().Header().Set(HX_TRIGGER_AFTER_SETTLE, "reloadExports")

	return renderPopupOrJson(c, http.StatusOK, fmt.Sprintf("File %s deleted successfully", filename))
}

func storageErrorStatus(err error) int {
	switch {
	case errors.Is(err, upload.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, upload.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// =======View Handlers=======

// ExportsView renders the list of exported artifacts
func (m *TableHandler) ExportsView(c echo.Context) error {
	files, err := m.filesystem.ListFiles(c.Request().Context())
	if err != nil {
		return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to list files: %v", err))
	}

	c.Response().Header().Set(HX_PUSH_URL, "/exports")
	return renderScreen(c, screens.Exports(files, model.GetRequestContext(c).CsrfToken))
}
