package handler

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/siherrmann/dataTable/model"
	"github.com/siherrmann/dataTable/table"
	"github.com/siherrmann/dataTable/view/screens"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// =======API Handlers=======

// GetRecords retrieves a paginated list of records of a table
func (m *TableHandler) GetRecords(c echo.Context) error {
	name := c.Param("name")
	lastIdStr := c.QueryParam("lastId")
	limitStr := c.QueryParam("limit")
	search := c.QueryParam("search")

	// Parse lastId with default
	lastId := 0
	if lastIdStr != "" {
		parsedLastId, err := strconv.Atoi(lastIdStr)
		if err != nil || parsedLastId < 0 {
			return c.String(http.StatusBadRequest, "Invalid lastId format")
		}
		lastId = parsedLastId
	}

	// Parse limit with default
	limit := 10
	if limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit <= 0 || parsedLimit > 100 {
			return c.String(http.StatusBadRequest, "Invalid limit, must be between 1 and 100")
		}
		limit = parsedLimit
	}

	var records []model.Record
	var err error
	if search != "" {
		records, err = m.recordDB.SelectAllRecordsBySearch(name, search, lastId, limit)
	} else {
		records, err = m.recordDB.SelectAllRecords(name, lastId, limit)
	}
	if err != nil {
		return c.String(http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve records: %v", err))
	}

	return c.JSON(http.StatusOK, records)
}

// AddRecord inserts the fields of a JSON object as a new record of a table
func (m *TableHandler) AddRecord(c echo.Context) error {
	name := c.Param("name")

	var fields model.Fields
	err := json.NewDecoder(c.Request().Body).Decode(&fields)
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid record: %v", err))
	}
	if len(fields) == 0 {
		return renderPopupOrJson(c, http.StatusBadRequest, "Record needs at least one field")
	}

	record := model.NewRecord(fields...)
	insertedRecord, err := m.recordDB.InsertRecord(name, &record)
	if err != nil {
		return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to add record: %v", err))
	}
	m.invalidate(name)

	return renderPopupOrJson(c, http.StatusCreated, "Record added successfully", insertedRecord)
}

// ImportCsv inserts one record per row of an uploaded CSV file, the first row holds the keys
func (m *TableHandler) ImportCsv(c echo.Context) error {
	name := c.Param("name")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("No CSV file found in the request: %v", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to open file %s: %v", fileHeader.Filename, err))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Failed to read CSV header: %v", err))
	}

	imported := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			m.invalidate(name)
			return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Failed to read CSV row %d: %v", imported+2, err))
		}

		fields := make(model.Fields, 0, len(header))
		for i, key := range header {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			fields = append(fields, model.Field{Key: key, Value: value})
		}

		record := model.NewRecord(fields...)
		_, err = m.recordDB.InsertRecord(name, &record)
		if err != nil {
			m.invalidate(name)
			return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Imported %d record(s), then failed: %v", imported, err))
		}
		imported++
	}
	m.invalidate(name)

	c.Response().Header().Set(HX_REFRESH, "true")

	return renderPopupOrJson(c, http.StatusOK, fmt.Sprintf("%d record(s) imported successfully", imported))
}

// UpdateRecord overwrites the fields of a record with the submitted form values
func (m *TableHandler) UpdateRecord(c echo.Context) error {
	name := c.Param("name")
	rid, err := uuid.Parse(c.Param("rid"))
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid record RID: %v", err))
	}

	if !m.config.Actions.Edit {
		return renderPopupOrJson(c, http.StatusForbidden, "Editing records is disabled")
	}

	record, err := m.recordDB.SelectRecord(rid)
	if err != nil {
		return renderPopupOrJson(c, http.StatusNotFound, fmt.Sprintf("Record not found: %v", err))
	}

	form, err := c.FormParams()
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}
	for _, key := range record.Fields.Keys() {
		if values, ok := form[key]; ok && len(values) > 0 {
			record.Fields.Set(key, values[0])
		}
	}

	updatedRecord, err := m.recordDB.UpdateRecord(record)
	if err != nil {
		return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to update record: %v", err))
	}
	m.invalidate(name)

	c.Response().Header().Set(HX_REFRESH, "true")

	return renderPopupOrJson(c, http.StatusOK, "Record updated successfully", updatedRecord)
}

// =======View Handlers=======

// RecordView renders the details of a record through the details action of its table
func (m *TableHandler) RecordView(c echo.Context) error {
	name := c.QueryParam("table")
	rid, err := uuid.Parse(c.Param("rid"))
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid record RID: %v", err))
	}

	var record model.Record
	err = m.withTable(name, func(co *table.Coordinator) error {
		err := co.InvokeAction(table.ActionDetails, rid)
		if err != nil {
			return err
		}
		record, _ = co.Record(rid)
		return nil
	})
	if err != nil {
		return renderPopupOrJson(c, http.StatusNotFound, err.Error())
	}

	c.Response().Header().Set(HX_PUSH_URL, fmt.Sprintf("/record/%s?table=%s", rid, url.QueryEscape(name)))
	return renderScreen(c, screens.Record(name, record))
}

// UpdateRecordPopupView renders the edit popup through the edit action of the table
func (m *TableHandler) UpdateRecordPopupView(c echo.Context) error {
	name := c.QueryParam("table")
	rid, err := uuid.Parse(c.Param("rid"))
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid record RID: %v", err))
	}

	var record model.Record
	err = m.withTable(name, func(co *table.Coordinator) error {
		err := co.InvokeAction(table.ActionEdit, rid)
		if err != nil {
			return err
		}
		record, _ = co.Record(rid)
		return nil
	})
	if err != nil {
		return renderPopupOrJson(c, http.StatusNotFound, err.Error())
	}

	return renderPopup(c, screens.UpdateRecordPopup(name, record, model.GetRequestContext(c).CsrfToken))
}
