package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/siherrmann/dataTable/table"
	"github.com/siherrmann/dataTable/view/components"
	"github.com/siherrmann/dataTable/view/screens"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	vm "github.com/siherrmann/validator/model"
	"github.com/spf13/cast"
)

// =======View Handlers=======

// TablesView renders the index of all tables
func (m *TableHandler) TablesView(c echo.Context) error {
	names, err := m.recordDB.SelectTableNames()
	if err != nil {
		return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve tables: %v", err))
	}

	c.Response().Header().Set(HX_PUSH_URL, "/")
	return renderScreen(c, screens.Tables(names))
}

// TableView renders the table screen, optionally applying search, pageSize and page from the query
func (m *TableHandler) TableView(c echo.Context) error {
	name := c.Param("name")

	var props components.TableProps
	err := m.withTable(name, func(co *table.Coordinator) error {
		if search := c.QueryParam("search"); search != "" {
			co.SetSearch(search)
		}
		if pageSize := c.QueryParam("pageSize"); pageSize != "" {
			size, err := cast.ToIntE(pageSize)
			if err != nil {
				return fmt.Errorf("%w: page size %q", table.ErrInvalidArgument, pageSize)
			}
			if err := co.SetPageSize(size); err != nil {
				return err
			}
		}
		if page := c.QueryParam("page"); page != "" {
			index, err := cast.ToIntE(page)
			if err != nil {
				return fmt.Errorf("%w: page %q", table.ErrInvalidArgument, page)
			}
			if err := co.SetPage(index); err != nil {
				return err
			}
		}
		props = m.tableProps(c, name, co)
		return nil
	})
	if err != nil {
		return renderTableError(c, err)
	}

	c.Response().Header().Set(HX_PUSH_URL, "/table/"+url.PathEscape(name))
	return renderScreen(c, screens.Table(props))
}

// =======Table State Handlers=======

// Search sets the search query of the table
func (m *TableHandler) Search(c echo.Context) error {
	search := c.FormValue("search")
	return m.updateTable(c, func(co *table.Coordinator) error {
		co.SetSearch(search)
		return nil
	})
}

// SetPageSize sets the page size of the table
func (m *TableHandler) SetPageSize(c echo.Context) error {
	parameters := map[string]any{}
	err := m.validator.UnmapOrUnmarshalValidateAndUpdateWithValidation(c.Request(), &parameters, []vm.Validation{
		{Key: "pageSize", Type: vm.Int, Requirement: "min1"},
	})
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
	}

	size, err := cast.ToIntE(parameters["pageSize"])
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid page size: %v", err))
	}

	return m.updateTable(c, func(co *table.Coordinator) error {
		return co.SetPageSize(size)
	})
}

// SetPage moves the table to a page
func (m *TableHandler) SetPage(c echo.Context) error {
	parameters := map[string]any{}
	err := m.validator.UnmapOrUnmarshalValidateAndUpdateWithValidation(c.Request(), &parameters, []vm.Validation{
		{Key: "page", Type: vm.Int, Requirement: "min0"},
	})
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
	}

	index, err := cast.ToIntE(parameters["page"])
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid page: %v", err))
	}

	return m.updateTable(c, func(co *table.Coordinator) error {
		return co.SetPage(index)
	})
}

// Sort sorts the table by a column, an empty key clears the sort
func (m *TableHandler) Sort(c echo.Context) error {
	key := c.FormValue("key")
	desc := cast.ToBool(c.FormValue("desc"))
	return m.updateTable(c, func(co *table.Coordinator) error {
		return co.SetSort(key, desc)
	})
}

// ToggleColumn shows or hides a data column
func (m *TableHandler) ToggleColumn(c echo.Context) error {
	key := c.FormValue("key")
	if key == "" {
		return renderPopupOrJson(c, http.StatusBadRequest, "Column key is required")
	}

	return m.updateTable(c, func(co *table.Coordinator) error {
		co.ToggleColumn(key)
		return nil
	})
}

// ToggleSelection toggles the selection of a single record
func (m *TableHandler) ToggleSelection(c echo.Context) error {
	rid, err := uuid.Parse(c.Param("rid"))
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid record RID: %v", err))
	}

	return m.updateTable(c, func(co *table.Coordinator) error {
		record, ok := co.Record(rid)
		if !ok {
			return fmt.Errorf("%w: record %v not found", table.ErrInvalidArgument, rid)
		}
		co.ToggleSelection(record)
		return nil
	})
}

// SelectPage selects or deselects all rows of the current page
func (m *TableHandler) SelectPage(c echo.Context) error {
	selected := cast.ToBool(c.FormValue("selected"))
	return m.updateTable(c, func(co *table.Coordinator) error {
		co.ToggleSelectAllOnPage(selected)
		return nil
	})
}

// DeleteSelected deletes the selected records from the database
func (m *TableHandler) DeleteSelected(c echo.Context) error {
	name := c.Param("name")
	return m.updateTable(c, func(co *table.Coordinator) error {
		records := co.Selected()
		if len(records) == 0 {
			return nil
		}

		rids := make([]uuid.UUID, 0, len(records))
		for _, record := range records {
			rids = append(rids, record.RID)
		}

		deleted, err := m.recordDB.DeleteRecords(rids)
		if err != nil {
			return fmt.Errorf("failed to delete selected records: %w", err)
		}
		co.CommitDeletion()
		m.logger.Info("Deleted selected records", "table", name, "deleted", deleted)

		return m.reload(name, co)
	})
}

// DeleteRecord deletes a single record through the delete action of the table
func (m *TableHandler) DeleteRecord(c echo.Context) error {
	name := c.Param("name")
	rid, err := uuid.Parse(c.Param("rid"))
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid record RID: %v", err))
	}

	return m.updateTable(c, func(co *table.Coordinator) error {
		record, err := co.ActionRecord(table.ActionDelete, rid)
		if err != nil {
			return err
		}

		err = m.recordDB.DeleteRecord(record.RID)
		if err != nil {
			return fmt.Errorf("failed to delete record %v: %w", record.RID, err)
		}

		err = co.InvokeAction(table.ActionDelete, rid)
		if err != nil {
			return err
		}
		return m.reload(name, co)
	})
}

// updateTable applies fn to the table and re-renders it.
func (m *TableHandler) updateTable(c echo.Context, fn func(co *table.Coordinator) error) error {
	name := c.Param("name")

	var props components.TableProps
	err := m.withTable(name, func(co *table.Coordinator) error {
		err := fn(co)
		if err != nil {
			return err
		}
		props = m.tableProps(c, name, co)
		return nil
	})
	if err != nil {
		return renderTableError(c, err)
	}

	return render(c, components.Table(props))
}

func renderTableError(c echo.Context, err error) error {
	if errors.Is(err, table.ErrInvalidArgument) {
		return renderPopupOrJson(c, http.StatusBadRequest, err.Error())
	}
	return renderPopupOrJson(c, http.StatusInternalServerError, err.Error())
}
