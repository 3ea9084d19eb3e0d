package handler

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/siherrmann/dataTable/database"
	"github.com/siherrmann/dataTable/helper"
	"github.com/siherrmann/dataTable/model"
	"github.com/siherrmann/dataTable/table"
	"github.com/siherrmann/dataTable/upload"
	"github.com/siherrmann/dataTable/view/components"

	"github.com/labstack/echo/v4"
	"github.com/siherrmann/queuer"
	"github.com/siherrmann/validator"
)

// MAX_RECORDS is the number of records read per database query.
const MAX_RECORDS = 10000

const TASK_EXPORT_CSV = "export-csv"

type TableHandler struct {
	filesystem upload.Filesystem
	validator  *validator.Validator
	recordDB   database.RecordDBHandlerFunctions
	Queuer     *queuer.Queuer
	config     *helper.Config
	logger     *slog.Logger

	pageSize int

	mu     sync.Mutex
	tables map[string]*tableState
}

// tableState serializes all access to the coordinator of one table.
type tableState struct {
	mu          sync.Mutex
	loaded      bool
	coordinator *table.Coordinator
}

func NewTableHandler(filesystem upload.Filesystem, recordDB database.RecordDBHandlerFunctions, queuerInstance *queuer.Queuer, config *helper.Config, logger *slog.Logger) *TableHandler {
	if config == nil {
		config = &helper.Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TableHandler{
		filesystem: filesystem,
		validator:  validator.NewValidator(),
		recordDB:   recordDB,
		Queuer:     queuerInstance,
		config:     config,
		logger:     logger,
		pageSize:   MAX_RECORDS,
		tables:     map[string]*tableState{},
	}
}

// Health check handler
func (m *TableHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "data-table",
	})
}

// withTable runs fn with the locked coordinator of the named table,
// loading its records from the database on first use.
func (m *TableHandler) withTable(name string, fn func(co *table.Coordinator) error) error {
	m.mu.Lock()
	state, ok := m.tables[name]
	if !ok {
		state = &tableState{
			coordinator: table.NewCoordinator(nil, m.actions(name), m.logger.With("table", name)),
		}
		m.tables[name] = state
	}
	m.mu.Unlock()

	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.loaded {
		state.coordinator.SetRecords(nil, true)
		err := m.reload(name, state.coordinator)
		if err != nil {
			return err
		}
		state.loaded = true
	}

	return fn(state.coordinator)
}

func (m *TableHandler) reload(name string, co *table.Coordinator) error {
	records, err := m.selectAllRecords(name)
	if err != nil {
		return err
	}
	co.SetRecords(records, false)
	return nil
}

// selectAllRecords pages through every record of a table in insertion order.
func (m *TableHandler) selectAllRecords(name string) ([]model.Record, error) {
	records := []model.Record{}
	lastId := 0
	for {
		page, err := m.recordDB.SelectAllRecords(name, lastId, m.pageSize)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if len(page) < m.pageSize {
			return records, nil
		}
		lastId = page[len(page)-1].ID
	}
}

// invalidate drops the loaded records of a table so the next access reloads them.
func (m *TableHandler) invalidate(name string) {
	m.mu.Lock()
	state, ok := m.tables[name]
	m.mu.Unlock()
	if !ok {
		return
	}

	state.mu.Lock()
	state.loaded = false
	state.mu.Unlock()
}

func (m *TableHandler) actions(name string) model.Actions {
	actions := model.Actions{
		OnSelected: func(records []model.Record) {
			m.logger.Debug("Selection changed", "table", name, "selected", len(records))
		},
	}
	if m.config.Actions.Details {
		actions.OnDetails = func(record model.Record) {
			m.logger.Debug("Record details opened", "table", name, "rid", record.RID)
		}
	}
	if m.config.Actions.Edit {
		actions.OnEdit = func(record model.Record) {
			m.logger.Debug("Record edit opened", "table", name, "rid", record.RID)
		}
	}
	if m.config.Actions.Delete {
		actions.OnDelete = func(record model.Record) {
			m.logger.Info("Record deleted", "table", name, "rid", record.RID)
		}
	}
	return actions
}

func (m *TableHandler) tableProps(c echo.Context, name string, co *table.Coordinator) components.TableProps {
	view := co.View()
	dataColumns := table.DataColumns(co.Columns())
	hidden := map[string]bool{}
	for _, column := range dataColumns {
		if co.IsHidden(column.Key) {
			hidden[column.Key] = true
		}
	}

	return components.TableProps{
		Name:            name,
		Search:          co.Search(),
		PageSizes:       table.PAGE_SIZES,
		Sort:            co.Sort(),
		DataColumns:     dataColumns,
		Hidden:          hidden,
		View:            view,
		HeaderSelection: table.PageSelection(view),
		SelectionCount:  co.SelectionCount(),
		Controls:        table.ActionControls(co.Actions()),
		Loading:         co.Loading(),
		Style:           m.config.Style,
		CsrfToken:       model.GetRequestContext(c).CsrfToken,
	}
}
