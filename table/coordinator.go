package table

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/siherrmann/dataTable/engine"
	"github.com/siherrmann/dataTable/model"
)

var ErrInvalidArgument = errors.New("invalid argument")

// PAGE_SIZES are the page sizes a table offers.
var PAGE_SIZES = []int{5, 10, 20, 50, 100}

const DEFAULT_PAGE_SIZE = 10

// Renderer sorts and paginates the data of a table.
type Renderer interface {
	Render(data []model.Record, columns []model.Column, state model.ViewState) model.View
}

type SelectionState int

const (
	SelectionNone SelectionState = iota
	SelectionSome
	SelectionAll
)

// Coordinator holds the state of one table: search, page size, page, sorting,
// hidden columns and the selection. It is not safe for concurrent use.
type Coordinator struct {
	renderer Renderer
	actions  model.Actions
	logger   *slog.Logger

	records []model.Record
	loading bool
	// generation changes whenever records are replaced.
	generation uint64

	search    string
	pageSize  int
	pageIndex int
	sort      model.SortState
	hidden    map[string]bool
	selection map[uuid.UUID]struct{}

	cached           bool
	cachedSearch     string
	cachedGeneration uint64
	filtered         []model.Record
	columns          []model.Column
}

// NewCoordinator creates a coordinator rendering through renderer.
// A nil renderer uses the default engine and a nil logger uses slog.Default.
func NewCoordinator(renderer Renderer, actions model.Actions, logger *slog.Logger) *Coordinator {
	if renderer == nil {
		renderer = engine.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		renderer:  renderer,
		actions:   actions,
		logger:    logger,
		pageSize:  DEFAULT_PAGE_SIZE,
		hidden:    map[string]bool{},
		selection: map[uuid.UUID]struct{}{},
	}
}

// SetRecords replaces the data of the table. The selection is kept.
func (c *Coordinator) SetRecords(records []model.Record, loading bool) {
	c.records = records
	c.loading = loading
	c.generation++
}

func (c *Coordinator) Records() []model.Record {
	return c.records
}

func (c *Coordinator) Loading() bool {
	return c.loading
}

func (c *Coordinator) Search() string {
	return c.search
}

func (c *Coordinator) PageSize() int {
	return c.pageSize
}

func (c *Coordinator) PageIndex() int {
	return c.pageIndex
}

func (c *Coordinator) Sort() model.SortState {
	return c.sort
}

func (c *Coordinator) Actions() model.Actions {
	return c.actions
}

// SetSearch replaces the search query and goes back to the first page.
func (c *Coordinator) SetSearch(text string) {
	c.search = text
	c.pageIndex = 0
}

// SetPageSize only accepts one of PAGE_SIZES.
func (c *Coordinator) SetPageSize(n int) error {
	if !slices.Contains(PAGE_SIZES, n) {
		return fmt.Errorf("%w: page size %d not in %v", ErrInvalidArgument, n, PAGE_SIZES)
	}
	c.pageSize = n
	c.pageIndex = 0
	return nil
}

func (c *Coordinator) SetPage(index int) error {
	if index < 0 {
		return fmt.Errorf("%w: page index %d", ErrInvalidArgument, index)
	}
	c.pageIndex = index
	return nil
}

// SetSort sorts by a data column. An empty key removes the sorting.
func (c *Coordinator) SetSort(key string, desc bool) error {
	if key == "" {
		c.sort = model.SortState{}
		return nil
	}
	for _, column := range c.Columns() {
		if column.Key == key && column.IsData() && column.Sortable {
			c.sort = model.SortState{Key: key, Desc: desc}
			return nil
		}
	}
	return fmt.Errorf("%w: column %s is not sortable", ErrInvalidArgument, key)
}

// ToggleColumn hides or shows a data column.
func (c *Coordinator) ToggleColumn(key string) {
	if c.hidden[key] {
		delete(c.hidden, key)
	} else {
		c.hidden[key] = true
	}
}

func (c *Coordinator) IsHidden(key string) bool {
	return c.hidden[key]
}

// Filtered returns the records matching the search. The result is reused
// as long as neither the search nor the records change.
func (c *Coordinator) Filtered() []model.Record {
	c.derive()
	return c.filtered
}

// Columns returns the columns derived from the filtered records.
func (c *Coordinator) Columns() []model.Column {
	c.derive()
	return c.columns
}

func (c *Coordinator) derive() {
	if c.cached && c.cachedSearch == c.search && c.cachedGeneration == c.generation {
		return
	}
	filtered := Filter(c.records, c.search)
	if !c.cached || !sameSlice(filtered, c.filtered) {
		c.columns = DeriveColumns(filtered)
	}
	c.filtered = filtered
	c.cached = true
	c.cachedSearch = c.search
	c.cachedGeneration = c.generation
}

func sameSlice(a, b []model.Record) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

// View hands the filtered records to the renderer and returns the current page.
func (c *Coordinator) View() model.View {
	view := c.renderer.Render(c.Filtered(), c.Columns(), model.ViewState{
		PageIndex:  c.pageIndex,
		PageSize:   c.pageSize,
		Sort:       c.sort,
		Hidden:     c.hidden,
		IsSelected: c.IsSelected,
	})
	c.pageIndex = view.PageIndex
	return view
}

func (c *Coordinator) IsSelected(rid uuid.UUID) bool {
	_, ok := c.selection[rid]
	return ok
}

// ToggleSelection flips the membership of record in the selection.
func (c *Coordinator) ToggleSelection(record model.Record) {
	if c.IsSelected(record.RID) {
		delete(c.selection, record.RID)
	} else {
		c.selection[record.RID] = struct{}{}
	}
	c.notifySelected()
}

// ToggleSelectAllOnPage sets the membership of the rows on the current page only.
func (c *Coordinator) ToggleSelectAllOnPage(selected bool) {
	for _, row := range c.View().Rows {
		if selected {
			c.selection[row.Record.RID] = struct{}{}
		} else {
			delete(c.selection, row.Record.RID)
		}
	}
	c.notifySelected()
}

// PageSelection is the state of the header checkbox for the current page.
func (c *Coordinator) PageSelection() SelectionState {
	return PageSelection(c.View())
}

// PageSelection reports whether none, some or all rows of view are selected.
func PageSelection(view model.View) SelectionState {
	selected := 0
	for _, row := range view.Rows {
		if row.Selected {
			selected++
		}
	}
	switch {
	case selected == 0:
		return SelectionNone
	case selected == len(view.Rows):
		return SelectionAll
	default:
		return SelectionSome
	}
}

// Selected returns the selected records in data order.
// Selected identities that are no longer part of the data are skipped.
func (c *Coordinator) Selected() []model.Record {
	selected := []model.Record{}
	for _, record := range c.records {
		if c.IsSelected(record.RID) {
			selected = append(selected, record)
		}
	}
	return selected
}

// SelectionCount counts the selected records that are part of the data.
func (c *Coordinator) SelectionCount() int {
	return len(c.Selected())
}

func (c *Coordinator) ClearSelection() {
	clear(c.selection)
	c.notifySelected()
}

// CommitDeletion returns the selected records and clears the selection.
// Removing the records from the data is left to the caller.
func (c *Coordinator) CommitDeletion() []model.Record {
	selected := c.Selected()
	clear(c.selection)
	c.notifySelected()
	return selected
}

// Record looks up a record of the data by its RID.
func (c *Coordinator) Record(rid uuid.UUID) (model.Record, bool) {
	for _, record := range c.records {
		if record.RID == rid {
			return record, true
		}
	}
	return model.Record{}, false
}

// ActionRecord returns the record with rid if the row action control is available.
func (c *Coordinator) ActionRecord(control ActionControl, rid uuid.UUID) (model.Record, error) {
	callback := c.actionCallback(control)
	if callback == nil {
		return model.Record{}, fmt.Errorf("%w: action %s is not available", ErrInvalidArgument, control)
	}

	record, ok := c.Record(rid)
	if !ok {
		return model.Record{}, fmt.Errorf("%w: record %v not found", ErrInvalidArgument, rid)
	}
	return record, nil
}

// InvokeAction calls the row callback of control for the record with rid.
func (c *Coordinator) InvokeAction(control ActionControl, rid uuid.UUID) error {
	record, err := c.ActionRecord(control, rid)
	if err != nil {
		return err
	}
	c.actionCallback(control)(record)
	return nil
}

func (c *Coordinator) actionCallback(control ActionControl) func(model.Record) {
	switch control {
	case ActionDetails:
		return c.actions.OnDetails
	case ActionEdit:
		return c.actions.OnEdit
	case ActionDelete:
		return c.actions.OnDelete
	}
	return nil
}

func (c *Coordinator) notifySelected() {
	if c.actions.OnSelected != nil {
		c.actions.OnSelected(c.Selected())
	}
}

// ExportCsv renders records as CSV.
func (c *Coordinator) ExportCsv(records []model.Record) []byte {
	return ExportCsv(records)
}

// Export writes the filtered records as CSV into sink.
// Failures are logged and leave the table state untouched.
func (c *Coordinator) Export(ctx context.Context, sink ArtifactSink) error {
	err := WriteCsv(ctx, sink, c.Filtered())
	if err != nil {
		c.logger.Error("Failed to export table", "error", err)
		return err
	}
	c.logger.Info("Exported table", "file", EXPORT_FILENAME, "rows", len(c.Filtered()))
	return nil
}
