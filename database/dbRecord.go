package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/siherrmann/dataTable/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/siherrmann/queuer/helper"
)

// RecordDBHandlerFunctions defines the interface for Record database operations.
type RecordDBHandlerFunctions interface {
	CheckTableExistance() (bool, error)
	CreateTable() error
	DropTable() error
	InsertRecord(tableName string, record *model.Record) (*model.Record, error)
	UpdateRecord(record *model.Record) (*model.Record, error)
	DeleteRecord(rid uuid.UUID) error
	DeleteRecords(rids []uuid.UUID) (int64, error)
	SelectRecord(rid uuid.UUID) (*model.Record, error)
	SelectAllRecords(tableName string, lastID int, entries int) ([]model.Record, error)
	SelectAllRecordsBySearch(tableName string, search string, lastID int, entries int) ([]model.Record, error)
	SelectTableNames() ([]string, error)
}

// RecordDBHandler implements RecordDBHandlerFunctions and holds the database connection.
type RecordDBHandler struct {
	db *helper.Database
}

// NewRecordDBHandler creates a new instance of RecordDBHandler.
// If withTableDrop is true, it will drop the existing record table before creating a new one.
func NewRecordDBHandler(dbConnection *helper.Database, withTableDrop bool) (*RecordDBHandler, error) {
	if dbConnection == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	recordDbHandler := &RecordDBHandler{
		db: dbConnection,
	}

	if withTableDrop {
		err := recordDbHandler.DropTable()
		if err != nil {
			return nil, helper.NewError("drop table", err)
		}
	}

	err := recordDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	return recordDbHandler, nil
}

// CheckTableExistance checks if the 'record' table exists in the database.
func (r RecordDBHandler) CheckTableExistance() (bool, error) {
	recordExists, err := r.db.CheckTableExistance("record")
	if err != nil {
		return false, helper.NewError("record table", err)
	}
	return recordExists, nil
}

// CreateTable creates the 'record' table in the database.
// Fields are stored as JSON instead of JSONB so the key order survives.
func (r RecordDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
		CREATE TABLE IF NOT EXISTS record (
			id SERIAL PRIMARY KEY,
			rid UUID UNIQUE NOT NULL DEFAULT gen_random_uuid(),
			table_name VARCHAR(100) NOT NULL,
			fields JSON NOT NULL DEFAULT '{}'::json,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_record_rid ON record(rid);
		CREATE INDEX IF NOT EXISTS idx_record_table_name ON record(table_name);
	`

	_, err := r.db.Instance.ExecContext(ctx, query)
	if err != nil {
		return helper.NewError("create record table", err)
	}

	r.db.Logger.Info("Checked/created table record")

	return nil
}

// DropTable drops the 'record' table from the database.
func (r RecordDBHandler) DropTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `DROP TABLE IF EXISTS record`
	_, err := r.db.Instance.ExecContext(ctx, query)
	if err != nil {
		return helper.NewError("drop record table", err)
	}

	r.db.Logger.Info("Dropped table record")

	return nil
}

// InsertRecord inserts a record into the data of tableName.
// A record without RID gets a new one.
func (r RecordDBHandler) InsertRecord(tableName string, record *model.Record) (*model.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if tableName == "" {
		return nil, helper.NewError("insert record", fmt.Errorf("table name is empty"))
	}

	rid := record.RID
	if rid == uuid.Nil {
		rid = uuid.New()
	}

	newRecord := &model.Record{}
	query := `
		INSERT INTO record (
			rid,
			table_name,
			fields
		) VALUES ($1, $2, $3)
		RETURNING
			id,
			rid,
			fields`

	err := r.db.Instance.QueryRowContext(ctx, query, rid, tableName, record.Fields).Scan(
		&newRecord.ID,
		&newRecord.RID,
		&newRecord.Fields,
	)
	if err != nil {
		return nil, helper.NewError("insert record", err)
	}

	return newRecord, nil
}

// UpdateRecord replaces the fields of an existing record.
func (r RecordDBHandler) UpdateRecord(record *model.Record) (*model.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	updatedRecord := &model.Record{}
	query := `
		UPDATE record SET
			fields = $1,
			updated_at = NOW()
		WHERE rid = $2
		RETURNING
			id,
			rid,
			fields`

	err := r.db.Instance.QueryRowContext(ctx, query, record.Fields, record.RID).Scan(
		&updatedRecord.ID,
		&updatedRecord.RID,
		&updatedRecord.Fields,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, helper.NewError("record not found", fmt.Errorf("no record with rid %s", record.RID))
		}
		return nil, helper.NewError("update record", err)
	}

	return updatedRecord, nil
}

// DeleteRecord deletes a record by RID.
func (r RecordDBHandler) DeleteRecord(rid uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `DELETE FROM record WHERE rid = $1`
	result, err := r.db.Instance.ExecContext(ctx, query, rid)
	if err != nil {
		return helper.NewError("delete record", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return helper.NewError("get rows affected", err)
	}

	if rowsAffected == 0 {
		return helper.NewError("record not found", fmt.Errorf("no record with rid %s", rid))
	}

	return nil
}

// DeleteRecords deletes all records with one of rids and returns how many were deleted.
func (r RecordDBHandler) DeleteRecords(rids []uuid.UUID) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if len(rids) == 0 {
		return 0, nil
	}

	ridStrings := make([]string, len(rids))
	for i, rid := range rids {
		ridStrings[i] = rid.String()
	}

	query := `DELETE FROM record WHERE rid = ANY($1::uuid[])`
	result, err := r.db.Instance.ExecContext(ctx, query, pq.Array(ridStrings))
	if err != nil {
		return 0, helper.NewError("delete records", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, helper.NewError("get rows affected", err)
	}

	return rowsAffected, nil
}

// SelectRecord retrieves a record by RID from the database.
func (r RecordDBHandler) SelectRecord(rid uuid.UUID) (*model.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record := &model.Record{}
	query := `
		SELECT
			id,
			rid,
			fields
		FROM record
		WHERE rid = $1
	`

	err := r.db.Instance.QueryRowContext(ctx, query, rid).Scan(
		&record.ID,
		&record.RID,
		&record.Fields,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, helper.NewError("record not found", fmt.Errorf("no record with rid %s", rid))
		}
		return nil, helper.NewError("select record", err)
	}

	return record, nil
}

// SelectAllRecords retrieves the records of tableName in insertion order with pagination.
func (r RecordDBHandler) SelectAllRecords(tableName string, lastID int, entries int) ([]model.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
		SELECT
			id,
			rid,
			fields
		FROM record
		WHERE table_name = $1
			AND id > $2
		ORDER BY id ASC
		LIMIT $3
	`

	rows, err := r.db.Instance.QueryContext(ctx, query, tableName, lastID, entries)
	if err != nil {
		return nil, helper.NewError("select all records", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// SelectAllRecordsBySearch retrieves the records of tableName with any field value
// containing search, ignoring case, in insertion order with pagination.
func (r RecordDBHandler) SelectAllRecordsBySearch(tableName string, search string, lastID int, entries int) ([]model.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `
		SELECT
			record.id,
			record.rid,
			record.fields
		FROM record
		WHERE record.table_name = $1
			AND record.id > $3
			AND EXISTS (
				SELECT 1 FROM json_each_text(record.fields) AS field
				WHERE field.value ILIKE '%' || $2 || '%'
			)
		ORDER BY record.id ASC
		LIMIT $4
	`

	rows, err := r.db.Instance.QueryContext(ctx, query, tableName, search, lastID, entries)
	if err != nil {
		return nil, helper.NewError("select records by search", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// SelectTableNames returns the names of all tables with at least one record.
func (r RecordDBHandler) SelectTableNames() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `SELECT DISTINCT table_name FROM record ORDER BY table_name ASC`
	rows, err := r.db.Instance.QueryContext(ctx, query)
	if err != nil {
		return nil, helper.NewError("select table names", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		err := rows.Scan(&name)
		if err != nil {
			return nil, helper.NewError("scan table name", err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, helper.NewError("rows iteration", err)
	}

	return names, nil
}

func scanRecords(rows *sql.Rows) ([]model.Record, error) {
	records := []model.Record{}
	for rows.Next() {
		record := model.Record{}
		err := rows.Scan(
			&record.ID,
			&record.RID,
			&record.Fields,
		)
		if err != nil {
			return nil, helper.NewError("scan record", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, helper.NewError("rows iteration", err)
	}

	return records, nil
}
