package dataTable

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/siherrmann/dataTable/database"
	"github.com/siherrmann/dataTable/handler"
	"github.com/siherrmann/dataTable/helper"
	"github.com/siherrmann/dataTable/model"
	"github.com/siherrmann/dataTable/upload"

	"github.com/labstack/echo/v4"
	"github.com/siherrmann/queuer"
	qh "github.com/siherrmann/queuer/helper"
	qmodel "github.com/siherrmann/queuer/model"
)

// SeedTable is one table of a seed file.
type SeedTable struct {
	Table   string         `json:"table"`
	Records []model.Fields `json:"records"`
}

// TableServer initializes the table handler, sets up routes, and starts the Echo server.
func TableServer(config *helper.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queuerInstance := queuer.NewQueuer("data-table-server", config.MaxConcurrency)

	th, err := InitTableHandler(ctx, cancel, config, queuerInstance)
	if err != nil {
		log.Fatalf("Failed to initialize table handler: %v", err)
	}

	e := echo.New()
	e.HTTPErrorHandler = handler.HandleErrorView
	err = SetupRoutes(e, th, config)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	err = e.Start(":" + config.Port)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	<-ctx.Done()
	slog.Info("Shutting down table server")
}

// InitTableHandler creates the table handler with its filesystem and record database,
// seeds records from a JSON file if configured, registers the export task and starts the queuer.
func InitTableHandler(ctx context.Context, cancel context.CancelFunc, config *helper.Config, queuerInstance *queuer.Queuer) (*handler.TableHandler, error) {
	filesystem, err := upload.CreateFilesystemFromConfig(config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem: %w", err)
	}

	logger := helper.NewLogger(os.Stdout, slog.LevelInfo)

	db := &qh.Database{
		Name:     "record",
		Logger:   logger,
		Instance: queuerInstance.DB,
	}
	recordDB, err := database.NewRecordDBHandler(db, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create record database handler: %w", err)
	}

	if config.SeedJSON != "" {
		err := loadRecordsFromJSON(config.SeedJSON, recordDB, logger)
		if err != nil {
			logger.Warn("Failed to load records from JSON file", "file", config.SeedJSON, "error", err)
		}
	}

	th := handler.NewTableHandler(filesystem, recordDB, queuerInstance, config, logger)
	th.Queuer.AddTaskWithName(th.ExportCsvTask, handler.TASK_EXPORT_CSV)

	masterSettings := &qmodel.MasterSettings{
		MasterLockTimeout:     time.Minute * 1,
		MasterPollInterval:    time.Second * 10,
		WorkerStaleThreshold:  time.Minute * 5,
		WorkerDeleteThreshold: time.Minute * 100,
		JobStaleThreshold:     time.Minute * 10,
		JobDeleteThreshold:    time.Minute * 100,
	}
	th.Queuer.Start(ctx, cancel, masterSettings)

	return th, nil
}

func loadRecordsFromJSON(filePath string, recordDB database.RecordDBHandlerFunctions, logger *slog.Logger) error {
	// #nosec G304 -- Accepting file path from configuration is intentional and controlled.
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var tables []SeedTable
	err = json.Unmarshal(data, &tables)
	if err != nil {
		return err
	}

	total := 0
	for _, seed := range tables {
		for _, fields := range seed.Records {
			record := model.NewRecord(fields...)
			_, err := recordDB.InsertRecord(seed.Table, &record)
			if err != nil {
				logger.Warn("Failed to insert record", "table", seed.Table, "error", err)
				continue
			}
			total++
		}
		logger.Info("Table loaded from JSON", "table", seed.Table, "records", len(seed.Records))
	}

	logger.Info("Finished loading records from JSON", "file", filePath, "total", total)
	return nil
}
