package dataTable

import (
	"net/http"

	"github.com/siherrmann/dataTable/handler"
	"github.com/siherrmann/dataTable/helper"
	mw "github.com/siherrmann/dataTable/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupRoutes configures all view and API routes of the table service
func SetupRoutes(e *echo.Echo, h *handler.TableHandler, config *helper.Config) error {
	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	// Custom Middleware
	m, err := mw.NewMiddleware(mw.Options{
		CsrfKey:        config.CsrfKey,
		TrustedOrigins: config.TrustedOrigins,
		SecureCookie:   config.SecureCookie,
	})
	if err != nil {
		return err
	}
	e.Use(m.RequestContextMiddleware)

	// View routes
	e.GET("/health", h.HealthCheck)
	e.GET("/", h.TablesView, m.CsrfMiddleware())
	e.GET("/table/:name", h.TableView, m.CsrfMiddleware())
	e.GET("/record/:rid", h.RecordView, m.CsrfMiddleware())
	e.GET("/record/:rid/updateRecordPopup", h.UpdateRecordPopupView, m.CsrfMiddleware())
	e.GET("/exports", h.ExportsView, m.CsrfMiddleware())

	// API routes
	api := e.Group("/api")

	// Table state changes come from the rendered table and carry its CSRF token
	tables := api.Group("/table/:name", m.CsrfMiddleware())
	tables.POST("/search", h.Search)
	tables.POST("/pageSize", h.SetPageSize)
	tables.POST("/page", h.SetPage)
	tables.POST("/sort", h.Sort)
	tables.POST("/toggleColumn", h.ToggleColumn)
	tables.POST("/toggleSelection/:rid", h.ToggleSelection)
	tables.POST("/selectPage", h.SelectPage)
	tables.POST("/deleteSelected", h.DeleteSelected)
	tables.POST("/deleteRecord/:rid", h.DeleteRecord)
	tables.POST("/updateRecord/:rid", h.UpdateRecord)
	tables.POST("/importCsv", h.ImportCsv)
	tables.POST("/exportJob", h.ExportJob)

	records := api.Group("/table/:name")
	records.GET("/export", h.Export)
	records.GET("/getRecords", h.GetRecords)
	records.POST("/addRecord", h.AddRecord)

	exports := api.Group("/export", m.CsrfMiddleware())
	exports.GET("/download", h.DownloadExport)
	exports.POST("/deleteExport/:filename", h.DeleteExport)

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))

	return nil
}
