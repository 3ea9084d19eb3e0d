package main

import (
	"log"

	"github.com/siherrmann/dataTable"
	"github.com/siherrmann/dataTable/helper"
)

// main is the entry point of the table service. It loads the configuration from the
// YAML file in DATATABLE_CONFIG (optional) and DATATABLE_* environment variables.
func main() {
	config, err := helper.LoadConfig(helper.ConfigPath())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dataTable.TableServer(config)
}
