package main

import (
	"fmt"

	"github.com/snapmd/snapmd/internal/cli"
	"github.com/snapmd/snapmd/internal/utils"
)

// main is the entry point for the snapmd command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf("initialize logger: %w", loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal("snapmd failed: " + applicationExecutionError.Error())
	}
}
