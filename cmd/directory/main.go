// Command directory runs the business directory API.
//
//	directory serve     start the HTTP server and the job workers
//	directory migrate   apply pending database migrations and exit
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/directory/internal/config"
	"github.com/deppfellow/directory/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "directory",
		Short:         "Business directory API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the application logger.
// The returned service must be shut down to flush New Relic data.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}
