package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rfernando-oulu/eComSync/internal/config"
	"github.com/rfernando-oulu/eComSync/internal/observability"
	"github.com/rfernando-oulu/eComSync/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var (
	// Global flags
	dbType string
	dbDSN  string
)

var rootCmd = &cobra.Command{
	Use:   "ecomsync",
	Short: "eComSync - sunglasses catalog REST API",
	Long: `eComSync serves a manufacturer, product, option and order catalog over
a hypermedia JSON API.

Commands:
  serve        - Run the HTTP API
  init-db      - Create or upgrade the schema
  populate-db  - Load the sample catalog
  masterkey    - Issue a new admin access key`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return exportDatabaseFlags()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbType, "db-type", "", "Database type: sqlite, postgres or mysql (overrides ECOMSYNC_DATABASE_TYPE)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db", "", "Database DSN (overrides ECOMSYNC_DATABASE_DSN)")
}

// exportDatabaseFlags hands flag overrides to the config loader, which reads
// ECOMSYNC_* variables.
func exportDatabaseFlags() error {
	if dbType != "" {
		if err := os.Setenv("ECOMSYNC_DATABASE_TYPE", dbType); err != nil {
			return err
		}
	}
	if dbDSN != "" {
		if err := os.Setenv("ECOMSYNC_DATABASE_DSN", dbDSN); err != nil {
			return err
		}
	}
	return nil
}

// runTask starts a short-lived application with the database wired, runs
// invoke and shuts everything down again.
func runTask(ctx context.Context, invoke any, opts ...fx.Option) error {
	options := []fx.Option{
		config.Module,
		observability.Module,
		db.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx").WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
	}
	options = append(options, opts...)
	options = append(options, fx.Invoke(invoke))

	app := fx.New(options...)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStop()
	return app.Stop(stopCtx)
}
