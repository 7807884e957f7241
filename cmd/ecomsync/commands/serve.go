package commands

import (
	"os"

	"github.com/rfernando-oulu/eComSync/internal/clock"
	"github.com/rfernando-oulu/eComSync/internal/config"
	"github.com/rfernando-oulu/eComSync/internal/migration"
	"github.com/rfernando-oulu/eComSync/internal/observability"
	"github.com/rfernando-oulu/eComSync/internal/server"
	"github.com/rfernando-oulu/eComSync/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var httpAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the catalog API. The schema is migrated before the listener starts.

Examples:
  ecomsync serve                         # Listen on the configured address
  ecomsync serve --addr :8080            # Override the listen address
  ecomsync serve --db-type postgres --db "postgres://..."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if httpAddr != "" {
			if err := os.Setenv("ECOMSYNC_HTTP_ADDR", httpAddr); err != nil {
				return err
			}
		}

		app := fx.New(
			config.Module,
			observability.Module,
			db.Module,
			clock.Module,
			migration.Module,
			server.Module,
		)
		if err := app.Err(); err != nil {
			return err
		}
		app.Run()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&httpAddr, "addr", "", "Listen address (overrides ECOMSYNC_HTTP_ADDR)")
}
