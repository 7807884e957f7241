package commands

import (
	"fmt"

	"github.com/rfernando-oulu/eComSync/internal/migration"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create or upgrade the schema",
	Long: `Create the catalog tables. Running it again on an up to date database
is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTask(cmd.Context(), func(conn *gorm.DB) error {
			if err := migration.Run(conn); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database initialized (%s)\n", conn.Dialector.Name())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
