package commands

import (
	"fmt"

	"github.com/rfernando-oulu/eComSync/internal/apikey"
	apikeydomain "github.com/rfernando-oulu/eComSync/internal/apikey/domain"
	"github.com/rfernando-oulu/eComSync/internal/migration"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var masterKeyCmd = &cobra.Command{
	Use:   "masterkey",
	Short: "Issue a new admin access key",
	Long: `Replace the admin access key and print the new value. The key is
stored hashed and cannot be shown again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTask(cmd.Context(), func(conn *gorm.DB, svc apikeydomain.Service) error {
			if err := migration.Run(conn); err != nil {
				return err
			}
			key, err := svc.GenerateMasterKey(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		}, apikey.Module)
	},
}

func init() {
	rootCmd.AddCommand(masterKeyCmd)
}
