package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rfernando-oulu/eComSync/internal/migration"
	"github.com/rfernando-oulu/eComSync/internal/seed"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var populateCmd = &cobra.Command{
	Use:   "populate-db",
	Short: "Load the sample catalog",
	Long: `Load the sample sunglasses catalog. Tables that already hold rows are
left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTask(cmd.Context(), func(conn *gorm.DB) error {
			if err := migration.Run(conn); err != nil {
				return err
			}
			res, err := seed.PopulateCatalog(cmd.Context(), conn)
			if err != nil {
				return err
			}
			printSeedResult(cmd, res)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(populateCmd)
}

func printSeedResult(cmd *cobra.Command, res seed.Result) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tINSERTED")
	fmt.Fprintf(w, "manufacturers\t%d\n", res.Manufacturers)
	fmt.Fprintf(w, "options\t%d\n", res.Options)
	fmt.Fprintf(w, "products\t%d\n", res.Products)
	fmt.Fprintf(w, "product_options\t%d\n", res.ProductOptions)
	fmt.Fprintf(w, "orders\t%d\n", res.Orders)
	_ = w.Flush()

	if len(res.Skipped) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped (already populated): %s\n", strings.Join(res.Skipped, ", "))
	}
}
