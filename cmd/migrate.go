package cmd

import (
	"fmt"

	"par-manager/feature/inventory"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(true, false)
		if err != nil {
			return err
		}
		defer rt.close()

		if err := inventory.Migrate(rt.db); err != nil {
			return err
		}
		rt.logger.Info("Schema is up to date")
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
