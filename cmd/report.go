package cmd

import (
	"fmt"
	"os"

	"par-manager/feature/purchasing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportXLSX    string
	reportArchive bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the purchase list",
	Long: `Reconciles on-hand stock against PAR levels and prints what to order,
grouped by vendor and material type. With --xlsx the list is written as a
workbook instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := bootstrap(true, true)
		if err != nil {
			return err
		}
		defer rt.close()

		svc := rt.purchasingService()

		if reportXLSX == "" {
			report, err := svc.Report(ctx)
			if err != nil {
				return err
			}
			return purchasing.RenderText(cmd.OutOrStdout(), report)
		}

		export, err := svc.Export(ctx, reportArchive)
		if err != nil {
			return err
		}
		if err := os.WriteFile(reportXLSX, export.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", reportXLSX, err)
		}
		rt.logger.Info("Purchase list written",
			zap.String("file", reportXLSX),
			zap.String("archive", export.Key),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportXLSX, "xlsx", "", "Write the purchase list workbook to this path")
	reportCmd.Flags().BoolVar(&reportArchive, "archive", false, "Also upload the workbook to the exports folder")
}
