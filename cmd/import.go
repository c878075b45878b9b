package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"par-manager/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importMode   string
	importDryRun bool
	importYes    bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Bulk import products from a CSV, TSV, XLSX or JSON file",
	Long: `Previews the import against the current catalog, asks for confirmation
and commits it. The summary printed before confirming is exactly what the
commit will report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		rt, err := bootstrap(true, true)
		if err != nil {
			return err
		}
		defer rt.close()

		svc, err := rt.importService()
		if err != nil {
			return err
		}
		mode, err := svc.Mode(importMode)
		if err != nil {
			return err
		}

		name := filepath.Base(path)
		preview, err := svc.ImportFile(ctx, name, data, mode, true)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Preview of %s (mode %s)\n", name, mode)
		printSummary(out, preview)

		if importDryRun {
			return nil
		}
		if !importYes && !confirm(cmd.InOrStdin(), out, "Commit this import?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}

		result, err := svc.ImportFile(ctx, name, data, mode, false)
		if err != nil {
			return err
		}
		if result.Failed() {
			printSummary(out, result)
			return fmt.Errorf("import stopped at stage %s: %w", result.FailedStage, result.Error)
		}

		rt.logger.Info("Import finished", zap.String("file", name), zap.String("archive", result.Archive))
		fmt.Fprintln(out, "Committed.")
		if result.Archive != "" {
			fmt.Fprintf(out, "Archived as %s\n", result.Archive)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importMode, "mode", "", "Dedup mode for existing SKUs (update, skip); defaults to import.default_mode")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Only print the preview")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Commit without asking")
}

func printSummary(w io.Writer, r *importer.Result) {
	s := r.Summary
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		label string
		value int
	}{
		{"Rows received", s.RowsReceived},
		{"Rows accepted", s.RowsAccepted},
		{"Locations created", s.LocationsCreated},
		{"Material types created", s.MaterialTypesCreated},
		{"Vendors created", s.VendorsCreated},
		{"Products inserted", s.ProductsInserted},
		{"Products updated", s.ProductsUpdated},
		{"Product updates skipped", s.ProductUpdatesSkipped},
		{"Assignments added", s.AssignmentsAdded},
		{"On-hand upserts", s.OnHandUpserts},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "  %s\t%d\n", row.label, row.value)
	}
	if r.DefaultLocation != "" {
		fmt.Fprintf(tw, "  Default location\t%s\n", r.DefaultLocation)
	}
	if r.Failed() {
		fmt.Fprintf(tw, "  Failed stage\t%s\n", r.FailedStage)
	}
	_ = tw.Flush()
}

// confirm asks a yes/no question and defaults to no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
