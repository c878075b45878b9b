package purchasing

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"par-manager/core/reconcile"
)

// RenderText writes the report as an order sheet: one block per vendor,
// one sub-block per material type, one aligned line per product.
func RenderText(w io.Writer, report *reconcile.Report) error {
	fmt.Fprintf(w, "Purchase list - %s\n", report.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))

	if report.Empty() {
		_, err := fmt.Fprintln(w, "\nNothing to order.")
		return err
	}

	for _, vendor := range report.Vendors {
		fmt.Fprintf(w, "\n%s\n%s\n", vendor.Name, strings.Repeat("=", len(vendor.Name)))
		for _, material := range vendor.MaterialTypes {
			fmt.Fprintf(w, "\n  %s\n", material.Name)

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "    SKU\tName\tPAR\tOn hand\tOrder\t")
			for _, line := range material.Lines {
				fmt.Fprintf(tw, "    %s\t%s\t%s\t%s\t%d\t\n",
					line.SKU, line.Name, line.Par, line.TotalOnHand, line.ToOrder)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "\n%d lines, %d units\n", report.TotalLines, report.TotalUnits)
	return err
}

// Text renders the report to a string.
func Text(report *reconcile.Report) string {
	var sb strings.Builder
	_ = RenderText(&sb, report)
	return sb.String()
}
