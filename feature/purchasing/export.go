package purchasing

import (
	"bytes"
	"fmt"

	"par-manager/core/reconcile"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the purchase list is written to.
const SheetName = "Purchase List"

// XLSXContentType is the MIME type of exported workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeader = []any{"Vendor", "Material Type", "SKU", "Name", "PAR", "On Hand", "To Order"}

// ExportName is the file name of an export generated for report.
func ExportName(report *reconcile.Report) string {
	return fmt.Sprintf("purchase_list_%s.xlsx", report.GeneratedAt.UTC().Format("20060102_150405"))
}

// WriteXLSX renders the report as a single-sheet workbook, one row per
// order line in report order, followed by a totals row.
func WriteXLSX(report *reconcile.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := exportHeader
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	row := 2
	for _, vendor := range report.Vendors {
		for _, material := range vendor.MaterialTypes {
			for _, line := range material.Lines {
				values := []any{
					vendor.Name,
					material.Name,
					line.SKU,
					line.Name,
					line.Par.Float64(),
					line.TotalOnHand.Float64(),
					line.ToOrder,
				}
				cell, err := excelize.CoordinatesToCellName(1, row)
				if err != nil {
					return nil, err
				}
				if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
					return nil, fmt.Errorf("failed to write row %d: %w", row, err)
				}
				row++
			}
		}
	}

	totals := []any{"Total", "", "", fmt.Sprintf("%d lines", report.TotalLines), "", "", report.TotalUnits}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(SheetName, cell, &totals); err != nil {
		return nil, fmt.Errorf("failed to write totals: %w", err)
	}
	if err := f.SetRowStyle(SheetName, row, row, bold); err != nil {
		return nil, fmt.Errorf("failed to style totals: %w", err)
	}

	if err := f.SetColWidth(SheetName, "A", "D", 24); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
