package purchasing

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"par-manager/core/catalog"
	"par-manager/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *reconcile.Report {
	report := reconcile.BuildReport([]catalog.ProductStock{
		{ID: 1, SKU: "W-1", Name: "Widget", Vendor: "Acme", MaterialType: "Hardware", Par: 55, OnHand: []catalog.OnHand{{LocationID: 1, Qty: 20}}},
		{ID: 2, SKU: "T-1", Name: "Tape", Par: 30},
		{ID: 3, SKU: "F-1", Name: "Full", Vendor: "Acme", Par: 10, OnHand: []catalog.OnHand{{LocationID: 1, Qty: 10}}},
	})
	report.GeneratedAt = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	return report
}

func TestText(t *testing.T) {
	text := Text(sampleReport())

	assert.True(t, strings.HasPrefix(text, "Purchase list - 2026-03-04 05:06 UTC\n"))
	assert.Contains(t, text, "Acme\n====\n")
	assert.Contains(t, text, "  Hardware\n")
	assert.Contains(t, text, "No Vendor\n")
	assert.Contains(t, text, "  Uncategorized\n")
	assert.NotContains(t, text, "F-1")
	assert.Contains(t, text, "2 lines, 7 units\n")

	widget := strings.Index(text, "W-1")
	tape := strings.Index(text, "T-1")
	require.Positive(t, widget)
	assert.Less(t, widget, tape)

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "W-1") {
			assert.Regexp(t, `W-1\s+Widget\s+5\.5\s+2\.0\s+4`, line)
		}
	}
}

func TestText_Empty(t *testing.T) {
	report := reconcile.BuildReport(nil)
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, report))
	assert.Contains(t, buf.String(), "Nothing to order.")
}

func TestWriteXLSX(t *testing.T) {
	report := sampleReport()
	data, err := WriteXLSX(report)
	require.NoError(t, err)
	assert.Equal(t, "purchase_list_20260304_050607.xlsx", ExportName(report))

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Vendor", "Material Type", "SKU", "Name", "PAR", "On Hand", "To Order"}, rows[0])
	assert.Equal(t, []string{"Acme", "Hardware", "W-1", "Widget", "5.5", "2", "4"}, rows[1])
	assert.Equal(t, []string{"No Vendor", "Uncategorized", "T-1", "Tape", "3", "0", "3"}, rows[2])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "7", rows[3][6])
}
