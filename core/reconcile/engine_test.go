package reconcile

import (
	"testing"
	"time"

	"par-manager/core/catalog"
	"par-manager/core/quantity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(f float64) quantity.Tenths {
	return quantity.FromFloat(f)
}

func product(id int64, sku, name, vendor, material string, par float64, onHand ...float64) catalog.ProductStock {
	p := catalog.ProductStock{
		ID:           id,
		SKU:          sku,
		Name:         name,
		Vendor:       vendor,
		MaterialType: material,
		Par:          qty(par),
	}
	for i, q := range onHand {
		p.OnHand = append(p.OnHand, catalog.OnHand{LocationID: int64(i + 1), Qty: qty(q)})
	}
	return p
}

func TestToOrder(t *testing.T) {
	tests := []struct {
		name     string
		par      float64
		onHand   float64
		expected int64
	}{
		{"At par", 10.0, 10.0, 0},
		{"Above par", 10.0, 12.5, 0},
		{"One tenth short orders a whole unit", 10.0, 9.9, 1},
		{"Shortfall 2.2 rounds up", 10.0, 7.8, 3},
		{"Shortfall 2.1 rounds up", 5.0, 2.9, 3},
		{"Exact whole shortfall", 5.0, 2.0, 3},
		{"Nothing on hand", 5.5, 0, 6},
		{"Zero par", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToOrder(qty(tt.par), qty(tt.onHand)))
		})
	}
}

func TestToOrder_Monotonic(t *testing.T) {
	par := qty(10.0)
	prev := ToOrder(par, 0)
	for total := quantity.Tenths(1); total <= 150; total++ {
		got := ToOrder(par, total)
		assert.LessOrEqual(t, got, prev, "total=%s", total)
		prev = got
	}
}

func TestTotalOnHand(t *testing.T) {
	assert.Equal(t, quantity.Zero, TotalOnHand(nil))

	rows := make([]catalog.OnHand, 0, 3)
	for i := 0; i < 3; i++ {
		rows = append(rows, catalog.OnHand{Qty: qty(0.1)})
	}
	total := TotalOnHand(rows)
	assert.Equal(t, 0.3, total.Float64())
	assert.Equal(t, "0.3", total.String())
}

func TestBuildReport_GroupingAndSort(t *testing.T) {
	products := []catalog.ProductStock{
		product(1, "Z1", "Z", "B", "X", 1),
		product(2, "A1", "A", "A", "Y", 5),
		product(3, "B1", "B", "A", "Y", 5),
	}

	report := BuildReport(products)

	require.Len(t, report.Vendors, 2)
	assert.Equal(t, "A", report.Vendors[0].Name)
	assert.Equal(t, "B", report.Vendors[1].Name)

	lines := report.Vendors[0].MaterialTypes[0].Lines
	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].Name)
	assert.Equal(t, "B", lines[1].Name)

	assert.Equal(t, 3, report.TotalLines)
	assert.Equal(t, int64(11), report.TotalUnits)
}

func TestBuildReport_Buckets(t *testing.T) {
	products := []catalog.ProductStock{
		product(1, "P1", "Paper", "", "", 2),
		product(2, "P2", "Pens", "acme", "", 2),
		product(3, "P3", "Pins", "Acme", "office", 2),
		product(4, "P4", "Pads", "Acme", "Office", 2),
	}

	report := BuildReport(products)

	names := make([]string, 0, len(report.Vendors))
	for _, v := range report.Vendors {
		names = append(names, v.Name)
	}
	// case-insensitive, exact name breaks ties ("Acme" < "acme")
	assert.Equal(t, []string{"Acme", "acme", NoVendor}, names)

	acme := report.Vendors[0]
	require.Len(t, acme.MaterialTypes, 2)
	assert.Equal(t, "Office", acme.MaterialTypes[0].Name)
	assert.Equal(t, "office", acme.MaterialTypes[1].Name)

	assert.Equal(t, Uncategorized, report.Vendors[1].MaterialTypes[0].Name)
	assert.Equal(t, Uncategorized, report.Vendors[2].MaterialTypes[0].Name)
}

func TestBuildReport_LineOrder(t *testing.T) {
	products := []catalog.ProductStock{
		product(1, "S3", "banana", "V", "M", 2),
		product(2, "S2", "Apple", "V", "M", 2),
		product(3, "S1", "cherry", "V", "M", 9),
		product(4, "S0", "apple", "V", "M", 2),
		product(5, "S9", "Apple", "V", "M", 2),
	}

	lines := BuildReport(products).Lines()

	skus := make([]string, 0, len(lines))
	for _, l := range lines {
		skus = append(skus, l.SKU)
	}
	assert.Equal(t, []string{"S1", "S2", "S9", "S0", "S3"}, skus)
}

func TestBuildReport_ExcludesZeroLines(t *testing.T) {
	products := []catalog.ProductStock{
		product(1, "FULL", "Stocked", "V", "M", 10, 6, 4),
		product(2, "OVER", "Overstocked", "V", "M", 1, 3),
		product(3, "ZERO", "No par", "V", "M", 0),
		product(4, "LOW", "Low", "V", "M", 10, 4.5, 5.4),
	}

	report := BuildReport(products)

	lines := report.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "LOW", lines[0].SKU)
	assert.Equal(t, qty(9.9), lines[0].TotalOnHand)
	assert.Equal(t, int64(1), lines[0].ToOrder)

	for _, l := range lines {
		assert.Greater(t, l.ToOrder, int64(0))
	}
}

func TestBuildReport_Empty(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	report := BuildReport(nil)

	assert.True(t, report.Empty())
	assert.NotNil(t, report.Vendors)
	assert.Equal(t, fixed, report.GeneratedAt)
}
