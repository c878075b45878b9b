package importer

import (
	"testing"

	"par-manager/core/quantity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"SKU":           "sku",
		" Product Name": "name",
		"material":      "material_type",
		"Type":          "material_type",
		"Material-Type": "material_type",
		"qty":           "on_hand",
		"On Hand":       "on_hand",
		"onhand":        "on_hand",
		"Supplier":      "vendor",
		"par":           "par",
		"\ufeffsku":     "sku",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeKey(in), in)
	}
}

func TestNormalize(t *testing.T) {
	row, ok := Normalize(RawRow{
		"SKU":      " ab-1 ",
		"Name":     " Widget ",
		"Material": "Hardware",
		"Supplier": "Acme",
		"Par":      "5,55",
		"Qty":      2.04,
		"Location": " Main ",
	})
	require.True(t, ok)
	assert.Equal(t, "AB-1", row.SKU)
	assert.Equal(t, "Widget", row.Name)
	assert.Equal(t, "Hardware", row.MaterialType)
	assert.Equal(t, "Acme", row.Vendor)
	assert.Equal(t, "Main", row.Location)
	assert.Equal(t, quantity.Tenths(56), row.Par)
	require.NotNil(t, row.OnHand)
	assert.Equal(t, quantity.Tenths(20), *row.OnHand)
}

func TestNormalize_OnHandPresence(t *testing.T) {
	row, ok := Normalize(RawRow{"sku": "a", "name": "b", "on_hand": "  "})
	require.True(t, ok)
	assert.Nil(t, row.OnHand)

	row, ok = Normalize(RawRow{"sku": "a", "name": "b", "on_hand": "n/a"})
	require.True(t, ok)
	require.NotNil(t, row.OnHand)
	assert.Equal(t, quantity.Zero, *row.OnHand)

	row, ok = Normalize(RawRow{"sku": "a", "name": "b", "par": "lots"})
	require.True(t, ok)
	assert.Equal(t, quantity.Zero, row.Par)
}

func TestNormalize_DropsIncompleteRows(t *testing.T) {
	_, ok := Normalize(RawRow{"sku": "  ", "name": "Widget"})
	assert.False(t, ok)

	_, ok = Normalize(RawRow{"sku": "A1"})
	assert.False(t, ok)

	_, ok = Normalize(RawRow{})
	assert.False(t, ok)
}

func TestNormalize_BlankAliasDoesNotHideValue(t *testing.T) {
	row, ok := Normalize(RawRow{"sku": "A1", "name": "Widget", "qty": "3", "quantity": ""})
	require.True(t, ok)
	require.NotNil(t, row.OnHand)
	assert.Equal(t, quantity.Tenths(30), *row.OnHand)
}

func TestNormalizeAll(t *testing.T) {
	rows := NormalizeAll([]RawRow{
		{"sku": "A1", "name": "One"},
		{"sku": "", "name": "Nameless"},
		{"sku": "A2", "name": "Two"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "A1", rows[0].SKU)
	assert.Equal(t, "A2", rows[1].SKU)
}

func TestNormalize_AliasPrecedence(t *testing.T) {
	raw := RawRow{"sku": "A1", "item_number": "B2", "name": "Widget", "on_hand": "3", "qty": "7"}

	first, ok := Normalize(raw)
	require.True(t, ok)
	assert.Equal(t, "A1", first.SKU)
	require.NotNil(t, first.OnHand)
	assert.Equal(t, quantity.Tenths(30), *first.OnHand)

	for i := 0; i < 200; i++ {
		row, ok := Normalize(raw)
		require.True(t, ok)
		assert.Equal(t, first, row)
	}
}

func TestNormalize_AliasOrder(t *testing.T) {
	row, ok := Normalize(RawRow{"SKU": "a1", "Category": "Tools", "Type": "Parts", "Product": "Widget", "Product Name": "Gadget"})
	require.True(t, ok)
	assert.Equal(t, "Parts", row.MaterialType)
	assert.Equal(t, "Widget", row.Name)

	// a blank canonical header defers to a filled alias
	row, ok = Normalize(RawRow{"sku": "", "item_number": "b2", "name": "Widget"})
	require.True(t, ok)
	assert.Equal(t, "B2", row.SKU)
}
