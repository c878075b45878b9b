package reconcile

import (
	"time"

	"par-manager/core/quantity"
)

const (
	// NoVendor is the bucket for products without a vendor.
	NoVendor = "No Vendor"
	// Uncategorized is the bucket for products without a material type.
	Uncategorized = "Uncategorized"
)

// OrderLine is one product that needs reordering.
type OrderLine struct {
	// ProductID is the catalog id of the product.
	ProductID int64 `json:"product_id"`

	// SKU is the normalized (uppercase) stock keeping unit.
	SKU string `json:"sku"`

	// Name is the product display name.
	Name string `json:"name"`

	// Par is the global reorder threshold.
	Par quantity.Tenths `json:"par"`

	// TotalOnHand is the sum of on-hand quantities across all locations.
	TotalOnHand quantity.Tenths `json:"total_on_hand"`

	// ToOrder is the whole number of units to purchase. Always > 0 in a report.
	ToOrder int64 `json:"to_order"`
}

// MaterialGroup holds the lines of one material type under a vendor.
type MaterialGroup struct {
	Name  string      `json:"name"`
	Lines []OrderLine `json:"lines"`
}

// VendorGroup holds the material groups of one vendor.
type VendorGroup struct {
	Name          string          `json:"name"`
	MaterialTypes []MaterialGroup `json:"material_types"`
}

// Report is the grouped, sorted purchase list.
type Report struct {
	// Vendors are sorted case-insensitively by name.
	Vendors []VendorGroup `json:"vendors"`

	// TotalLines counts every emitted line.
	TotalLines int `json:"total_lines"`

	// TotalUnits sums ToOrder across every emitted line.
	TotalUnits int64 `json:"total_units"`

	// GeneratedAt is when the report was computed.
	GeneratedAt time.Time `json:"generated_at"`
}

// Lines returns every line in report order.
func (r *Report) Lines() []OrderLine {
	out := make([]OrderLine, 0, r.TotalLines)
	for _, v := range r.Vendors {
		for _, m := range v.MaterialTypes {
			out = append(out, m.Lines...)
		}
	}
	return out
}

// Empty reports whether nothing needs ordering.
func (r *Report) Empty() bool {
	return r.TotalLines == 0
}
