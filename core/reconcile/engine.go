package reconcile

import (
	"sort"
	"strings"
	"time"

	"par-manager/core/catalog"
	"par-manager/core/quantity"
)

// now is replaced in tests.
var now = time.Now

// TotalOnHand sums on-hand rows. No rows means zero on hand.
func TotalOnHand(rows []catalog.OnHand) quantity.Tenths {
	var total quantity.Tenths
	for _, r := range rows {
		total += r.Qty
	}
	return total
}

// ToOrder returns the whole units needed to bring total up to par.
func ToOrder(par, total quantity.Tenths) int64 {
	shortfall := par - total
	if shortfall <= 0 {
		return 0
	}
	return quantity.CeilUnits(shortfall)
}

// Line computes the order line for one product. The second return value is
// false when nothing needs ordering.
func Line(p catalog.ProductStock) (OrderLine, bool) {
	total := TotalOnHand(p.OnHand)
	toOrder := ToOrder(p.Par, total)
	if toOrder <= 0 {
		return OrderLine{}, false
	}
	return OrderLine{
		ProductID:   p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Par:         p.Par,
		TotalOnHand: total,
		ToOrder:     toOrder,
	}, true
}

// BuildReport computes, filters, groups and sorts the purchase list.
// It performs no I/O and is safe to call concurrently.
func BuildReport(products []catalog.ProductStock) *Report {
	// vendor -> material -> lines
	grouped := make(map[string]map[string][]OrderLine)

	report := &Report{
		Vendors:     []VendorGroup{},
		GeneratedAt: now(),
	}

	for _, p := range products {
		line, ok := Line(p)
		if !ok {
			continue
		}

		vendor := bucket(p.Vendor, NoVendor)
		material := bucket(p.MaterialType, Uncategorized)

		if grouped[vendor] == nil {
			grouped[vendor] = make(map[string][]OrderLine)
		}
		grouped[vendor][material] = append(grouped[vendor][material], line)

		report.TotalLines++
		report.TotalUnits += line.ToOrder
	}

	for _, vendor := range sortedKeys(grouped) {
		materials := grouped[vendor]
		vg := VendorGroup{Name: vendor, MaterialTypes: make([]MaterialGroup, 0, len(materials))}
		for _, material := range sortedKeys(materials) {
			lines := materials[material]
			sortLines(lines)
			vg.MaterialTypes = append(vg.MaterialTypes, MaterialGroup{Name: material, Lines: lines})
		}
		report.Vendors = append(report.Vendors, vg)
	}

	return report
}

func bucket(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return name
}

// lessName orders case-insensitively with the exact string as tiebreak.
func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessName(keys[i], keys[j])
	})
	return keys
}

func sortLines(lines []OrderLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.ToOrder != b.ToOrder {
			return a.ToOrder > b.ToOrder
		}
		if a.Name != b.Name {
			return lessName(a.Name, b.Name)
		}
		return a.SKU < b.SKU
	})
}
