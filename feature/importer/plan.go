package importer

import (
	"strings"

	"par-manager/core/catalog"
	"par-manager/core/quantity"

	"github.com/samber/lo"
)

// DefaultLocationName is synthesized when a batch needs a default location
// and neither the catalog nor the batch names one.
const DefaultLocationName = "Main"

// Action is what an import does to one SKU.
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionSkip   Action = "skip"
)

// Summary holds the import counters. Preview and commit produce the same
// summary for the same input and catalog state. RowsReceived counts source
// records after parsing: every JSON element, but only non-blank CSV and
// XLSX records below the header.
type Summary struct {
	RowsReceived          int `json:"rows_received"`
	RowsAccepted          int `json:"rows_accepted"`
	LocationsCreated      int `json:"locations_created"`
	MaterialTypesCreated  int `json:"material_types_created"`
	VendorsCreated        int `json:"vendors_created"`
	ProductsInserted      int `json:"products_inserted"`
	ProductsUpdated       int `json:"products_updated"`
	ProductUpdatesSkipped int `json:"product_updates_skipped"`
	AssignmentsAdded      int `json:"assignments_added"`
	OnHandUpserts         int `json:"on_hand_upserts"`
}

// ProductPlan is the resolved action for one distinct SKU. Reference
// fields hold entity names; ids are resolved when the plan is applied.
type ProductPlan struct {
	SKU          string          `json:"sku"`
	Action       Action          `json:"action"`
	ProductID    int64           `json:"product_id,omitempty"`
	Name         string          `json:"name"`
	MaterialType string          `json:"material_type,omitempty"`
	Vendor       string          `json:"vendor,omitempty"`
	Par          quantity.Tenths `json:"par"`
	Notes        string          `json:"notes,omitempty"`
	// Locations is every location the SKU's rows reference, in first-appearance order.
	Locations []string `json:"locations"`
}

// OnHandPlan is one on-hand overwrite.
type OnHandPlan struct {
	SKU      string          `json:"sku"`
	Location string          `json:"location"`
	Qty      quantity.Tenths `json:"qty"`
}

// Plan is everything an import would write, computed without side effects.
type Plan struct {
	Mode catalog.DedupMode `json:"mode"`
	// Creates lists entity names missing from the catalog, per kind, in
	// first-appearance order with their first spelling.
	Creates         map[catalog.EntityKind][]string `json:"creates"`
	DefaultLocation string                          `json:"default_location,omitempty"`
	Products        []ProductPlan                   `json:"products"`
	OnHand          []OnHandPlan                    `json:"on_hand"`
	Summary         Summary                         `json:"summary"`

	snapshot *catalog.Snapshot
}

// Snapshot returns the catalog state the plan was computed against.
func (p *Plan) Snapshot() *catalog.Snapshot {
	if p.snapshot == nil {
		return &catalog.Snapshot{}
	}
	return p.snapshot
}

// nameKey is the case-insensitive identity of an entity name.
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// nameIndex maps name keys to ids for one entity kind.
func nameIndex(entities []catalog.Entity) map[string]int64 {
	index := make(map[string]int64, len(entities))
	for _, e := range entities {
		key := nameKey(e.Name)
		// lowest id wins when the catalog holds case variants
		if _, ok := index[key]; !ok {
			index[key] = e.ID
		}
	}
	return index
}

// BuildPlan computes the import of rows against snapshot under mode. rows
// is the received batch; rejected rows count only toward RowsReceived.
func BuildPlan(snapshot *catalog.Snapshot, raws []RawRow, mode catalog.DedupMode) *Plan {
	rows := NormalizeAll(raws)
	plan := PlanRows(snapshot, rows, mode)
	plan.Summary.RowsReceived = len(raws)
	return plan
}

// PlanRows computes the import of already normalized rows.
func PlanRows(snapshot *catalog.Snapshot, rows []Row, mode catalog.DedupMode) *Plan {
	if snapshot == nil {
		snapshot = &catalog.Snapshot{}
	}
	plan := &Plan{
		Mode:     mode,
		Creates:  make(map[catalog.EntityKind][]string, len(catalog.EntityKinds)),
		snapshot: snapshot,
	}
	plan.Summary.RowsReceived = len(rows)
	plan.Summary.RowsAccepted = len(rows)

	plan.DefaultLocation = defaultLocation(snapshot, rows)
	rows = lo.Map(rows, func(r Row, _ int) Row {
		if r.Location == "" {
			r.Location = plan.DefaultLocation
		}
		return r
	})

	for _, kind := range catalog.EntityKinds {
		plan.Creates[kind] = missingNames(snapshot.Entities(kind), namesOf(kind, rows))
	}
	plan.Summary.LocationsCreated = len(plan.Creates[catalog.KindLocation])
	plan.Summary.MaterialTypesCreated = len(plan.Creates[catalog.KindMaterialType])
	plan.Summary.VendorsCreated = len(plan.Creates[catalog.KindVendor])

	plan.Products = planProducts(snapshot, rows, mode)
	for _, p := range plan.Products {
		switch p.Action {
		case ActionInsert:
			plan.Summary.ProductsInserted++
		case ActionUpdate:
			plan.Summary.ProductsUpdated++
		case ActionSkip:
			plan.Summary.ProductUpdatesSkipped++
		}
	}

	plan.Summary.AssignmentsAdded = countNewAssignments(snapshot, plan.Products)
	plan.OnHand = planOnHand(rows)
	plan.Summary.OnHandUpserts = len(plan.OnHand)
	return plan
}

// defaultLocation returns the location unlocated rows fall back to, or ""
// when every row names one.
func defaultLocation(snapshot *catalog.Snapshot, rows []Row) string {
	if !lo.ContainsBy(rows, func(r Row) bool { return r.Location == "" }) {
		return ""
	}
	if len(snapshot.Locations) > 0 {
		first := lo.MinBy(snapshot.Locations, func(a, b catalog.Entity) bool { return a.ID < b.ID })
		return first.Name
	}
	if named, ok := lo.Find(rows, func(r Row) bool { return r.Location != "" }); ok {
		return named.Location
	}
	return DefaultLocationName
}

func namesOf(kind catalog.EntityKind, rows []Row) []string {
	return lo.FilterMap(rows, func(r Row, _ int) (string, bool) {
		var name string
		switch kind {
		case catalog.KindLocation:
			name = r.Location
		case catalog.KindMaterialType:
			name = r.MaterialType
		case catalog.KindVendor:
			name = r.Vendor
		}
		return name, name != ""
	})
}

// missingNames returns the distinct names absent from existing, keeping the
// first spelling of each.
func missingNames(existing []catalog.Entity, names []string) []string {
	index := nameIndex(existing)
	distinct := lo.UniqBy(names, nameKey)
	return lo.Filter(distinct, func(name string, _ int) bool {
		_, ok := index[nameKey(name)]
		return !ok
	})
}

// planProducts folds rows into one action per distinct SKU. In update mode
// product fields come from the SKU's last row; a SKU inserted under skip
// mode takes its first row, as later rows would see it already present.
func planProducts(snapshot *catalog.Snapshot, rows []Row, mode catalog.DedupMode) []ProductPlan {
	bySKU := lo.GroupBy(rows, func(r Row) string { return r.SKU })
	skus := lo.Uniq(lo.Map(rows, func(r Row, _ int) string { return r.SKU }))

	return lo.Map(skus, func(sku string, _ int) ProductPlan {
		group := bySKU[sku]
		id, exists := snapshot.Products[sku]

		action := ActionInsert
		switch {
		case exists && mode == catalog.ModeSkip:
			action = ActionSkip
		case exists:
			action = ActionUpdate
		}

		source := group[len(group)-1]
		if mode == catalog.ModeSkip {
			source = group[0]
		}

		plan := ProductPlan{
			SKU:       sku,
			Action:    action,
			ProductID: id,
			Locations: lo.UniqBy(namesOf(catalog.KindLocation, group), nameKey),
		}
		if action != ActionSkip {
			plan.Name = source.Name
			plan.MaterialType = source.MaterialType
			plan.Vendor = source.Vendor
			plan.Par = source.Par
			plan.Notes = source.Notes
		}
		return plan
	})
}

// countNewAssignments counts (product, location) pairs not already present.
func countNewAssignments(snapshot *catalog.Snapshot, products []ProductPlan) int {
	locations := nameIndex(snapshot.Locations)
	return lo.SumBy(products, func(p ProductPlan) int {
		return lo.CountBy(p.Locations, func(name string) bool {
			locID, known := locations[nameKey(name)]
			return p.ProductID == 0 || !known || !snapshot.HasAssignment(p.ProductID, locID)
		})
	})
}

// planOnHand keeps the last supplied quantity per (sku, location).
func planOnHand(rows []Row) []OnHandPlan {
	type pair struct{ sku, location string }
	var order []pair
	latest := make(map[pair]OnHandPlan)

	for _, r := range rows {
		if r.OnHand == nil || r.Location == "" {
			continue
		}
		k := pair{r.SKU, nameKey(r.Location)}
		if _, seen := latest[k]; !seen {
			order = append(order, k)
		}
		latest[k] = OnHandPlan{SKU: r.SKU, Location: r.Location, Qty: *r.OnHand}
	}

	return lo.Map(order, func(k pair, _ int) OnHandPlan { return latest[k] })
}
