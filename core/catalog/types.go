package catalog

import (
	"fmt"
	"strings"
	"time"

	"par-manager/core/quantity"
)

// EntityKind identifies one of the name-keyed reference tables.
type EntityKind string

const (
	// KindLocation is a physical stocking location.
	KindLocation EntityKind = "location"
	// KindMaterialType is a product category.
	KindMaterialType EntityKind = "material_type"
	// KindVendor is a supplier.
	KindVendor EntityKind = "vendor"
)

// EntityKinds lists the reference kinds in the order imports create them.
var EntityKinds = []EntityKind{KindLocation, KindMaterialType, KindVendor}

// ParseEntityKind maps a route or flag value to an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "location", "locations":
		return KindLocation, nil
	case "material_type", "material_types", "material-type", "material-types":
		return KindMaterialType, nil
	case "vendor", "vendors":
		return KindVendor, nil
	default:
		return "", Validation("kind", fmt.Sprintf("unknown entity kind %q", s))
	}
}

// DedupMode decides what an import does with SKUs that already exist.
type DedupMode string

const (
	// ModeUpdate overwrites existing products with the imported fields.
	ModeUpdate DedupMode = "update"
	// ModeSkip leaves existing products untouched and only inserts new SKUs.
	ModeSkip DedupMode = "skip"
)

// ParseDedupMode validates a caller-supplied mode. Empty input defaults to update.
func ParseDedupMode(s string) (DedupMode, error) {
	switch DedupMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeUpdate:
		return ModeUpdate, nil
	case ModeSkip:
		return ModeSkip, nil
	default:
		return "", Validation("mode", fmt.Sprintf("mode must be %q or %q, got %q", ModeUpdate, ModeSkip, s))
	}
}

// Entity is a row of a name-keyed reference table.
type Entity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OnHand is the stocked quantity of a product at one location.
type OnHand struct {
	LocationID int64           `json:"location_id"`
	Qty        quantity.Tenths `json:"qty"`
	UpdatedAt  time.Time       `json:"updated_at,omitempty"`
}

// ProductStock is an active product joined with its reference names and
// every on-hand row at its assigned locations.
type ProductStock struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	MaterialType string          `json:"material_type,omitempty"`
	Vendor       string          `json:"vendor,omitempty"`
	Par          quantity.Tenths `json:"par"`
	OnHand       []OnHand        `json:"on_hand"`
}

// ProductFields are the catalog-owned fields written by an upsert.
type ProductFields struct {
	Name           string
	MaterialTypeID *int64
	VendorID       *int64
	Par            quantity.Tenths
	Notes          string
}

// ProductWrite is one product upsert in a batch.
type ProductWrite struct {
	SKU    string
	Fields ProductFields
}

// OnHandWrite is one on-hand upsert in a batch.
type OnHandWrite struct {
	ProductID  int64
	LocationID int64
	Qty        quantity.Tenths
}

// Snapshot is the catalog state an import plan is computed against.
type Snapshot struct {
	// Locations are ordered by id; the first one is the default location.
	Locations     []Entity
	MaterialTypes []Entity
	Vendors       []Entity
	// Products maps normalized SKU to product id.
	Products map[string]int64
	// Assignments holds existing product -> location pairs.
	Assignments map[int64]map[int64]struct{}
}

// Entities returns the snapshot's entities for a kind.
func (s *Snapshot) Entities(kind EntityKind) []Entity {
	switch kind {
	case KindLocation:
		return s.Locations
	case KindMaterialType:
		return s.MaterialTypes
	case KindVendor:
		return s.Vendors
	default:
		return nil
	}
}

// HasAssignment reports whether the product is already assigned to the location.
func (s *Snapshot) HasAssignment(productID, locationID int64) bool {
	locs, ok := s.Assignments[productID]
	if !ok {
		return false
	}
	_, ok = locs[locationID]
	return ok
}

// NormalizeSKU trims and uppercases a SKU.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
