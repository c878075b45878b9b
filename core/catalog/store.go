package catalog

import (
	"context"

	"par-manager/core/quantity"
)

// ProductReader lists active products with names and on-hand rows resolved.
type ProductReader interface {
	ListActiveProducts(ctx context.Context) ([]ProductStock, error)
}

// SnapshotReader loads the state an import plan is computed against.
type SnapshotReader interface {
	ImportSnapshot(ctx context.Context) (*Snapshot, error)
}

// OnHandReader aggregates on-hand quantities.
type OnHandReader interface {
	SumOnHandByProduct(ctx context.Context) (map[int64]quantity.Tenths, error)
}

// EntityWriter is the idempotent get-or-create for reference tables.
type EntityWriter interface {
	UpsertEntityByName(ctx context.Context, kind EntityKind, name string) (id int64, created bool, err error)
}

// ProductWriter upserts a product by SKU under a dedup mode.
type ProductWriter interface {
	UpsertProduct(ctx context.Context, sku string, fields ProductFields, mode DedupMode) (id int64, created bool, err error)
}

// AssignmentWriter manages product-location assignments.
type AssignmentWriter interface {
	// ReplaceProductLocations deletes every assignment of the product and inserts ids.
	ReplaceProductLocations(ctx context.Context, productID int64, locationIDs []int64) error
	// AddProductLocations inserts missing pairs and never removes existing ones.
	AddProductLocations(ctx context.Context, productID int64, locationIDs []int64) error
}

// OnHandWriter overwrites the on-hand quantity of a (product, location) pair.
type OnHandWriter interface {
	UpsertOnHand(ctx context.Context, productID, locationID int64, qty quantity.Tenths) error
}

// ImportStore is everything the import reconciler needs from storage.
type ImportStore interface {
	SnapshotReader
	EntityWriter
	ProductWriter
	AssignmentWriter
	OnHandWriter
}

// EntityBatchWriter creates many names of one kind as a single atomic batch.
type EntityBatchWriter interface {
	UpsertEntitiesByName(ctx context.Context, kind EntityKind, names []string) (map[string]int64, error)
}

// ProductBatchWriter upserts many products as a single atomic batch and
// returns the id of every SKU written or skipped.
type ProductBatchWriter interface {
	UpsertProducts(ctx context.Context, writes []ProductWrite, mode DedupMode) (map[string]int64, error)
}

// AssignmentBatchWriter adds many assignments as a single atomic batch.
type AssignmentBatchWriter interface {
	AddAssignments(ctx context.Context, assignments map[int64][]int64) error
}

// OnHandBatchWriter upserts many on-hand rows as a single atomic batch.
type OnHandBatchWriter interface {
	UpsertOnHandBatch(ctx context.Context, writes []OnHandWrite) error
}
