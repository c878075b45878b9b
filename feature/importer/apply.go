package importer

import (
	"context"
	"fmt"
	"sort"

	"par-manager/core/catalog"

	"github.com/samber/lo"
)

// Stage names one write batch of an import.
type Stage string

const (
	StageLocations     Stage = "locations"
	StageMaterialTypes Stage = "material_types"
	StageVendors       Stage = "vendors"
	StageProducts      Stage = "products"
	StageAssignments   Stage = "assignments"
	StageOnHand        Stage = "on_hand"
)

// Stages is the order in which an import writes.
var Stages = []Stage{StageLocations, StageMaterialTypes, StageVendors, StageProducts, StageAssignments, StageOnHand}

func entityStage(kind catalog.EntityKind) Stage {
	switch kind {
	case catalog.KindLocation:
		return StageLocations
	case catalog.KindMaterialType:
		return StageMaterialTypes
	default:
		return StageVendors
	}
}

// StageError reports the stage an import stopped at. Stages before it
// stay committed and stages after it are not attempted.
type StageError struct {
	Stage Stage
	Err   *catalog.Error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("import stopped at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// resolver maps entity names and SKUs to ids, seeded from the snapshot and
// extended as stages create rows.
type resolver struct {
	entities map[catalog.EntityKind]map[string]int64
	products map[string]int64
}

func newResolver(snapshot *catalog.Snapshot) *resolver {
	r := &resolver{
		entities: make(map[catalog.EntityKind]map[string]int64, len(catalog.EntityKinds)),
		products: make(map[string]int64, len(snapshot.Products)),
	}
	for _, kind := range catalog.EntityKinds {
		r.entities[kind] = nameIndex(snapshot.Entities(kind))
	}
	for sku, id := range snapshot.Products {
		r.products[sku] = id
	}
	return r
}

func (r *resolver) entity(kind catalog.EntityKind, name string) (int64, error) {
	id, ok := r.entities[kind][nameKey(name)]
	if !ok {
		return 0, catalog.NotFound(string(kind), fmt.Sprintf("%s %q was not resolved", kind, name))
	}
	return id, nil
}

// optional resolves a possibly empty name to a nullable id.
func (r *resolver) optional(kind catalog.EntityKind, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	id, err := r.entity(kind, name)
	if err != nil {
		return nil, err
	}
	return lo.ToPtr(id), nil
}

func (r *resolver) product(sku string) (int64, error) {
	id, ok := r.products[sku]
	if !ok {
		return 0, catalog.NotFound("sku", fmt.Sprintf("product %q was not resolved", sku))
	}
	return id, nil
}

// Apply writes the plan to store one stage at a time. Each stage uses the
// store's batch method when it has one and falls back to single writes.
// The first failing stage is returned as a *StageError.
func Apply(ctx context.Context, store catalog.ImportStore, plan *Plan) error {
	res := newResolver(plan.Snapshot())

	for _, kind := range catalog.EntityKinds {
		if err := applyEntities(ctx, store, res, kind, plan.Creates[kind]); err != nil {
			return &StageError{Stage: entityStage(kind), Err: catalog.ToError(err)}
		}
	}

	steps := []struct {
		stage Stage
		run   func(context.Context, catalog.ImportStore, *resolver, *Plan) error
	}{
		{StageProducts, applyProducts},
		{StageAssignments, applyAssignments},
		{StageOnHand, applyOnHand},
	}
	for _, step := range steps {
		if err := step.run(ctx, store, res, plan); err != nil {
			return &StageError{Stage: step.stage, Err: catalog.ToError(err)}
		}
	}
	return nil
}

func applyEntities(ctx context.Context, store catalog.ImportStore, res *resolver, kind catalog.EntityKind, names []string) error {
	if len(names) == 0 {
		return nil
	}

	if batch, ok := store.(catalog.EntityBatchWriter); ok {
		ids, err := batch.UpsertEntitiesByName(ctx, kind, names)
		if err != nil {
			return err
		}
		for name, id := range ids {
			res.entities[kind][nameKey(name)] = id
		}
		return nil
	}

	for _, name := range names {
		id, _, err := store.UpsertEntityByName(ctx, kind, name)
		if err != nil {
			return err
		}
		res.entities[kind][nameKey(name)] = id
	}
	return nil
}

func applyProducts(ctx context.Context, store catalog.ImportStore, res *resolver, plan *Plan) error {
	writes := make([]catalog.ProductWrite, 0, len(plan.Products))
	for _, p := range plan.Products {
		if p.Action == ActionSkip {
			continue
		}
		materialID, err := res.optional(catalog.KindMaterialType, p.MaterialType)
		if err != nil {
			return err
		}
		vendorID, err := res.optional(catalog.KindVendor, p.Vendor)
		if err != nil {
			return err
		}
		writes = append(writes, catalog.ProductWrite{
			SKU: p.SKU,
			Fields: catalog.ProductFields{
				Name:           p.Name,
				MaterialTypeID: materialID,
				VendorID:       vendorID,
				Par:            p.Par,
				Notes:          p.Notes,
			},
		})
	}
	if len(writes) == 0 {
		return nil
	}

	if batch, ok := store.(catalog.ProductBatchWriter); ok {
		ids, err := batch.UpsertProducts(ctx, writes, plan.Mode)
		if err != nil {
			return err
		}
		for sku, id := range ids {
			res.products[sku] = id
		}
		return nil
	}

	for _, w := range writes {
		id, _, err := store.UpsertProduct(ctx, w.SKU, w.Fields, plan.Mode)
		if err != nil {
			return err
		}
		res.products[w.SKU] = id
	}
	return nil
}

func applyAssignments(ctx context.Context, store catalog.ImportStore, res *resolver, plan *Plan) error {
	assignments := make(map[int64][]int64, len(plan.Products))
	for _, p := range plan.Products {
		if len(p.Locations) == 0 {
			continue
		}
		productID, err := res.product(p.SKU)
		if err != nil {
			return err
		}
		for _, name := range p.Locations {
			locID, err := res.entity(catalog.KindLocation, name)
			if err != nil {
				return err
			}
			assignments[productID] = append(assignments[productID], locID)
		}
	}
	if len(assignments) == 0 {
		return nil
	}

	if batch, ok := store.(catalog.AssignmentBatchWriter); ok {
		return batch.AddAssignments(ctx, assignments)
	}

	productIDs := lo.Keys(assignments)
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })
	for _, productID := range productIDs {
		if err := store.AddProductLocations(ctx, productID, assignments[productID]); err != nil {
			return err
		}
	}
	return nil
}

func applyOnHand(ctx context.Context, store catalog.ImportStore, res *resolver, plan *Plan) error {
	writes := make([]catalog.OnHandWrite, 0, len(plan.OnHand))
	for _, oh := range plan.OnHand {
		productID, err := res.product(oh.SKU)
		if err != nil {
			return err
		}
		locID, err := res.entity(catalog.KindLocation, oh.Location)
		if err != nil {
			return err
		}
		writes = append(writes, catalog.OnHandWrite{ProductID: productID, LocationID: locID, Qty: oh.Qty})
	}
	if len(writes) == 0 {
		return nil
	}

	if batch, ok := store.(catalog.OnHandBatchWriter); ok {
		return batch.UpsertOnHandBatch(ctx, writes)
	}

	for _, w := range writes {
		if err := store.UpsertOnHand(ctx, w.ProductID, w.LocationID, w.Qty); err != nil {
			return err
		}
	}
	return nil
}
