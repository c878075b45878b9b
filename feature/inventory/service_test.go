package inventory_test

import (
	"context"
	"testing"

	"par-manager/core/catalog"
	"par-manager/core/quantity"
	"par-manager/feature/inventory"
	"par-manager/feature/inventory/inventorytest"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*inventory.Service, *inventory.Store, *int) {
	t.Helper()
	store := inventorytest.NewStore(t)
	changes := 0
	svc := inventory.NewService(store, zap.NewNop(), func() { changes++ })
	return svc, store, &changes
}

func TestService_CreateProduct(t *testing.T) {
	svc, _, changes := newService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, inventory.ProductInput{SKU: " tp-1 ", Name: " Tape ", Par: 4.25})
	require.NoError(t, err)
	assert.Equal(t, "TP-1", p.SKU)
	assert.Equal(t, "Tape", p.Name)
	assert.Equal(t, "4.3", p.Par.String())
	assert.True(t, p.Active)
	assert.Equal(t, 1, *changes)

	_, err = svc.CreateProduct(ctx, inventory.ProductInput{SKU: "TP-1", Name: "Tape again"})
	ce, ok := catalog.AsError(err)
	require.True(t, ok)
	assert.Equal(t, catalog.KindConflictError, ce.Kind)
	assert.Equal(t, "sku", ce.Field)
}

func TestService_CreateProduct_Validation(t *testing.T) {
	svc, _, changes := newService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    inventory.ProductInput
		field string
		is    error
	}{
		{"Missing SKU", inventory.ProductInput{Name: "x"}, "sku", catalog.ErrValidation},
		{"Missing name", inventory.ProductInput{SKU: "x"}, "name", catalog.ErrValidation},
		{"Negative par", inventory.ProductInput{SKU: "x", Name: "x", Par: -1}, "par", catalog.ErrValidation},
		{"Oversized par", inventory.ProductInput{SKU: "x", Name: "x", Par: 1e30}, "par", catalog.ErrValidation},
		{"Unknown vendor", inventory.ProductInput{SKU: "x", Name: "x", VendorID: lo.ToPtr(int64(99))}, "vendor_id", catalog.ErrReferenceNotFound},
		{"Unknown material", inventory.ProductInput{SKU: "x", Name: "x", MaterialTypeID: lo.ToPtr(int64(99))}, "material_type_id", catalog.ErrReferenceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tt.in)
			assert.ErrorIs(t, err, tt.is)
			ce, ok := catalog.AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
	assert.Equal(t, 0, *changes)
}

func TestService_UpdateProduct(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	a, err := svc.CreateProduct(ctx, inventory.ProductInput{SKU: "A", Name: "Alpha"})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, inventory.ProductInput{SKU: "B", Name: "Beta"})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, a.ID, inventory.ProductInput{SKU: "a", Name: "Alpha 2", Par: 3, Active: lo.ToPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Alpha 2", updated.Name)
	assert.False(t, updated.Active)

	_, err = svc.UpdateProduct(ctx, a.ID, inventory.ProductInput{SKU: "B", Name: "Alpha"})
	assert.ErrorIs(t, err, catalog.ErrConflict)

	_, err = svc.UpdateProduct(ctx, 404, inventory.ProductInput{SKU: "Z", Name: "Zeta"})
	assert.ErrorIs(t, err, catalog.ErrReferenceNotFound)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "B", products[0].SKU)
}

func TestService_SetOnHand_RequiresAssignment(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, inventory.ProductInput{SKU: "P", Name: "Pens", Par: 10})
	require.NoError(t, err)
	ids, err := store.UpsertEntitiesByName(ctx, catalog.KindLocation, []string{"Shelf", "Bin"})
	require.NoError(t, err)

	err = svc.SetOnHand(ctx, p.ID, ids["Shelf"], 2)
	ce, ok := catalog.AsError(err)
	require.True(t, ok)
	assert.Equal(t, catalog.KindValidationError, ce.Kind)
	assert.Equal(t, "location_id", ce.Field)

	require.NoError(t, svc.SetProductLocations(ctx, p.ID, []int64{ids["Shelf"]}))
	require.NoError(t, svc.SetOnHand(ctx, p.ID, ids["Shelf"], 2.25))

	assert.ErrorIs(t, svc.SetOnHand(ctx, p.ID, ids["Shelf"], -1), catalog.ErrValidation)
	assert.ErrorIs(t, svc.SetOnHand(ctx, p.ID, ids["Shelf"], 1e30), catalog.ErrValidation)
	assert.ErrorIs(t, svc.SetProductLocations(ctx, p.ID, []int64{999}), catalog.ErrReferenceNotFound)

	sums, err := store.SumOnHandByProduct(ctx)
	require.NoError(t, err)
	assert.Equal(t, quantity.Tenths(23), sums[p.ID])

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{ids["Shelf"]}, got.LocationIDs)
}

func TestService_DeleteProduct(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, inventory.ProductInput{SKU: "P", Name: "Pens"})
	require.NoError(t, err)
	loc, _, err := store.UpsertEntityByName(ctx, catalog.KindLocation, "Shelf")
	require.NoError(t, err)
	require.NoError(t, svc.SetProductLocations(ctx, p.ID, []int64{loc}))
	require.NoError(t, svc.SetOnHand(ctx, p.ID, loc, 1))

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, p.ID), catalog.ErrReferenceNotFound)

	snap, err := store.ImportSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Products)
	assert.Empty(t, snap.Assignments)

	// location is now free to delete without force
	require.NoError(t, svc.DeleteEntity(ctx, catalog.KindLocation, loc, false))
}

func TestService_DeleteEntity(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	vendor, err := svc.CreateEntity(ctx, catalog.KindVendor, "Acme")
	require.NoError(t, err)
	material, err := svc.CreateEntity(ctx, catalog.KindMaterialType, "Paper")
	require.NoError(t, err)
	loc, err := svc.CreateEntity(ctx, catalog.KindLocation, "Shelf")
	require.NoError(t, err)

	_, err = svc.CreateEntity(ctx, catalog.KindVendor, "acme")
	assert.ErrorIs(t, err, catalog.ErrConflict)

	p, err := svc.CreateProduct(ctx, inventory.ProductInput{
		SKU: "P", Name: "Pads", Par: 5, VendorID: &vendor.ID, MaterialTypeID: &material.ID,
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetProductLocations(ctx, p.ID, []int64{loc.ID}))

	t.Run("Vendor nulls reference", func(t *testing.T) {
		require.NoError(t, svc.DeleteEntity(ctx, catalog.KindVendor, vendor.ID, false))
		got, err := svc.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got.VendorID)
		assert.NotNil(t, got.MaterialTypeID)
	})

	t.Run("Material type nulls reference", func(t *testing.T) {
		require.NoError(t, svc.DeleteEntity(ctx, catalog.KindMaterialType, material.ID, false))
		got, err := svc.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got.MaterialTypeID)
	})

	t.Run("Referenced location needs force", func(t *testing.T) {
		err := svc.DeleteEntity(ctx, catalog.KindLocation, loc.ID, false)
		assert.ErrorIs(t, err, catalog.ErrConflict)

		require.NoError(t, svc.DeleteEntity(ctx, catalog.KindLocation, loc.ID, true))
		snap, err := store.ImportSnapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, snap.Locations)
		assert.Empty(t, snap.Assignments)
	})

	t.Run("Missing id", func(t *testing.T) {
		err := svc.DeleteEntity(ctx, catalog.KindVendor, 12345, false)
		assert.ErrorIs(t, err, catalog.ErrReferenceNotFound)
	})
}

func TestService_RenameEntity(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	a, err := svc.CreateEntity(ctx, catalog.KindLocation, "Front")
	require.NoError(t, err)
	_, err = svc.CreateEntity(ctx, catalog.KindLocation, "Back")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RenameEntity(ctx, catalog.KindLocation, a.ID, "BACK"), catalog.ErrConflict)
	assert.ErrorIs(t, svc.RenameEntity(ctx, catalog.KindLocation, a.ID, " "), catalog.ErrValidation)
	require.NoError(t, svc.RenameEntity(ctx, catalog.KindLocation, a.ID, "Counter"))

	entities, err := svc.ListEntities(ctx, catalog.KindLocation)
	require.NoError(t, err)
	assert.Equal(t, []string{"Back", "Counter"}, lo.Map(entities, func(e catalog.Entity, _ int) string { return e.Name }))
}
