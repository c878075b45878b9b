package checks

import (
	"context"
	"testing"

	"par-manager/core/catalog"
	"par-manager/feature/inventory"
	"par-manager/feature/inventory/inventorytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCatalog_NilDB(t *testing.T) {
	_, err := CheckCatalog(context.Background(), nil)
	assert.Error(t, err)
}

func TestCheckCatalog(t *testing.T) {
	db := inventorytest.NewDB(t)
	store := inventory.NewStore(db)
	ctx := context.Background()

	shelf, _, err := store.UpsertEntityByName(ctx, catalog.KindLocation, "Shelf")
	require.NoError(t, err)
	bin, _, err := store.UpsertEntityByName(ctx, catalog.KindLocation, "Bin")
	require.NoError(t, err)
	acme, _, err := store.UpsertEntityByName(ctx, catalog.KindVendor, "Acme")
	require.NoError(t, err)

	stocked, _, err := store.UpsertProduct(ctx, "OK-1", catalog.ProductFields{Name: "Stocked", VendorID: &acme, Par: 10}, catalog.ModeUpdate)
	require.NoError(t, err)
	require.NoError(t, store.AddProductLocations(ctx, stocked, []int64{shelf}))
	require.NoError(t, store.UpsertOnHand(ctx, stocked, shelf, 5))
	// the import path can write on-hand at an unassigned location
	require.NoError(t, store.UpsertOnHand(ctx, stocked, bin, 3))

	_, _, err = store.UpsertProduct(ctx, "LOOSE-1", catalog.ProductFields{Name: "Loose", VendorID: &acme}, catalog.ModeUpdate)
	require.NoError(t, err)
	vendorless, _, err := store.UpsertProduct(ctx, "NV-1", catalog.ProductFields{Name: "Vendorless"}, catalog.ModeUpdate)
	require.NoError(t, err)
	require.NoError(t, store.AddProductLocations(ctx, vendorless, []int64{shelf}))

	report, err := CheckCatalog(ctx, db)
	require.NoError(t, err)
	assert.False(t, report.Clean)

	require.Len(t, report.OrphanOnHand, 1)
	assert.Equal(t, OnHandRef{ProductID: stocked, SKU: "OK-1", LocationID: bin, Location: "Bin", QtyTenths: 3}, report.OrphanOnHand[0])

	require.Len(t, report.Unassigned, 1)
	assert.Equal(t, "LOOSE-1", report.Unassigned[0].SKU)

	require.Len(t, report.NoVendor, 1)
	assert.Equal(t, "NV-1", report.NoVendor[0].SKU)
}

func TestCheckCatalog_Clean(t *testing.T) {
	report, err := CheckCatalog(context.Background(), inventorytest.NewDB(t))
	require.NoError(t, err)
	assert.True(t, report.Clean)
	assert.Empty(t, report.OrphanOnHand)
}
