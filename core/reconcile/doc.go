// Package reconcile computes the purchase list: per-product stock totals
// reconciled against a single global PAR.
//
// The engine is pure. Given the active catalog with every on-hand row already
// resolved, it:
//
//  1. Sums on-hand across locations in integer tenths, so repeated additions
//     never drift.
//  2. Derives shortfall = max(par - total, 0) and orders ceil(shortfall) whole
//     units. Any positive shortfall orders at least one unit.
//  3. Drops lines with nothing to order.
//  4. Groups lines by vendor ("No Vendor" bucket) and then by material type
//     ("Uncategorized" bucket).
//
// # Ordering
//
// Vendor and material groups sort case-insensitively by name, using the exact
// name as tiebreak. Lines within a group sort by to_order descending, then by
// case-insensitive product name, then by SKU. Print and export layouts depend
// on this order.
//
// # Caching
//
// Cache wraps a catalog.ProductReader with a TTL snapshot and singleflight
// stampede protection, so concurrent report requests share one catalog read.
// A TTL of zero disables caching. Writers call Invalidate after imports and
// direct edits.
//
// # Usage Example
//
//	cache := reconcile.NewCache(store, 30*time.Second)
//	products, err := cache.Products(ctx)
//	if err != nil {
//	    return err
//	}
//	report := reconcile.BuildReport(products)
package reconcile
