// Package catalog defines the storage contract shared by the purchase-list
// engine and the import reconciler.
//
// It holds the domain types exchanged with the store (products with their
// resolved vendor and material type names, on-hand rows, import snapshots),
// the narrow reader/writer interfaces each component consumes, and the
// structured error kinds (validation, conflict, reference not found) that
// cross the storage boundary.
//
// The concrete implementation lives in feature/inventory and is backed by
// GORM; tests can substitute any type satisfying the relevant interface.
package catalog
