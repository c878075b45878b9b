// Package inventory owns the catalog tables and their GORM store.
//
// Store implements every core/catalog contract, including the batch
// variants the importer prefers: each batch runs in one transaction.
// Service covers direct edits, which are stricter than imports. A taken SKU
// or name is a ConflictError, a missing id is a ReferenceNotFoundError,
// location assignment is a full replace, and on-hand can only be written at
// an assigned location.
package inventory
