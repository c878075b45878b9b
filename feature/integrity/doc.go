// Package integrity provides system health checks.
//
// # Checks Provided
//
//   - Structure: the import and export folders exist in the storage bucket.
//   - Schema: every catalog table exists with the columns the models expect.
//   - Catalog: on-hand rows at unassigned locations, active products with no
//     location and active products with no vendor.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
//   - GET /integrity/catalog : Runs catalog check.
package integrity
