// Package utils provides loose value coercion for imported rows.
//
// Import sources (CSV cells, XLSX cells, JSON objects) deliver values as
// strings, float64s, byte slices or nil. These helpers turn them into the
// trimmed strings and tenths quantities the importer works with, treating
// anything unparseable as empty or zero instead of failing.
package utils
