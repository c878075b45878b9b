// Package purchasing serves the purchase list: the grouped reconciliation
// report as JSON, as a plain-text order sheet, and as an XLSX workbook that
// can be archived to object storage under the exports folder.
package purchasing
