// Package importer reconciles bulk rows into the catalog.
//
// Rows arrive as loosely typed bags (CSV, TSV, XLSX, JSON or a request
// body) and go through one normalization pass. BuildPlan then computes,
// without side effects, which locations, material types and vendors must be
// created, what happens to every SKU under the dedup mode, which
// assignments are added and which on-hand quantities are overwritten. Apply
// writes that plan one stage at a time:
//
//	locations -> material_types -> vendors -> products -> assignments -> on_hand
//
// A failing stage stops the import and is reported with its structured
// error; stages already written stay committed. Preview and commit share
// the same plan, so their summaries match for the same catalog state.
package importer
