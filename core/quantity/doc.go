// Package quantity implements the tenths-precision quantities used for PAR
// levels and on-hand counts.
//
// Quantities are stored as an integer count of tenths of a unit (Tenths), so
// summing on-hand rows across locations never accumulates floating-point
// drift. Every conversion from an external value (float, string, spreadsheet
// cell) goes through the same round-half-away-from-zero step at one decimal.
//
// # Usage
//
//	par := quantity.Parse("5.5")       // 55 tenths
//	onHand := quantity.FromFloat(2)     // 20 tenths
//	units := quantity.CeilUnits(par - onHand) // 4
package quantity
