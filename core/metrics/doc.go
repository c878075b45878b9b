// Package metrics exposes prometheus collectors for imports and purchase
// lists, served at /metrics through the fiber adaptor.
//
// All Observe methods are safe on a nil *Metrics, so features and tests can
// run without a registry.
package metrics
