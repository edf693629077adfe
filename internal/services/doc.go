// Package services contains the orchestration layer between transport and
// the pure analytics core. The analytics service owns the current snapshot,
// applies request filters, decides when aggregates are recomputed, and
// memoizes results keyed by (snapshot, filter, metric) tuples so the pure
// functions themselves stay cache-free.
package services
