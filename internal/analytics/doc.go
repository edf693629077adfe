// Package analytics contains the pure aggregation core of the resale
// dashboard: lease parsing, per-record normalization, box-plot quartile
// series, global axis domains, whole-selection summary statistics, per-period
// time series, and price-category breakdowns.
//
// Every function is a deterministic, synchronous transform over an in-memory
// record slice. Nothing here performs I/O, logs, or retains state between
// calls; callers own recomputation and memoization policy. Records with
// unparseable fields are excluded from the specific aggregate that needs the
// field, never coerced to a default value.
package analytics
