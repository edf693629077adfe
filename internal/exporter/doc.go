// Package exporter writes snapshot aggregates to disk as CSV tables and a
// multi-sheet XLSX workbook. It consumes the same aggregate types the HTTP
// API serves, so an exported report always matches what the dashboard shows.
package exporter
