package analytics

import (
	"math"
	"strconv"
	"strings"

	"resalepulse/pkg/contracts/domain"
)

// derivedRecord is the per-invocation numeric view of one raw transaction.
// Aggregates re-derive these on every call instead of sharing a normalized
// store; the recomputation cost buys full independence between aggregators.
type derivedRecord struct {
	src *domain.ResaleTransaction

	price      float64
	areaSqm    float64 // NaN when absent or unparseable
	leaseYears float64
	hasLease   bool
}

// deriveRecord parses the numeric fields of one raw transaction. It returns
// false when the price does not parse; such a record is excluded from every
// price-dependent aggregate. Missing area or lease only disables the metrics
// that need them.
func deriveRecord(rec *domain.ResaleTransaction) (derivedRecord, bool) {
	price, ok := parsePrice(rec.ResalePrice)
	if !ok {
		return derivedRecord{}, false
	}

	d := derivedRecord{src: rec, price: price, areaSqm: math.NaN()}
	if area, err := strconv.ParseFloat(strings.TrimSpace(rec.FloorAreaSqm), 64); err == nil {
		d.areaSqm = area
	}
	d.leaseYears, d.hasLease = ParseLeaseYears(rec.RemainingLease)
	return d, true
}

func parsePrice(s string) (float64, bool) {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, false
	}
	return price, true
}

// hasValidArea reports whether per-square-foot metrics are defined for d.
func (d derivedRecord) hasValidArea() bool {
	return !math.IsNaN(d.areaSqm) && d.areaSqm > 0
}

// hasValidLease reports whether per-lease-year metrics are defined for d.
func (d derivedRecord) hasValidLease() bool {
	return d.hasLease && d.leaseYears > 0
}

// pricePerSqft is only meaningful when hasValidArea holds.
func (d derivedRecord) pricePerSqft() float64 {
	return d.price / (d.areaSqm * domain.SquareFeetPerSquareMeter)
}

// pricePerLeaseYear is only meaningful when hasValidLease holds.
func (d derivedRecord) pricePerLeaseYear() float64 {
	return d.price / d.leaseYears
}

// metricValue derives the requested metric, reporting false when the record
// fails that metric's precondition.
func (d derivedRecord) metricValue(metric domain.Metric) (float64, bool) {
	switch metric {
	case domain.MetricPrice:
		return d.price, true
	case domain.MetricPricePerSqft:
		if !d.hasValidArea() {
			return 0, false
		}
		return d.pricePerSqft(), true
	case domain.MetricPricePerLeaseYear:
		if !d.hasValidLease() {
			return 0, false
		}
		return d.pricePerLeaseYear(), true
	}
	return 0, false
}
