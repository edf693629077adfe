package analytics

import (
	"sort"

	"resalepulse/pkg/contracts/domain"
)

// Axis padding factors: transaction counts get looser headroom than value
// and percentage metrics so bars never crowd the top of the chart.
const (
	countDomainPadding = 1.2
	trendDomainPadding = 1.05
)

// Fallback axis domains used when the input holds no observations at all,
// keeping an empty chart renderable at sensible scales.
var (
	fallbackCountDomain      = domain.Range{Min: 0, Max: 100}
	fallbackGrossValueDomain = domain.Range{Min: 0, Max: 1_000_000}
	fallbackPerUnitDomain    = domain.Range{Min: 0, Max: 1000}
	fallbackPercentDomain    = domain.Range{Min: 0, Max: 5}
)

// TimeSeriesOver computes one point for every period in periods, in order,
// including periods with no data: those keep nil metric fields as explicit
// gap markers so downstream line rendering breaks continuity instead of
// dipping to zero. Per-metric axis domains cover only the defined values,
// padded by the metric's headroom factor.
func TimeSeriesOver(records []domain.ResaleTransaction, periods []string) domain.TimeSeries {
	if len(records) == 0 {
		return domain.TimeSeries{
			Points:                 []domain.TimeSeriesPoint{},
			TransactionCountDomain: fallbackCountDomain,
			GrossValueDomain:       fallbackGrossValueDomain,
			MedianPsfDomain:        fallbackPerUnitDomain,
			MedianLeaseDomain:      fallbackPerUnitDomain,
			MillionPctDomain:       fallbackPercentDomain,
		}
	}

	byPeriod := make(map[string][]derivedRecord, len(periods))
	for i := range records {
		d, ok := deriveRecord(&records[i])
		if !ok {
			continue
		}
		byPeriod[records[i].Month] = append(byPeriod[records[i].Month], d)
	}

	var (
		points   = make([]domain.TimeSeriesPoint, 0, len(periods))
		maxCount maxTracker
		maxGross maxTracker
		maxPsf   maxTracker
		maxLease maxTracker
		maxPct   maxTracker
	)
	for _, period := range periods {
		point := domain.TimeSeriesPoint{Period: period}
		group := byPeriod[period]
		if len(group) == 0 {
			points = append(points, point)
			continue
		}

		var (
			gross       float64
			millionN    int
			psfValues   []float64
			leaseValues []float64
		)
		for _, d := range group {
			gross += d.price
			if d.price >= millionThreshold {
				millionN++
			}
			if d.hasValidArea() {
				psfValues = append(psfValues, d.pricePerSqft())
			}
			if d.hasValidLease() {
				leaseValues = append(leaseValues, d.pricePerLeaseYear())
			}
		}

		count := len(group)
		millionPct := float64(millionN) / float64(count) * 100
		point.TransactionCount = intPtr(count)
		point.GrossValue = f64(gross)
		point.MillionUnitPercentage = f64(millionPct)
		maxCount.observe(float64(count))
		maxGross.observe(gross)
		maxPct.observe(millionPct)

		// Median per-unit metrics run over their own valid subsets and may
		// stay nil even when the period traded.
		if len(psfValues) > 0 {
			sort.Float64s(psfValues)
			v := median(psfValues)
			point.MedianPricePerSqft = f64(v)
			maxPsf.observe(v)
		}
		if len(leaseValues) > 0 {
			sort.Float64s(leaseValues)
			v := median(leaseValues)
			point.MedianPricePerLeaseYear = f64(v)
			maxLease.observe(v)
		}
		points = append(points, point)
	}

	return domain.TimeSeries{
		Points:                 points,
		TransactionCountDomain: maxCount.domain(countDomainPadding, fallbackCountDomain),
		GrossValueDomain:       maxGross.domain(trendDomainPadding, fallbackGrossValueDomain),
		MedianPsfDomain:        maxPsf.domain(trendDomainPadding, fallbackPerUnitDomain),
		MedianLeaseDomain:      maxLease.domain(trendDomainPadding, fallbackPerUnitDomain),
		MillionPctDomain:       maxPct.domain(trendDomainPadding, fallbackPercentDomain),
	}
}

// maxTracker accumulates the maximum over defined observations only; gap
// points never register.
type maxTracker struct {
	seen bool
	max  float64
}

func (t *maxTracker) observe(v float64) {
	if !t.seen || v > t.max {
		t.max = v
		t.seen = true
	}
}

func (t *maxTracker) domain(padding float64, fallback domain.Range) domain.Range {
	if !t.seen {
		return fallback
	}
	return domain.Range{Min: 0, Max: t.max * padding}
}
