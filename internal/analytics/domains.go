package analytics

import (
	"math"

	"resalepulse/pkg/contracts/domain"
)

// valueDomainPadding leaves headroom above the tallest observation so marks
// never touch the top of the chart.
const valueDomainPadding = 1.05

// fallbackLeaseDomain covers the full statutory lease length when no record
// carries parseable lease text.
var fallbackLeaseDomain = [2]int{0, 99}

// GlobalValueDomain computes a stable [0, max*1.05] Y-axis range for the
// requested metric across the entire dataset, not just a filtered window.
// The upper bound covers every period's whisker max and every outlier, so
// changing the visible date range or filters never rescales the axis.
func GlobalValueDomain(records []domain.ResaleTransaction, metric domain.Metric) domain.Range {
	series := BoxPlotSeries(records, PeriodsOf(records), metric)

	max := 0.0
	for _, stats := range series {
		if stats.Max > max {
			max = stats.Max
		}
		for _, out := range stats.Outliers {
			if out.Value > max {
				max = out.Value
			}
		}
	}
	return domain.Range{Min: 0, Max: max * valueDomainPadding}
}

// GlobalLeaseDomain derives an integer-year inclusive range covering every
// parseable remaining lease in the dataset, suitable for a year-granularity
// range selector. Falls back to [0, 99] when nothing parses.
func GlobalLeaseDomain(records []domain.ResaleTransaction) (int, int) {
	min := math.Inf(1)
	max := math.Inf(-1)
	for i := range records {
		years, ok := ParseLeaseYears(records[i].RemainingLease)
		if !ok {
			continue
		}
		if years < min {
			min = years
		}
		if years > max {
			max = years
		}
	}
	if math.IsInf(min, 1) {
		return fallbackLeaseDomain[0], fallbackLeaseDomain[1]
	}
	return int(math.Floor(min)), int(math.Ceil(max))
}
