package analytics

import (
	"math"
	"sort"

	"resalepulse/pkg/contracts/domain"
)

// minBoxPlotSamples is the smallest per-period sample that still yields a
// meaningful quartile spread. Periods below it are omitted from the series
// entirely rather than emitted as degenerate zero-width boxes.
const minBoxPlotSamples = 5

// iqrFenceMultiplier is the standard Tukey fence factor: values beyond
// q1-1.5*IQR or q3+1.5*IQR are classified as outliers.
const iqrFenceMultiplier = 1.5

// BoxPlotSeries computes per-period quartile statistics and outliers for the
// requested metric. Output order follows the order of periods; periods with
// fewer than minBoxPlotSamples valid records are absent from the result.
// Whisker min/max are the most extreme observations inside the fences, not
// the fence values themselves.
func BoxPlotSeries(records []domain.ResaleTransaction, periods []string, metric domain.Metric) []domain.PeriodBoxPlot {
	byPeriod := make(map[string][]derivedRecord, len(periods))
	for i := range records {
		rec := &records[i]
		if rec.Town == "" || rec.FlatType == "" {
			continue
		}
		d, ok := deriveRecord(rec)
		if !ok {
			continue
		}
		byPeriod[rec.Month] = append(byPeriod[rec.Month], d)
	}

	series := make([]domain.PeriodBoxPlot, 0, len(periods))
	for _, period := range periods {
		stats, ok := boxPlotForPeriod(period, byPeriod[period], metric)
		if !ok {
			continue
		}
		series = append(series, stats)
	}
	return series
}

type metricObservation struct {
	value  float64
	record derivedRecord
}

func boxPlotForPeriod(period string, candidates []derivedRecord, metric domain.Metric) (domain.PeriodBoxPlot, bool) {
	observations := make([]metricObservation, 0, len(candidates))
	for _, d := range candidates {
		value, ok := d.metricValue(metric)
		if !ok {
			continue
		}
		observations = append(observations, metricObservation{value: value, record: d})
	}
	if len(observations) < minBoxPlotSamples {
		return domain.PeriodBoxPlot{}, false
	}

	sort.Slice(observations, func(i, j int) bool {
		return observations[i].value < observations[j].value
	})
	values := make([]float64, len(observations))
	for i, obs := range observations {
		values[i] = obs.value
	}

	q1 := quantile(values, 0.25)
	med := quantile(values, 0.5)
	q3 := quantile(values, 0.75)
	iqr := q3 - q1
	lowerFence := q1 - iqrFenceMultiplier*iqr
	upperFence := q3 + iqrFenceMultiplier*iqr

	stats := domain.PeriodBoxPlot{
		Period:   period,
		Q1:       q1,
		Median:   med,
		Q3:       q3,
		Min:      math.Inf(1),
		Max:      math.Inf(-1),
		Outliers: []domain.Outlier{},
	}
	for _, obs := range observations {
		if obs.value < lowerFence || obs.value > upperFence {
			stats.Outliers = append(stats.Outliers, newOutlier(obs))
			continue
		}
		if obs.value < stats.Min {
			stats.Min = obs.value
		}
		if obs.value > stats.Max {
			stats.Max = obs.value
		}
	}
	return stats, true
}

func newOutlier(obs metricObservation) domain.Outlier {
	out := domain.Outlier{
		Value:          obs.value,
		Town:           obs.record.src.Town,
		FlatType:       obs.record.src.FlatType,
		Price:          obs.record.price,
		RemainingLease: obs.record.src.RemainingLease,
	}
	if obs.record.hasValidArea() {
		out.FloorAreaSqm = obs.record.areaSqm
	}
	return out
}
