package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resalepulse/pkg/contracts/domain"
)

func TestTimeSeriesOver_OnePointPerPeriod(t *testing.T) {
	records := []domain.ResaleTransaction{
		pricedTx("2024-01", "400000"),
		pricedTx("2024-03", "500000"),
	}
	periods := []string{"2024-01", "2024-02", "2024-03"}

	ts := TimeSeriesOver(records, periods)
	require.Len(t, ts.Points, len(periods), "one point per requested period regardless of sparsity")

	for i, period := range periods {
		assert.Equal(t, period, ts.Points[i].Period)
	}

	// 2024-02 has no data: every field stays nil as a gap marker, never zero.
	gap := ts.Points[1]
	assert.Nil(t, gap.TransactionCount)
	assert.Nil(t, gap.GrossValue)
	assert.Nil(t, gap.MedianPricePerSqft)
	assert.Nil(t, gap.MedianPricePerLeaseYear)
	assert.Nil(t, gap.MillionUnitPercentage)
}

func TestTimeSeriesOver_MillionPercentage(t *testing.T) {
	records := []domain.ResaleTransaction{
		pricedTx("2024-01", "400000"),
		pricedTx("2024-01", "500000"),
		pricedTx("2024-01", "600000"),
		pricedTx("2024-01", "1050000"),
	}

	ts := TimeSeriesOver(records, []string{"2024-01"})
	require.Len(t, ts.Points, 1)

	point := ts.Points[0]
	require.NotNil(t, point.TransactionCount)
	assert.Equal(t, 4, *point.TransactionCount)
	require.NotNil(t, point.MillionUnitPercentage)
	assert.InDelta(t, 25.0, *point.MillionUnitPercentage, 1e-9)
	require.NotNil(t, point.GrossValue)
	assert.Equal(t, 2550000.0, *point.GrossValue)
}

func TestTimeSeriesOver_CountIsPurePriceValidity(t *testing.T) {
	records := []domain.ResaleTransaction{
		// Valid price but neither area nor lease: still counts.
		pricedTx("2024-01", "450000"),
		tx("2024-01", "BEDOK", "4 ROOM", "500000", "100", "60 years"),
		pricedTx("2024-01", "bad-price"), // dropped entirely
	}

	ts := TimeSeriesOver(records, []string{"2024-01"})
	require.Len(t, ts.Points, 1)

	point := ts.Points[0]
	require.NotNil(t, point.TransactionCount)
	assert.Equal(t, 2, *point.TransactionCount)

	// Median per-unit metrics run over their own one-record subsets.
	require.NotNil(t, point.MedianPricePerSqft)
	assert.InDelta(t, 500000/(100*domain.SquareFeetPerSquareMeter), *point.MedianPricePerSqft, 1e-9)
	require.NotNil(t, point.MedianPricePerLeaseYear)
	assert.InDelta(t, 500000.0/60, *point.MedianPricePerLeaseYear, 1e-9)
}

func TestTimeSeriesOver_Domains(t *testing.T) {
	records := []domain.ResaleTransaction{
		pricedTx("2024-01", "400000"),
		pricedTx("2024-01", "500000"),
		pricedTx("2024-02", "1200000"),
	}

	ts := TimeSeriesOver(records, []string{"2024-01", "2024-02"})

	// Counts pad by 1.2, value metrics by 1.05, lower bound pinned at zero.
	assert.Equal(t, 0.0, ts.TransactionCountDomain.Min)
	assert.InDelta(t, 2*1.2, ts.TransactionCountDomain.Max, 1e-9)
	assert.InDelta(t, 1200000*1.05, ts.GrossValueDomain.Max, 1e-6)
	assert.InDelta(t, 100*1.05, ts.MillionPctDomain.Max, 1e-9)
}

func TestTimeSeriesOver_UndefinedMetricKeepsFallbackDomain(t *testing.T) {
	// Prices parse but nothing carries area or lease, so the per-unit
	// domains have no defined observations to size from.
	records := []domain.ResaleTransaction{
		pricedTx("2024-01", "400000"),
	}

	ts := TimeSeriesOver(records, []string{"2024-01"})
	assert.Equal(t, fallbackPerUnitDomain, ts.MedianPsfDomain)
	assert.Equal(t, fallbackPerUnitDomain, ts.MedianLeaseDomain)
}

func TestTimeSeriesOver_EmptyInput(t *testing.T) {
	ts := TimeSeriesOver(nil, []string{"2024-01", "2024-02"})

	assert.Empty(t, ts.Points)
	assert.Equal(t, fallbackCountDomain, ts.TransactionCountDomain)
	assert.Equal(t, fallbackGrossValueDomain, ts.GrossValueDomain)
	assert.Equal(t, fallbackPerUnitDomain, ts.MedianPsfDomain)
	assert.Equal(t, fallbackPerUnitDomain, ts.MedianLeaseDomain)
	assert.Equal(t, fallbackPercentDomain, ts.MillionPctDomain)
}
