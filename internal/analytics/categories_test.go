package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resalepulse/pkg/contracts/domain"
)

func TestCategoryBreakdown_BandBoundaries(t *testing.T) {
	// Boundary prices land in the upper band: intervals are half-open
	// [lower, upper) with an unbounded top band.
	records := []domain.ResaleTransaction{
		pricedTx("2024-01", "299999"),
		pricedTx("2024-01", "300000"),
		pricedTx("2024-01", "499999"),
		pricedTx("2024-01", "500000"),
		pricedTx("2024-01", "799999"),
		pricedTx("2024-01", "800000"),
		pricedTx("2024-01", "999999"),
		pricedTx("2024-01", "1000000"),
		pricedTx("2024-01", "2400000"),
	}

	points := CategoryBreakdown(records, []string{"2024-01"})
	require.Len(t, points, 1)

	point := points[0]
	assert.Equal(t, 1, point.Below300K)
	assert.Equal(t, 2, point.From300KTo500K)
	assert.Equal(t, 2, point.From500KTo800K)
	assert.Equal(t, 2, point.From800KTo1M)
	assert.Equal(t, 2, point.MillionAndAbove)
	assert.Equal(t, 9, point.TotalTransactions)

	sum := point.Below300K + point.From300KTo500K + point.From500KTo800K +
		point.From800KTo1M + point.MillionAndAbove
	assert.Equal(t, point.TotalTransactions, sum)
}

func TestCategoryBreakdown_InvalidPriceReducesTotal(t *testing.T) {
	records := []domain.ResaleTransaction{
		pricedTx("2024-01", "450000"),
		pricedTx("2024-01", "price on request"),
	}

	points := CategoryBreakdown(records, []string{"2024-01"})
	require.Len(t, points, 1)
	assert.Equal(t, 1, points[0].TotalTransactions)
}

func TestCategoryBreakdown_EmptyPeriodsAreZeroRows(t *testing.T) {
	points := CategoryBreakdown(nil, []string{"2024-01", "2024-02"})
	require.Len(t, points, 2)
	for _, point := range points {
		assert.Zero(t, point.TotalTransactions)
	}
}

func TestCategoryShares(t *testing.T) {
	points := []domain.CategoryPoint{
		{
			Period:            "2024-01",
			Below300K:         1,
			From300KTo500K:    2,
			From500KTo800K:    4,
			From800KTo1M:      1,
			MillionAndAbove:   2,
			TotalTransactions: 10,
		},
		{Period: "2024-02"},
	}

	shares := CategoryShares(points)
	require.Len(t, shares, 2)

	traded := shares[0]
	assert.InDelta(t, 10, traded.Below300K, 1e-9)
	assert.InDelta(t, 20, traded.From300KTo500K, 1e-9)
	assert.InDelta(t, 40, traded.From500KTo800K, 1e-9)
	assert.InDelta(t, 10, traded.From800KTo1M, 1e-9)
	assert.InDelta(t, 20, traded.MillionAndAbove, 1e-9)

	total := traded.Below300K + traded.From300KTo500K + traded.From500KTo800K +
		traded.From800KTo1M + traded.MillionAndAbove
	assert.InDelta(t, 100, total, 1e-9)

	empty := shares[1]
	assert.Zero(t, empty.Below300K)
	assert.Zero(t, empty.MillionAndAbove)
	assert.Zero(t, empty.TotalTransactions)
}
