package analytics

import (
	"resalepulse/pkg/contracts/domain"
)

// Price band boundaries. Each band is half-open [lower, upper) except the top
// band, which is unbounded above. The convention is intentional; do not
// close the intervals.
const (
	band300K = 300_000
	band500K = 500_000
	band800K = 800_000
	band1M   = 1_000_000
)

// CategoryBreakdown tallies each period's valid-priced transactions into the
// five fixed price bands, one point per period in the given order. Records
// whose price does not parse are excluded entirely and reduce the period
// total.
func CategoryBreakdown(records []domain.ResaleTransaction, periods []string) []domain.CategoryPoint {
	byPeriod := make(map[string]*domain.CategoryPoint, len(periods))
	points := make([]domain.CategoryPoint, len(periods))
	for i, period := range periods {
		points[i] = domain.CategoryPoint{Period: period}
		byPeriod[period] = &points[i]
	}

	for i := range records {
		point, ok := byPeriod[records[i].Month]
		if !ok {
			continue
		}
		price, ok := parsePrice(records[i].ResalePrice)
		if !ok {
			continue
		}
		switch {
		case price < band300K:
			point.Below300K++
		case price < band500K:
			point.From300KTo500K++
		case price < band800K:
			point.From500KTo800K++
		case price < band1M:
			point.From800KTo1M++
		default:
			point.MillionAndAbove++
		}
		point.TotalTransactions++
	}
	return points
}

// CategoryShares converts band counts to percentage shares of each period's
// total. It is a display-time transform over the same counts: shares sum to
// 100 when a period traded and are all zero when it did not.
func CategoryShares(points []domain.CategoryPoint) []domain.CategorySharePoint {
	shares := make([]domain.CategorySharePoint, len(points))
	for i, point := range points {
		share := domain.CategorySharePoint{
			Period:            point.Period,
			TotalTransactions: point.TotalTransactions,
		}
		if point.TotalTransactions > 0 {
			total := float64(point.TotalTransactions)
			share.Below300K = float64(point.Below300K) / total * 100
			share.From300KTo500K = float64(point.From300KTo500K) / total * 100
			share.From500KTo800K = float64(point.From500KTo800K) / total * 100
			share.From800KTo1M = float64(point.From800KTo1M) / total * 100
			share.MillionAndAbove = float64(point.MillionAndAbove) / total * 100
		}
		shares[i] = share
	}
	return shares
}
