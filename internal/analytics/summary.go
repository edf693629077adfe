package analytics

import (
	"sort"

	"resalepulse/pkg/contracts/domain"
)

// millionThreshold is the price at which a transaction counts toward the
// million-unit share.
const millionThreshold = 1_000_000

// Summary computes whole-selection point statistics over the given records.
// Each sub-statistic is computed over its own independently filtered subset:
// a record missing floor area still contributes to the per-lease-year
// figures, and vice versa. With zero valid-priced records the result is
// {Count: 0} with every other field nil.
func Summary(records []domain.ResaleTransaction) domain.SummaryStats {
	var (
		prices      []float64
		psfValues   []float64
		leaseValues []float64
		gross       float64
		millionN    int
	)
	for i := range records {
		d, ok := deriveRecord(&records[i])
		if !ok {
			continue
		}
		prices = append(prices, d.price)
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

	stats := domain.SummaryStats{Count: len(prices)}
	if len(prices) == 0 {
		return stats
	}

	sort.Float64s(prices)
	stats.MinPrice = f64(prices[0])
	stats.MedianPrice = f64(median(prices))
	stats.MaxPrice = f64(prices[len(prices)-1])
	stats.GrossTransactionValue = f64(gross)
	stats.MillionUnitPercentage = f64(float64(millionN) / float64(len(prices)) * 100)

	if len(psfValues) > 0 {
		sort.Float64s(psfValues)
		stats.MinPricePerSqft = f64(psfValues[0])
		stats.MedianPricePerSqft = f64(median(psfValues))
		stats.MaxPricePerSqft = f64(psfValues[len(psfValues)-1])
	}
	if len(leaseValues) > 0 {
		sort.Float64s(leaseValues)
		stats.MinPricePerLeaseYear = f64(leaseValues[0])
		stats.MedianPricePerLeaseYear = f64(median(leaseValues))
		stats.MaxPricePerLeaseYear = f64(leaseValues[len(leaseValues)-1])
	}
	return stats
}

func f64(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
