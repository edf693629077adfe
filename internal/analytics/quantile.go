package analytics

import "math"

// quantile estimates the p-quantile of an ascending-sorted slice by linear
// interpolation at h = p*(n-1), the Hyndman-Fan type 7 estimator that most
// statistical libraries default to. Different interpolation conventions give
// slightly different quartiles at small sample sizes, so this one estimator
// is used everywhere quartiles or medians are computed.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	h := p * float64(n-1)
	lower := int(math.Floor(h))
	upper := int(math.Ceil(h))
	if lower == upper {
		return sorted[lower]
	}
	frac := h - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

func median(sorted []float64) float64 {
	return quantile(sorted, 0.5)
}
