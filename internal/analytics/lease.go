package analytics

import (
	"regexp"
	"strconv"
)

// leasePattern matches remaining-lease text such as "61 years 04 months" or
// "99 years". It is deliberately lenient: months are not validated to be
// below 12 and years carry no upper bound, so the set of accepted rows stays
// stable against upstream formatting quirks.
var leasePattern = regexp.MustCompile(`(\d+)\s*years?(?:\s+(\d+)\s*months?)?`)

// ParseLeaseYears converts free-text remaining-lease strings to a fractional
// year count (years + months/12). The second return value is false when the
// text is empty or does not match the expected pattern; that is a routine
// outcome for noisy rows, not an error.
func ParseLeaseYears(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	m := leasePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	months := 0
	if m[2] != "" {
		months, err = strconv.Atoi(m[2])
		if err != nil {
			return 0, false
		}
	}
	return float64(years) + float64(months)/12, true
}
