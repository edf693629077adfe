package analytics

import (
	"fmt"
	"sort"
	"time"

	"resalepulse/pkg/contracts/domain"
)

// monthLayout is the period key format used throughout the pipeline. Keys
// sort chronologically as plain strings.
const monthLayout = "2006-01"

// PeriodsOf returns the distinct months present in records, ascending. Months
// absent from the data are not filled in; use PeriodsBetween for a gapless
// domain.
func PeriodsOf(records []domain.ResaleTransaction) []string {
	seen := make(map[string]struct{})
	for i := range records {
		if records[i].Month == "" {
			continue
		}
		seen[records[i].Month] = struct{}{}
	}
	periods := make([]string, 0, len(seen))
	for period := range seen {
		periods = append(periods, period)
	}
	sort.Strings(periods)
	return periods
}

// PeriodsBetween expands an inclusive [from, to] month window into the full
// ordered sequence of period keys, including months with no transactions.
// Time-series aggregation relies on those explicit entries to mark gaps.
func PeriodsBetween(from, to string) ([]string, error) {
	start, err := time.Parse(monthLayout, from)
	if err != nil {
		return nil, fmt.Errorf("parse from month %q: %w", from, err)
	}
	end, err := time.Parse(monthLayout, to)
	if err != nil {
		return nil, fmt.Errorf("parse to month %q: %w", to, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("month window inverted: %s after %s", from, to)
	}

	var periods []string
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		periods = append(periods, cur.Format(monthLayout))
	}
	return periods, nil
}
