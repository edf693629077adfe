package analytics

import (
	"fmt"
	"strings"

	"resalepulse/pkg/contracts/domain"
)

// Filter narrows a record snapshot before aggregation. Zero-valued fields
// match everything, so the zero Filter passes the snapshot through
// unchanged. Lease bounds only apply to records whose lease text parses;
// when a bound is set, unparseable-lease records are filtered out, matching
// the dashboard's lease range selector.
type Filter struct {
	Towns     []string
	FlatTypes []string
	FromMonth string
	ToMonth   string

	MinLeaseYears *float64
	MaxLeaseYears *float64
}

// IsZero reports whether the filter matches every record.
func (f Filter) IsZero() bool {
	return len(f.Towns) == 0 && len(f.FlatTypes) == 0 &&
		f.FromMonth == "" && f.ToMonth == "" &&
		f.MinLeaseYears == nil && f.MaxLeaseYears == nil
}

// Apply returns the records matching the filter, preserving input order. The
// input slice is never mutated.
func (f Filter) Apply(records []domain.ResaleTransaction) []domain.ResaleTransaction {
	if f.IsZero() {
		return records
	}
	matched := make([]domain.ResaleTransaction, 0, len(records))
	for i := range records {
		if f.matches(&records[i]) {
			matched = append(matched, records[i])
		}
	}
	return matched
}

func (f Filter) matches(rec *domain.ResaleTransaction) bool {
	if len(f.Towns) > 0 && !containsFold(f.Towns, rec.Town) {
		return false
	}
	if len(f.FlatTypes) > 0 && !containsFold(f.FlatTypes, rec.FlatType) {
		return false
	}
	if f.FromMonth != "" && rec.Month < f.FromMonth {
		return false
	}
	if f.ToMonth != "" && rec.Month > f.ToMonth {
		return false
	}
	if f.MinLeaseYears != nil || f.MaxLeaseYears != nil {
		years, ok := ParseLeaseYears(rec.RemainingLease)
		if !ok {
			return false
		}
		if f.MinLeaseYears != nil && years < *f.MinLeaseYears {
			return false
		}
		if f.MaxLeaseYears != nil && years > *f.MaxLeaseYears {
			return false
		}
	}
	return true
}

// Key returns a stable string identity for the filter, usable as part of a
// memoization key alongside the snapshot ID.
func (f Filter) Key() string {
	var b strings.Builder
	b.WriteString(strings.Join(f.Towns, ","))
	b.WriteByte('|')
	b.WriteString(strings.Join(f.FlatTypes, ","))
	fmt.Fprintf(&b, "|%s|%s", f.FromMonth, f.ToMonth)
	if f.MinLeaseYears != nil {
		fmt.Fprintf(&b, "|min=%g", *f.MinLeaseYears)
	}
	if f.MaxLeaseYears != nil {
		fmt.Fprintf(&b, "|max=%g", *f.MaxLeaseYears)
	}
	return b.String()
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
