package domain

// Range is an inclusive numeric axis domain, [Min, Max].
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Outlier is a fence-excluded observation in a period's box plot. It carries
// enough of the original transaction to render a tooltip without a second
// lookup.
type Outlier struct {
	Value          float64 `json:"value"`
	Town           string  `json:"town"`
	FlatType       string  `json:"flat_type"`
	Price          float64 `json:"price"`
	FloorAreaSqm   float64 `json:"floor_area_sqm,omitempty"`
	RemainingLease string  `json:"remaining_lease,omitempty"`
}

// PeriodBoxPlot holds quartile statistics for one period. Min and Max are the
// most extreme observations inside the 1.5-IQR fences, not the fences
// themselves, matching standard box-plot whisker convention.
type PeriodBoxPlot struct {
	Period   string    `json:"period"`
	Min      float64   `json:"min"`
	Q1       float64   `json:"q1"`
	Median   float64   `json:"median"`
	Q3       float64   `json:"q3"`
	Max      float64   `json:"max"`
	Outliers []Outlier `json:"outliers"`
}

// SummaryStats is a whole-selection snapshot. Every field except Count is nil
// when its underlying metric has zero valid records; a nil here must never be
// rendered as zero.
type SummaryStats struct {
	Count int `json:"count"`

	MinPrice    *float64 `json:"min_price,omitempty"`
	MedianPrice *float64 `json:"median_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`

	MinPricePerSqft    *float64 `json:"min_price_per_sqft,omitempty"`
	MedianPricePerSqft *float64 `json:"median_price_per_sqft,omitempty"`
	MaxPricePerSqft    *float64 `json:"max_price_per_sqft,omitempty"`

	MinPricePerLeaseYear    *float64 `json:"min_price_per_lease_year,omitempty"`
	MedianPricePerLeaseYear *float64 `json:"median_price_per_lease_year,omitempty"`
	MaxPricePerLeaseYear    *float64 `json:"max_price_per_lease_year,omitempty"`

	GrossTransactionValue *float64 `json:"gross_transaction_value,omitempty"`
	MillionUnitPercentage *float64 `json:"million_unit_percentage,omitempty"`
}

// TimeSeriesPoint is one row per period in the requested domain. A period
// with no valid-priced transactions keeps nil metric fields as an explicit
// gap marker so line charts break instead of dipping to zero.
type TimeSeriesPoint struct {
	Period                  string   `json:"period"`
	TransactionCount        *int     `json:"transaction_count,omitempty"`
	GrossValue              *float64 `json:"gross_value,omitempty"`
	MedianPricePerSqft      *float64 `json:"median_price_per_sqft,omitempty"`
	MedianPricePerLeaseYear *float64 `json:"median_price_per_lease_year,omitempty"`
	MillionUnitPercentage   *float64 `json:"million_unit_percentage,omitempty"`
}

// TimeSeries bundles the per-period points with a padded Y-axis domain per
// selectable metric, so the chart keeps stable axes while metrics toggle.
type TimeSeries struct {
	Points []TimeSeriesPoint `json:"points"`

	TransactionCountDomain Range `json:"transaction_count_domain"`
	GrossValueDomain       Range `json:"gross_value_domain"`
	MedianPsfDomain        Range `json:"median_psf_domain"`
	MedianLeaseDomain      Range `json:"median_lease_domain"`
	MillionPctDomain       Range `json:"million_pct_domain"`
}

// CategoryPoint tallies one period's transactions into the five fixed price
// bands. Band membership is half-open [lower, upper) except the top band,
// which is unbounded above.
type CategoryPoint struct {
	Period            string `json:"period"`
	Below300K         int    `json:"below_300k"`
	From300KTo500K    int    `json:"from_300k_to_500k"`
	From500KTo800K    int    `json:"from_500k_to_800k"`
	From800KTo1M      int    `json:"from_800k_to_1m"`
	MillionAndAbove   int    `json:"million_and_above"`
	TotalTransactions int    `json:"total_transactions"`
}

// CategorySharePoint is the percentage-mode presentation of a CategoryPoint:
// each band as a share of the period total, summing to 100 when the total is
// positive and all zero when it is not.
type CategorySharePoint struct {
	Period            string  `json:"period"`
	Below300K         float64 `json:"below_300k"`
	From300KTo500K    float64 `json:"from_300k_to_500k"`
	From500KTo800K    float64 `json:"from_500k_to_800k"`
	From800KTo1M      float64 `json:"from_800k_to_1m"`
	MillionAndAbove   float64 `json:"million_and_above"`
	TotalTransactions int     `json:"total_transactions"`
}
