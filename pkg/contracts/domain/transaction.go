package domain

// ResaleTransaction represents one raw resale transaction row as returned by
// the open-data datastore. All value fields arrive as strings; parsing and
// validity decisions belong to the analytics layer, which excludes rather
// than defaults any field that fails to parse.
type ResaleTransaction struct {
	Month          string `json:"month" validate:"required"`
	Town           string `json:"town"`
	FlatType       string `json:"flat_type"`
	ResalePrice    string `json:"resale_price" validate:"required"`
	FloorAreaSqm   string `json:"floor_area_sqm,omitempty"`
	RemainingLease string `json:"remaining_lease,omitempty"`
}

// Metric selects which per-transaction value an aggregation operates on.
type Metric string

const (
	MetricPrice             Metric = "price"
	MetricPricePerSqft      Metric = "price_per_sqft"
	MetricPricePerLeaseYear Metric = "price_per_lease_year"
)

// Valid reports whether m is one of the supported metrics.
func (m Metric) Valid() bool {
	switch m {
	case MetricPrice, MetricPricePerSqft, MetricPricePerLeaseYear:
		return true
	}
	return false
}

// SquareFeetPerSquareMeter converts floor areas from the datastore's square
// meters to the square feet the dashboard displays.
const SquareFeetPerSquareMeter = 10.7639
