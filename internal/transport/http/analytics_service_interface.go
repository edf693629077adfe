package http

import (
	"context"

	"resalepulse/internal/analytics"
	"resalepulse/internal/datastore"
	"resalepulse/internal/services"
	"resalepulse/pkg/contracts/domain"
)

// AnalyticsServiceInterface is the service surface the handlers depend on.
// Kept as an interface so handler tests can substitute a stub.
type AnalyticsServiceInterface interface {
	Refresh(ctx context.Context) (*datastore.Snapshot, error)
	Snapshot() (*datastore.Snapshot, error)
	BoxPlot(ctx context.Context, filter analytics.Filter, metric domain.Metric) ([]domain.PeriodBoxPlot, error)
	Domains(ctx context.Context, metric domain.Metric) (services.AxisDomains, error)
	Summary(ctx context.Context, filter analytics.Filter) (domain.SummaryStats, error)
	TimeSeries(ctx context.Context, filter analytics.Filter) (domain.TimeSeries, error)
	Categories(ctx context.Context, filter analytics.Filter, includeShares bool) (services.CategoryResult, error)
}
