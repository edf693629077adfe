package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"resalepulse/internal/analytics"
	"resalepulse/internal/datastore"
	"resalepulse/pkg/contracts/domain"
)

// DataFetcher is the slice of the datastore client the service depends on.
type DataFetcher interface {
	FetchWindow(ctx context.Context, months []string) (*datastore.Snapshot, error)
}

// AxisDomains bundles the filter-independent axis ranges for one metric.
type AxisDomains struct {
	Value         domain.Range `json:"value"`
	LeaseMinYears int          `json:"lease_min_years"`
	LeaseMaxYears int          `json:"lease_max_years"`
}

// CategoryResult carries both presentations of the category breakdown; the
// percentage view is a display-time transform over the same counts.
type CategoryResult struct {
	Counts []domain.CategoryPoint      `json:"counts"`
	Shares []domain.CategorySharePoint `json:"shares,omitempty"`
}

// AnalyticsService orchestrates snapshot refreshes and aggregate
// computation. The aggregation functions are pure, so results are memoized
// per (snapshot ID, filter, metric); any refresh swaps the snapshot and
// drops the whole cache.
type AnalyticsService struct {
	fetcher      DataFetcher
	logger       *slog.Logger
	windowMonths int
	now          func() time.Time

	mu       sync.RWMutex
	snapshot *datastore.Snapshot

	cacheMu sync.Mutex
	cache   map[string]interface{}
}

// NewAnalyticsService creates the orchestration service.
func NewAnalyticsService(fetcher DataFetcher, windowMonths int, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		fetcher:      fetcher,
		logger:       logger.With(slog.String("component", "analytics_service")),
		windowMonths: windowMonths,
		now:          time.Now,
		cache:        make(map[string]interface{}),
	}
}

// Refresh fetches a fresh trailing window from the datastore and installs it
// as the current snapshot. On failure the previous snapshot stays in place.
func (s *AnalyticsService) Refresh(ctx context.Context) (*datastore.Snapshot, error) {
	months := datastore.TrailingMonths(s.now(), s.windowMonths)

	s.logger.InfoContext(ctx, "refreshing snapshot",
		slog.Int("window_months", len(months)))

	snapshot, err := s.fetcher.FetchWindow(ctx, months)
	if err != nil {
		s.logger.ErrorContext(ctx, "snapshot refresh failed",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("refresh snapshot: %w", err)
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.cacheMu.Lock()
	s.cache = make(map[string]interface{})
	s.cacheMu.Unlock()

	s.logger.InfoContext(ctx, "snapshot refreshed",
		slog.String("snapshot_id", snapshot.ID.String()),
		slog.Int("record_count", len(snapshot.Records)))

	return snapshot, nil
}

// Snapshot returns the current snapshot, or ErrNoSnapshot before the first
// successful refresh.
func (s *AnalyticsService) Snapshot() (*datastore.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	return s.snapshot, nil
}

// BoxPlot computes the quartile series for the filtered selection.
func (s *AnalyticsService) BoxPlot(ctx context.Context, filter analytics.Filter, metric domain.Metric) ([]domain.PeriodBoxPlot, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMetric, metric)
	}
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	key := cacheKey("boxplot", snapshot, filter, string(metric))
	if cached, ok := s.cached(key); ok {
		return cached.([]domain.PeriodBoxPlot), nil
	}

	periods, err := s.periodDomain(snapshot, filter)
	if err != nil {
		return nil, err
	}
	series := analytics.BoxPlotSeries(filter.Apply(snapshot.Records), periods, metric)
	s.store(key, series)
	return series, nil
}

// Domains returns the filter-independent axis ranges: the global value
// domain for the metric and the integer lease-year range. Both run over the
// full snapshot so visible-window changes never rescale axes.
func (s *AnalyticsService) Domains(ctx context.Context, metric domain.Metric) (AxisDomains, error) {
	if !metric.Valid() {
		return AxisDomains{}, fmt.Errorf("%w: %q", ErrInvalidMetric, metric)
	}
	snapshot, err := s.Snapshot()
	if err != nil {
		return AxisDomains{}, err
	}

	key := cacheKey("domains", snapshot, analytics.Filter{}, string(metric))
	if cached, ok := s.cached(key); ok {
		return cached.(AxisDomains), nil
	}

	leaseMin, leaseMax := analytics.GlobalLeaseDomain(snapshot.Records)
	domains := AxisDomains{
		Value:         analytics.GlobalValueDomain(snapshot.Records, metric),
		LeaseMinYears: leaseMin,
		LeaseMaxYears: leaseMax,
	}
	s.store(key, domains)
	return domains, nil
}

// Summary computes whole-selection statistics for the filtered records.
func (s *AnalyticsService) Summary(ctx context.Context, filter analytics.Filter) (domain.SummaryStats, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return domain.SummaryStats{}, err
	}

	key := cacheKey("summary", snapshot, filter, "")
	if cached, ok := s.cached(key); ok {
		return cached.(domain.SummaryStats), nil
	}

	stats := analytics.Summary(filter.Apply(snapshot.Records))
	s.store(key, stats)
	return stats, nil
}

// TimeSeries computes the per-period trend rows for the filtered selection.
func (s *AnalyticsService) TimeSeries(ctx context.Context, filter analytics.Filter) (domain.TimeSeries, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return domain.TimeSeries{}, err
	}

	key := cacheKey("timeseries", snapshot, filter, "")
	if cached, ok := s.cached(key); ok {
		return cached.(domain.TimeSeries), nil
	}

	periods, err := s.periodDomain(snapshot, filter)
	if err != nil {
		return domain.TimeSeries{}, err
	}
	series := analytics.TimeSeriesOver(filter.Apply(snapshot.Records), periods)
	s.store(key, series)
	return series, nil
}

// Categories computes the price-band breakdown. When includeShares is set
// the percentage view is derived alongside the counts.
func (s *AnalyticsService) Categories(ctx context.Context, filter analytics.Filter, includeShares bool) (CategoryResult, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return CategoryResult{}, err
	}

	key := cacheKey("categories", snapshot, filter, fmt.Sprintf("shares=%t", includeShares))
	if cached, ok := s.cached(key); ok {
		return cached.(CategoryResult), nil
	}

	periods, err := s.periodDomain(snapshot, filter)
	if err != nil {
		return CategoryResult{}, err
	}
	result := CategoryResult{
		Counts: analytics.CategoryBreakdown(filter.Apply(snapshot.Records), periods),
	}
	if includeShares {
		result.Shares = analytics.CategoryShares(result.Counts)
	}
	s.store(key, result)
	return result, nil
}

// periodDomain resolves the explicit ordered period domain for a request:
// the snapshot's full gapless window, narrowed by the filter's month bounds
// when present.
func (s *AnalyticsService) periodDomain(snapshot *datastore.Snapshot, filter analytics.Filter) ([]string, error) {
	if len(snapshot.Months) == 0 {
		return nil, ErrSnapshotEmpty
	}

	from := snapshot.Months[0]
	to := snapshot.Months[len(snapshot.Months)-1]
	if filter.FromMonth != "" && filter.FromMonth > from {
		from = filter.FromMonth
	}
	if filter.ToMonth != "" && filter.ToMonth < to {
		to = filter.ToMonth
	}
	if from > to {
		return nil, fmt.Errorf("%w: %s after %s", ErrInvalidWindow, from, to)
	}

	periods, err := analytics.PeriodsBetween(from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	return periods, nil
}

func cacheKey(op string, snapshot *datastore.Snapshot, filter analytics.Filter, extra string) string {
	return fmt.Sprintf("%s|%s|%s|%s", op, snapshot.ID, filter.Key(), extra)
}

func (s *AnalyticsService) cached(key string) (interface{}, bool) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	v, ok := s.cache[key]
	return v, ok
}

func (s *AnalyticsService) store(key string, value interface{}) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cache[key] = value
}
