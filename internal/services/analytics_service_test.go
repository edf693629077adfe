package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resalepulse/internal/analytics"
	"resalepulse/internal/datastore"
	"resalepulse/pkg/contracts/domain"
)

type fakeFetcher struct {
	snapshot *datastore.Snapshot
	err      error
	calls    int
	months   []string
}

func (f *fakeFetcher) FetchWindow(ctx context.Context, months []string) (*datastore.Snapshot, error) {
	f.calls++
	f.months = months
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func testSnapshot(records []domain.ResaleTransaction, months ...string) *datastore.Snapshot {
	return &datastore.Snapshot{
		ID:        uuid.New(),
		FetchedAt: time.Now(),
		Months:    months,
		Records:   records,
	}
}

func testRecords() []domain.ResaleTransaction {
	return []domain.ResaleTransaction{
		{Month: "2024-01", Town: "BEDOK", FlatType: "4 ROOM", ResalePrice: "500000", FloorAreaSqm: "100", RemainingLease: "70 years"},
		{Month: "2024-01", Town: "BEDOK", FlatType: "4 ROOM", ResalePrice: "520000", FloorAreaSqm: "100", RemainingLease: "70 years"},
		{Month: "2024-02", Town: "TAMPINES", FlatType: "5 ROOM", ResalePrice: "1200000", FloorAreaSqm: "120", RemainingLease: "85 years"},
		{Month: "2024-03", Town: "BEDOK", FlatType: "3 ROOM", ResalePrice: "400000", FloorAreaSqm: "70", RemainingLease: "60 years"},
	}
}

func TestRefreshInstallsSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: testSnapshot(testRecords(), "2024-01", "2024-02", "2024-03")}
	svc := NewAnalyticsService(fetcher, 3, nil)

	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, fetcher.months, 3)

	current, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, snapshot.ID, current.ID)
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: testSnapshot(testRecords(), "2024-01", "2024-02", "2024-03")}
	svc := NewAnalyticsService(fetcher, 3, nil)

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	fetcher.err = errors.New("upstream down")
	_, err = svc.Refresh(context.Background())
	require.Error(t, err)

	current, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)
}

func TestSnapshotBeforeRefresh(t *testing.T) {
	svc := NewAnalyticsService(&fakeFetcher{}, 3, nil)

	_, err := svc.Snapshot()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	_, err = svc.Summary(context.Background(), analytics.Filter{})
	assert.ErrorIs(t, err, ErrNoSnapshot)

	_, err = svc.BoxPlot(context.Background(), analytics.Filter{}, domain.MetricPrice)
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestBoxPlotRejectsUnknownMetric(t *testing.T) {
	svc := NewAnalyticsService(&fakeFetcher{}, 3, nil)

	_, err := svc.BoxPlot(context.Background(), analytics.Filter{}, domain.Metric("bogus"))
	assert.ErrorIs(t, err, ErrInvalidMetric)

	_, err = svc.Domains(context.Background(), domain.Metric("bogus"))
	assert.ErrorIs(t, err, ErrInvalidMetric)
}

func TestTimeSeriesCoversSnapshotWindow(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: testSnapshot(testRecords(), "2024-01", "2024-02", "2024-03")}
	svc := NewAnalyticsService(fetcher, 3, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	series, err := svc.TimeSeries(context.Background(), analytics.Filter{})
	require.NoError(t, err)
	require.Len(t, series.Points, 3)
	assert.Equal(t, "2024-01", series.Points[0].Period)
}

func TestTimeSeriesNarrowedByFilterWindow(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: testSnapshot(testRecords(), "2024-01", "2024-02", "2024-03")}
	svc := NewAnalyticsService(fetcher, 3, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	series, err := svc.TimeSeries(context.Background(), analytics.Filter{FromMonth: "2024-02"})
	require.NoError(t, err)
	require.Len(t, series.Points, 2)
	assert.Equal(t, "2024-02", series.Points[0].Period)
	assert.Equal(t, "2024-03", series.Points[1].Period)
}

func TestTimeSeriesInvertedWindow(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: testSnapshot(testRecords(), "2024-01", "2024-02", "2024-03")}
	svc := NewAnalyticsService(fetcher, 3, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	_, err = svc.TimeSeries(context.Background(), analytics.Filter{FromMonth: "2024-03", ToMonth: "2024-01"})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestSummaryAppliesFilter(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: testSnapshot(testRecords(), "2024-01", "2024-02", "2024-03")}
	svc := NewAnalyticsService(fetcher, 3, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	stats, err := svc.Summary(context.Background(), analytics.Filter{Towns: []string{"TAMPINES"}})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
	require.NotNil(t, stats.MillionUnitPercentage)
	assert.InDelta(t, 100.0, *stats.MillionUnitPercentage, 1e-9)
}

func TestCategoriesWithShares(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: testSnapshot(testRecords(), "2024-01", "2024-02", "2024-03")}
	svc := NewAnalyticsService(fetcher, 3, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	result, err := svc.Categories(context.Background(), analytics.Filter{}, true)
	require.NoError(t, err)
	require.Len(t, result.Counts, 3)
	require.Len(t, result.Shares, 3)
	assert.Equal(t, 1, result.Counts[1].MillionAndAbove)

	result, err = svc.Categories(context.Background(), analytics.Filter{}, false)
	require.NoError(t, err)
	assert.Nil(t, result.Shares)
}

func TestDomainsIgnoreFilterState(t *testing.T) {
	records := []domain.ResaleTransaction{
		{Month: "2024-01", Town: "BEDOK", FlatType: "4 ROOM", ResalePrice: "400000", FloorAreaSqm: "100", RemainingLease: "60 years"},
		{Month: "2024-01", Town: "BEDOK", FlatType: "4 ROOM", ResalePrice: "500000", FloorAreaSqm: "100", RemainingLease: "70 years"},
		{Month: "2024-01", Town: "BEDOK", FlatType: "4 ROOM", ResalePrice: "600000", FloorAreaSqm: "100", RemainingLease: "75 years"},
		{Month: "2024-01", Town: "BEDOK", FlatType: "4 ROOM", ResalePrice: "700000", FloorAreaSqm: "100", RemainingLease: "80 years"},
		{Month: "2024-01", Town: "TAMPINES", FlatType: "5 ROOM", ResalePrice: "1200000", FloorAreaSqm: "120", RemainingLease: "85 years"},
	}
	fetcher := &fakeFetcher{snapshot: testSnapshot(records, "2024-01")}
	svc := NewAnalyticsService(fetcher, 3, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	domains, err := svc.Domains(context.Background(), domain.MetricPrice)
	require.NoError(t, err)
	assert.Equal(t, 0.0, domains.Value.Min)
	assert.InDelta(t, 1200000*1.05, domains.Value.Max, 1e-6)
	assert.Equal(t, 60, domains.LeaseMinYears)
	assert.Equal(t, 85, domains.LeaseMaxYears)
}

func TestRefreshClearsMemoizedResults(t *testing.T) {
	fetcher := &fakeFetcher{snapshot: testSnapshot(testRecords(), "2024-01", "2024-02", "2024-03")}
	svc := NewAnalyticsService(fetcher, 3, nil)
	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	stats, err := svc.Summary(context.Background(), analytics.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Count)

	fetcher.snapshot = testSnapshot(testRecords()[:1], "2024-01")
	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)

	stats, err = svc.Summary(context.Background(), analytics.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
}
