package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"resalepulse/internal/analytics"
	"resalepulse/internal/config"
	"resalepulse/internal/datastore"
	"resalepulse/internal/exporter"
	"resalepulse/pkg/contracts/domain"
)

func main() {
	outputDir := flag.String("out", "", "output directory for report files (defaults to config export dir)")
	months := flag.Int("months", 0, "number of trailing months to fetch (defaults to config window)")
	xlsxOnly := flag.Bool("xlsx-only", false, "skip the per-table CSV files")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall fetch timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *outputDir == "" {
		*outputDir = cfg.Export.OutputDir
	}
	windowMonths := cfg.Datastore.WindowMonths
	if *months > 0 {
		windowMonths = *months
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := datastore.NewClient(cfg.Datastore, slog.Default(), nil)
	window := datastore.TrailingMonths(time.Now(), windowMonths)

	slog.Info("Fetching snapshot",
		"from", window[0],
		"to", window[len(window)-1])

	snapshot, err := client.FetchWindow(ctx, window)
	if err != nil {
		slog.Error("Snapshot fetch failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Snapshot fetched",
		"snapshot_id", snapshot.ID.String(),
		"record_count", len(snapshot.Records))

	report := buildReport(snapshot)
	exp := exporter.NewReportExporter(*outputDir)

	if !*xlsxOnly {
		if err := exp.ExportCSV(report); err != nil {
			slog.Error("CSV export failed", "error", err)
			os.Exit(1)
		}
	}

	path, err := exp.ExportWorkbook(report)
	if err != nil {
		slog.Error("Workbook export failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Report written", "path", path)
}

func buildReport(snapshot *datastore.Snapshot) *exporter.Report {
	boxPlots := make(map[domain.Metric][]domain.PeriodBoxPlot)
	for _, metric := range []domain.Metric{
		domain.MetricPrice,
		domain.MetricPricePerSqft,
		domain.MetricPricePerLeaseYear,
	} {
		boxPlots[metric] = analytics.BoxPlotSeries(snapshot.Records, snapshot.Months, metric)
	}

	return &exporter.Report{
		GeneratedAt: time.Now(),
		Months:      snapshot.Months,
		Summary:     analytics.Summary(snapshot.Records),
		TimeSeries:  analytics.TimeSeriesOver(snapshot.Records, snapshot.Months),
		Categories:  analytics.CategoryBreakdown(snapshot.Records, snapshot.Months),
		BoxPlots:    boxPlots,
	}
}
