package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"resalepulse/pkg/contracts/domain"
)

// Report bundles the snapshot aggregates a single export run writes out.
type Report struct {
	GeneratedAt time.Time
	Months      []string
	Summary     domain.SummaryStats
	TimeSeries  domain.TimeSeries
	Categories  []domain.CategoryPoint
	BoxPlots    map[domain.Metric][]domain.PeriodBoxPlot
}

// ReportExporter writes a Report as CSV tables and an XLSX workbook.
type ReportExporter struct {
	csvWriter *CSVWriter
	outputDir string
}

// NewReportExporter creates a report exporter rooted at outputDir.
func NewReportExporter(outputDir string) *ReportExporter {
	return &ReportExporter{
		csvWriter: NewCSVWriter(outputDir),
		outputDir: outputDir,
	}
}

// ExportCSV writes one CSV file per aggregate table.
func (e *ReportExporter) ExportCSV(report *Report) error {
	if err := e.csvWriter.WriteSimpleCSV("summary.csv", summaryHeaders(), summaryRows(report.Summary)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if err := e.csvWriter.WriteSimpleCSV("timeseries.csv", timeSeriesHeaders(), timeSeriesRows(report.TimeSeries)); err != nil {
		return fmt.Errorf("failed to write timeseries: %w", err)
	}
	if err := e.csvWriter.WriteSimpleCSV("categories.csv", categoryHeaders(), categoryRows(report.Categories)); err != nil {
		return fmt.Errorf("failed to write categories: %w", err)
	}
	for metric, series := range report.BoxPlots {
		filename := fmt.Sprintf("boxplot_%s.csv", metric)
		if err := e.csvWriter.WriteSimpleCSV(filename, boxPlotHeaders(), boxPlotRows(series)); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
	}
	return nil
}

// ExportWorkbook writes the whole report as a multi-sheet XLSX file and
// returns the path it was written to.
func (e *ReportExporter) ExportWorkbook(report *Report) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Summary", summaryHeaders(), summaryRows(report.Summary)); err != nil {
		return "", err
	}
	if err := writeSheet(f, "TimeSeries", timeSeriesHeaders(), timeSeriesRows(report.TimeSeries)); err != nil {
		return "", err
	}
	if err := writeSheet(f, "Categories", categoryHeaders(), categoryRows(report.Categories)); err != nil {
		return "", err
	}
	for metric, series := range report.BoxPlots {
		sheet := fmt.Sprintf("BoxPlot %s", metric)
		if len(sheet) > 31 {
			sheet = sheet[:31]
		}
		if err := writeSheet(f, sheet, boxPlotHeaders(), boxPlotRows(series)); err != nil {
			return "", err
		}
	}

	// The default sheet excelize creates is replaced by Summary.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to drop default sheet: %w", err)
	}

	filename := fmt.Sprintf("resale_report_%s.xlsx", report.GeneratedAt.Format("2006_01_02"))
	path := filepath.Join(e.outputDir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	if err := f.SetSheetRow(name, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers on %s: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to locate row %d on %s: %w", i+2, name, err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+2, name, err)
		}
	}
	return nil
}

func summaryHeaders() []string {
	return []string{
		"Count", "MinPrice", "MedianPrice", "MaxPrice",
		"MinPricePerSqft", "MedianPricePerSqft", "MaxPricePerSqft",
		"MinPricePerLeaseYear", "MedianPricePerLeaseYear", "MaxPricePerLeaseYear",
		"GrossTransactionValue", "MillionUnitPercentage",
	}
}

func summaryRows(s domain.SummaryStats) [][]string {
	return [][]string{{
		formatInt(s.Count),
		formatOptionalFloat(s.MinPrice),
		formatOptionalFloat(s.MedianPrice),
		formatOptionalFloat(s.MaxPrice),
		formatOptionalFloat(s.MinPricePerSqft),
		formatOptionalFloat(s.MedianPricePerSqft),
		formatOptionalFloat(s.MaxPricePerSqft),
		formatOptionalFloat(s.MinPricePerLeaseYear),
		formatOptionalFloat(s.MedianPricePerLeaseYear),
		formatOptionalFloat(s.MaxPricePerLeaseYear),
		formatOptionalFloat(s.GrossTransactionValue),
		formatOptionalFloat(s.MillionUnitPercentage),
	}}
}

func timeSeriesHeaders() []string {
	return []string{
		"Period", "TransactionCount", "GrossValue",
		"MedianPricePerSqft", "MedianPricePerLeaseYear", "MillionUnitPercentage",
	}
}

func timeSeriesRows(series domain.TimeSeries) [][]string {
	rows := make([][]string, 0, len(series.Points))
	for _, p := range series.Points {
		rows = append(rows, []string{
			p.Period,
			formatOptionalInt(p.TransactionCount),
			formatOptionalFloat(p.GrossValue),
			formatOptionalFloat(p.MedianPricePerSqft),
			formatOptionalFloat(p.MedianPricePerLeaseYear),
			formatOptionalFloat(p.MillionUnitPercentage),
		})
	}
	return rows
}

func categoryHeaders() []string {
	return []string{
		"Period", "Below300K", "300K-500K", "500K-800K", "800K-1M", "1M+", "Total",
	}
}

func categoryRows(points []domain.CategoryPoint) [][]string {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Period,
			formatInt(p.Below300K),
			formatInt(p.From300KTo500K),
			formatInt(p.From500KTo800K),
			formatInt(p.From800KTo1M),
			formatInt(p.MillionAndAbove),
			formatInt(p.TotalTransactions),
		})
	}
	return rows
}

func boxPlotHeaders() []string {
	return []string{"Period", "Min", "Q1", "Median", "Q3", "Max", "OutlierCount"}
}

func boxPlotRows(series []domain.PeriodBoxPlot) [][]string {
	rows := make([][]string, 0, len(series))
	for _, p := range series {
		rows = append(rows, []string{
			p.Period,
			formatFloat(p.Min),
			formatFloat(p.Q1),
			formatFloat(p.Median),
			formatFloat(p.Q3),
			formatFloat(p.Max),
			formatInt(len(p.Outliers)),
		})
	}
	return rows
}
