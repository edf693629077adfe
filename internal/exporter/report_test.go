package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"resalepulse/pkg/contracts/domain"
)

func f64(v float64) *float64 { return &v }
func intPtr(v int) *int      { return &v }

func sampleReport() *Report {
	return &Report{
		GeneratedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Months:      []string{"2024-01", "2024-02"},
		Summary: domain.SummaryStats{
			Count:                 3,
			MinPrice:              f64(400000),
			MedianPrice:           f64(500000),
			MaxPrice:              f64(1200000),
			GrossTransactionValue: f64(2100000),
			MillionUnitPercentage: f64(33.333333),
		},
		TimeSeries: domain.TimeSeries{
			Points: []domain.TimeSeriesPoint{
				{
					Period:           "2024-01",
					TransactionCount: intPtr(2),
					GrossValue:       f64(900000),
				},
				{Period: "2024-02"},
			},
		},
		Categories: []domain.CategoryPoint{
			{Period: "2024-01", From300KTo500K: 1, From500KTo800K: 1, TotalTransactions: 2},
			{Period: "2024-02", MillionAndAbove: 1, TotalTransactions: 1},
		},
		BoxPlots: map[domain.Metric][]domain.PeriodBoxPlot{
			domain.MetricPrice: {
				{Period: "2024-01", Min: 400000, Q1: 425000, Median: 450000, Q3: 475000, Max: 500000},
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := strings.TrimPrefix(string(raw), "\xEF\xBB\xBF")
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportCSVWritesAllTables(t *testing.T) {
	dir := t.TempDir()
	exp := NewReportExporter(dir)

	require.NoError(t, exp.ExportCSV(sampleReport()))

	for _, name := range []string{"summary.csv", "timeseries.csv", "categories.csv", "boxplot_price.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestExportCSVTimeSeriesKeepsGapsBlank(t *testing.T) {
	dir := t.TempDir()
	exp := NewReportExporter(dir)

	require.NoError(t, exp.ExportCSV(sampleReport()))

	rows := readCSV(t, filepath.Join(dir, "timeseries.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-01", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
	assert.Equal(t, "900000.00", rows[1][2])
	// Gap period stays blank, not zero.
	assert.Equal(t, "2024-02", rows[2][0])
	assert.Equal(t, "", rows[2][1])
	assert.Equal(t, "", rows[2][2])
}

func TestExportCSVSummaryRow(t *testing.T) {
	dir := t.TempDir()
	exp := NewReportExporter(dir)

	require.NoError(t, exp.ExportCSV(sampleReport()))

	rows := readCSV(t, filepath.Join(dir, "summary.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[1][0])
	assert.Equal(t, "400000.00", rows[1][1])
	assert.Equal(t, "33.33", rows[1][11])
	// Per-sqft stats were absent in the sample, so their cells are blank.
	assert.Equal(t, "", rows[1][4])
}

func TestExportWorkbook(t *testing.T) {
	dir := t.TempDir()
	exp := NewReportExporter(dir)

	path, err := exp.ExportWorkbook(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resale_report_2024_03_15.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "TimeSeries")
	assert.Contains(t, sheets, "Categories")
	assert.Contains(t, sheets, "BoxPlot price")
	assert.NotContains(t, sheets, "Sheet1")

	cell, err := f.GetCellValue("TimeSeries", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", cell)

	cell, err = f.GetCellValue("Categories", "G3")
	require.NoError(t, err)
	assert.Equal(t, "1", cell)
}
