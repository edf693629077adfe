package exporter

import (
	"fmt"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal
// places, so values like 13.4 appear as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int value for CSV output.
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatOptionalFloat renders a possibly-absent value. Absent stays blank
// rather than zero so gaps survive the round trip through a spreadsheet.
func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

// formatOptionalInt renders a possibly-absent count.
func formatOptionalInt(i *int) string {
	if i == nil {
		return ""
	}
	return formatInt(*i)
}
