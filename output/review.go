package output

import (
	"fmt"

	"gomite/worktime"
)

// ReviewRow is one metric line of a reconciliation report.
type ReviewRow struct {
	Metric string
	Value  string
}

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func BuildReviewRows(period worktime.Period, result worktime.ReconciliationResult) []ReviewRow {
	rows := []ReviewRow{
		{Metric: "Period", Value: fmt.Sprintf("%s - %s", period.From.Format("2006-01-02"), period.To.Format("2006-01-02"))},
		{Metric: "Logged hours", Value: fmt.Sprintf("%.2f", result.TotalLoggedHours)},
		{Metric: "Required hours", Value: fmt.Sprintf("%.2f", result.TotalRequiredHours)},
		{Metric: "Overtime hours", Value: fmt.Sprintf("%.2f", result.OvertimeHours)},
		{Metric: "Weekly average hours", Value: fmt.Sprintf("%.2f", result.WeeklyAverageHours)},
	}

	for i, name := range weekdayNames {
		rows = append(rows, ReviewRow{
			Metric: fmt.Sprintf("%s count", name),
			Value:  fmt.Sprintf("%d", result.Summary.WeekdayCounts[i]),
		})
	}

	for _, holiday := range result.Summary.Holidays {
		rows = append(rows, ReviewRow{
			Metric: fmt.Sprintf("Holiday %s (%s)", holiday.Date.Format("2006-01-02"), holiday.Name),
			Value:  fmt.Sprintf("-%.2f", holiday.HoursReduced),
		})
	}

	if result.LongestEntry != nil {
		rows = append(rows, ReviewRow{
			Metric: "Longest entry",
			Value: fmt.Sprintf("%s %s (%s)",
				result.LongestEntry.Date.Format("2006-01-02"),
				worktime.FormatClock(result.LongestEntry.Minutes),
				result.LongestEntry.Note),
		})
	}

	return rows
}

func WriteReview(path, format string, rows []ReviewRow) error {
	switch normalizeFormat(format) {
	case "csv":
		return writeReviewCSV(path, rows)
	case "excel", "xlsx":
		return writeReviewExcel(path, rows)
	default:
		return fmt.Errorf("unsupported output format for review: %s", format)
	}
}
