package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gomite/worklog"
	"gomite/worktime"
)

func sampleResult(t *testing.T) (worktime.Period, worktime.ReconciliationResult) {
	t.Helper()

	period, err := worktime.NewPeriod(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 1, 7, 0, 0, 0, 0, time.Local),
	)
	if err != nil {
		t.Fatalf("NewPeriod returned error: %v", err)
	}

	longest := worklog.Entry{
		ID:      42,
		Date:    time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local),
		Minutes: 480,
		Note:    "release prep",
	}

	return period, worktime.ReconciliationResult{
		TotalLoggedHours:   38.5,
		TotalRequiredHours: 32,
		OvertimeHours:      6.5,
		WeeklyAverageHours: 38.5,
		LongestEntry:       &longest,
		Summary: worktime.WorkTimeSummary{
			TotalRequiredHours: 32,
			WeekdayCounts:      worktime.WeekdayCounts{1, 1, 1, 1, 1, 1, 1},
			Holidays: []worktime.AccountedHoliday{
				{
					Holiday: worktime.Holiday{
						Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
						Name:      "Neujahr",
						Statewide: true,
					},
					HoursReduced: 8,
				},
			},
		},
	}
}

func TestBuildReviewRows(t *testing.T) {
	period, result := sampleResult(t)

	rows := BuildReviewRows(period, result)

	if rows[0].Metric != "Period" || rows[0].Value != "2024-01-01 - 2024-01-07" {
		t.Fatalf("unexpected period row: %+v", rows[0])
	}
	if rows[1].Value != "38.50" {
		t.Fatalf("expected logged hours 38.50, got %q", rows[1].Value)
	}
	if rows[3].Metric != "Overtime hours" || rows[3].Value != "6.50" {
		t.Fatalf("unexpected overtime row: %+v", rows[3])
	}

	var holidayRow, longestRow *ReviewRow
	for i := range rows {
		switch rows[i].Metric {
		case "Holiday 2024-01-01 (Neujahr)":
			holidayRow = &rows[i]
		case "Longest entry":
			longestRow = &rows[i]
		}
	}
	if holidayRow == nil || holidayRow.Value != "-8.00" {
		t.Fatalf("missing or wrong holiday row: %+v", holidayRow)
	}
	if longestRow == nil || longestRow.Value != "2024-01-03 8:00 (release prep)" {
		t.Fatalf("missing or wrong longest entry row: %+v", longestRow)
	}
}

func TestBuildReviewRowsWithoutLongestEntry(t *testing.T) {
	period, result := sampleResult(t)
	result.LongestEntry = nil

	for _, row := range BuildReviewRows(period, result) {
		if row.Metric == "Longest entry" {
			t.Fatal("did not expect longest entry row")
		}
	}
}

func TestWriteReviewCSV(t *testing.T) {
	period, result := sampleResult(t)
	rows := BuildReviewRows(period, result)
	path := filepath.Join(t.TempDir(), "review.csv")

	if err := WriteReview(path, "csv", rows); err != nil {
		t.Fatalf("WriteReview returned error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(records) != len(rows)+1 {
		t.Fatalf("expected %d records, got %d", len(rows)+1, len(records))
	}
	if records[0][0] != "Metric" || records[0][1] != "Value" {
		t.Fatalf("unexpected headers: %v", records[0])
	}
	if records[1][0] != "Period" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
}

func TestWriteReviewRejectsUnknownFormat(t *testing.T) {
	if err := WriteReview(filepath.Join(t.TempDir(), "out.pdf"), "pdf", nil); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
