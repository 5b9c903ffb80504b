package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gomite/worklog"
	"gomite/worktime"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, entries []worklog.Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(entryHeaders()); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, entry := range entries {
		if err := writer.Write(entryRow(entry)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

func entryHeaders() []string {
	return []string{"Date", "Duration", "Minutes", "Note", "Customer", "Project", "Service"}
}

func entryRow(entry worklog.Entry) []string {
	return []string{
		entry.Date.Format("2006-01-02"),
		worktime.FormatClock(entry.Minutes),
		strconv.Itoa(entry.Minutes),
		entry.Note,
		entry.Customer,
		entry.Project,
		entry.Service,
	}
}
