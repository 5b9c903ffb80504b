package web

import (
	"fmt"
	"time"

	"gomite/worklog"
	"gomite/worktime"
)

type WeekdayRow struct {
	Name  string
	Count int
	Hours string
}

type HolidayRow struct {
	Date         string
	Name         string
	HoursReduced string
}

type DayRow struct {
	Date    string
	Total   string
	Entries []EntryRow
}

type EntryRow struct {
	ID       int64
	Duration string
	Note     string
	Customer string
	Project  string
	Service  string
	Locked   bool
}

type ReviewView struct {
	Title        string
	Year         int
	PreviousYear int
	NextYear     int

	PeriodFrom string
	PeriodTo   string

	LoggedHours   string
	RequiredHours string
	OvertimeHours string
	WeeklyAverage string
	Overbooked    bool

	Weekdays []WeekdayRow
	Holidays []HolidayRow
	Days     []DayRow

	LongestEntry *EntryRow
	LongestDate  string
}

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func BuildReviewView(year int, period worktime.Period, schedule worktime.WeekSchedule, entries []worklog.Entry, result worktime.ReconciliationResult) ReviewView {
	view := ReviewView{
		Title:         fmt.Sprintf("gomite - review %d", year),
		Year:          year,
		PreviousYear:  year - 1,
		NextYear:      year + 1,
		PeriodFrom:    period.From.Format("2006-01-02"),
		PeriodTo:      period.To.Format("2006-01-02"),
		LoggedHours:   fmtHours(result.TotalLoggedHours),
		RequiredHours: fmtHours(result.TotalRequiredHours),
		OvertimeHours: fmt.Sprintf("%+.2f", result.OvertimeHours),
		WeeklyAverage: fmtHours(result.WeeklyAverageHours),
		Overbooked:    result.OvertimeHours >= 0,
	}

	for i, name := range weekdayNames {
		view.Weekdays = append(view.Weekdays, WeekdayRow{
			Name:  name,
			Count: result.Summary.WeekdayCounts[i],
			Hours: fmtHours(float64(result.Summary.WeekdayCounts[i]) * schedule[i]),
		})
	}

	for _, holiday := range result.Summary.Holidays {
		view.Holidays = append(view.Holidays, HolidayRow{
			Date:         holiday.Date.Format("2006-01-02"),
			Name:         holiday.Name,
			HoursReduced: fmtHours(holiday.HoursReduced),
		})
	}

	byDay := worklog.GroupByDay(entries)
	for _, day := range worklog.SortedDays(byDay) {
		row := DayRow{
			Date:  day,
			Total: worktime.FormatClock(worklog.TotalMinutes(byDay[day])),
		}
		for _, entry := range byDay[day] {
			row.Entries = append(row.Entries, entryRowFor(entry))
		}
		view.Days = append(view.Days, row)
	}

	if result.LongestEntry != nil {
		row := entryRowFor(*result.LongestEntry)
		view.LongestEntry = &row
		view.LongestDate = result.LongestEntry.Date.Format("2006-01-02")
	}

	return view
}

func entryRowFor(entry worklog.Entry) EntryRow {
	return EntryRow{
		ID:       entry.ID,
		Duration: worktime.FormatClock(entry.Minutes),
		Note:     entry.Note,
		Customer: entry.Customer,
		Project:  entry.Project,
		Service:  entry.Service,
		Locked:   entry.Locked,
	}
}

func fmtHours(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// reviewPeriod spans January 1st of year through today for the current
// year, or the full year otherwise.
func reviewPeriod(year int, now time.Time) (worktime.Period, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
	if year == now.Year() {
		to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	}
	return worktime.NewPeriod(from, to)
}
