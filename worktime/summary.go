package worktime

import (
	"context"
	"time"

	"gomite/worklog"
)

// WeekSchedule holds the scheduled hours for each weekday, indexed
// Monday=0 through Sunday=6, independent of any specific date.
type WeekSchedule [7]float64

// DefaultWeekSchedule is the usual five-day, eight-hour pattern.
var DefaultWeekSchedule = WeekSchedule{8, 8, 8, 8, 8, 0, 0}

func (s WeekSchedule) TotalHours() float64 {
	total := 0.0
	for _, hours := range s {
		total += hours
	}
	return total
}

// WorkTimeSummary is the holiday-adjusted expected work time for a period.
// It is derived on demand and never cached by this package.
type WorkTimeSummary struct {
	TotalRequiredHours float64
	WeekdayCounts      WeekdayCounts
	Holidays           []AccountedHoliday
}

// RequiredWorkTime computes the expected working hours for the period:
// per-weekday occurrence counts, reduced by the period's public holidays,
// multiplied by the weekly schedule.
func RequiredWorkTime(ctx context.Context, source HolidaySource, period Period, schedule WeekSchedule) WorkTimeSummary {
	counts := CountWeekdays(period)
	counts, accounted := AdjustForHolidays(ctx, source, period, schedule, counts)

	total := 0.0
	for i, count := range counts {
		total += float64(count) * schedule[i]
	}

	return WorkTimeSummary{
		TotalRequiredHours: total,
		WeekdayCounts:      counts,
		Holidays:           accounted,
	}
}

// ReconciliationResult compares logged entries against the expected hours
// of one period. Overtime is signed; a negative value is a shortfall.
type ReconciliationResult struct {
	TotalLoggedHours   float64
	TotalRequiredHours float64
	OvertimeHours      float64
	WeeklyAverageHours float64
	LongestEntry       *worklog.Entry
	Summary            WorkTimeSummary
}

// Reconcile combines the expected work time for the period with the logged
// entries. The weekly average divides the logged total by the ISO week
// number of now, a coarse approximation that assumes logging started in
// week 1 of the current year. The longest entry is the first one carrying
// the maximum minute count; it is nil for an empty entry list.
func Reconcile(
	ctx context.Context,
	source HolidaySource,
	period Period,
	schedule WeekSchedule,
	entries []worklog.Entry,
	now time.Time,
) ReconciliationResult {
	summary := RequiredWorkTime(ctx, source, period, schedule)

	logged := float64(worklog.TotalMinutes(entries)) / 60
	result := ReconciliationResult{
		TotalLoggedHours:   logged,
		TotalRequiredHours: summary.TotalRequiredHours,
		OvertimeHours:      logged - summary.TotalRequiredHours,
		WeeklyAverageHours: logged / float64(ISOWeekNumber(now)),
		Summary:            summary,
	}

	for i := range entries {
		if result.LongestEntry == nil || entries[i].Minutes > result.LongestEntry.Minutes {
			result.LongestEntry = &entries[i]
		}
	}

	return result
}
