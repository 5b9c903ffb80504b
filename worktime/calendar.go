package worktime

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("period start is after its end")

// Period is an inclusive calendar-day date range. Construct it with
// NewPeriod so both endpoints are normalized and the range is validated.
type Period struct {
	From time.Time
	To   time.Time
}

// NewPeriod builds a Period from two dates, truncating both to midnight in
// their own location. The range is inclusive on both ends.
func NewPeriod(from, to time.Time) (Period, error) {
	from = startOfDay(from)
	to = startOfDay(to)
	if from.After(to) {
		return Period{}, fmt.Errorf(
			"%w: %s > %s",
			ErrInvalidPeriod,
			from.Format("2006-01-02"),
			to.Format("2006-01-02"),
		)
	}
	return Period{From: from, To: to}, nil
}

func (p Period) Contains(day time.Time) bool {
	day = startOfDay(day)
	return !day.Before(p.From) && !day.After(p.To)
}

// Years lists the calendar years touched by the period, ascending.
func (p Period) Years() []int {
	years := make([]int, 0, 2)
	for year := p.From.Year(); year <= p.To.Year(); year++ {
		years = append(years, year)
	}
	return years
}

// WeekdayCounts holds per-weekday occurrence counts, indexed Monday=0
// through Sunday=6 like WeekSchedule.
type WeekdayCounts [7]int

// mondayIndex maps time.Weekday (which starts the week on Sunday) onto the
// Monday-first indexing used by WeekSchedule and WeekdayCounts. Every
// weekday bucket lookup goes through this function.
func mondayIndex(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}

// CountWeekdays counts how often each weekday occurs within the period,
// both endpoints included.
func CountWeekdays(period Period) WeekdayCounts {
	var counts WeekdayCounts
	for day := period.From; !day.After(period.To); day = day.AddDate(0, 0, 1) {
		counts[mondayIndex(day)]++
	}
	return counts
}

// ISOWeekNumber returns the ISO-8601 week number (1-53) of the given date.
// The date is shifted to the Thursday of its Monday-start week, which
// decides the week-numbering year; the result is the week distance from
// the Thursday of that year's week 1 (January 4 is always in week 1).
func ISOWeekNumber(date time.Time) int {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	thursday := day.AddDate(0, 0, 3-mondayIndex(day))
	jan4 := time.Date(thursday.Year(), time.January, 4, 0, 0, 0, 0, time.UTC)
	firstThursday := jan4.AddDate(0, 0, 3-mondayIndex(jan4))
	return 1 + int(thursday.Sub(firstThursday)/(7*24*time.Hour))
}

func startOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}
