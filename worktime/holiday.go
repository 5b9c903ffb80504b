package worktime

import (
	"context"
	"sync"
	"time"
)

// Holiday is one public holiday as supplied by an external source.
type Holiday struct {
	Date      time.Time
	Name      string
	Statewide bool
}

// HolidaySource looks up the public holidays of one calendar year for the
// region it was configured with. Implementations may be remote and
// unavailable; AdjustForHolidays degrades per year instead of failing.
type HolidaySource interface {
	HolidaysForYear(ctx context.Context, year int) ([]Holiday, error)
}

// AccountedHoliday records a holiday that fell into the reconciled period
// together with the scheduled hours it displaced.
type AccountedHoliday struct {
	Holiday
	HoursReduced float64
}

// AdjustForHolidays reduces the weekday counts by the holidays that fall
// within the period. Each retained holiday decrements its weekday's bucket
// by one, never below zero; a holiday landing on an already-empty bucket is
// still recorded, with zero hours reduced. The returned sequence keeps the
// fetch order: year ascending, then source order.
func AdjustForHolidays(
	ctx context.Context,
	source HolidaySource,
	period Period,
	schedule WeekSchedule,
	counts WeekdayCounts,
) (WeekdayCounts, []AccountedHoliday) {
	holidays := fetchHolidayYears(ctx, source, period.Years())

	accounted := make([]AccountedHoliday, 0, len(holidays))
	for _, holiday := range holidays {
		if !period.Contains(holiday.Date) {
			continue
		}
		index := mondayIndex(holiday.Date)
		reduced := 0.0
		if counts[index] > 0 {
			counts[index]--
			reduced = schedule[index]
		}
		accounted = append(accounted, AccountedHoliday{Holiday: holiday, HoursReduced: reduced})
	}

	return counts, accounted
}

// fetchHolidayYears issues one lookup per spanned year concurrently and
// joins before returning. A failed year is converted to an empty list at
// this boundary so the rest of the computation can continue; required
// hours may then be overstated for that year.
func fetchHolidayYears(ctx context.Context, source HolidaySource, years []int) []Holiday {
	if source == nil {
		return nil
	}

	perYear := make([][]Holiday, len(years))

	var wg sync.WaitGroup
	for i, year := range years {
		wg.Add(1)
		go func(i, year int) {
			defer wg.Done()
			list, err := source.HolidaysForYear(ctx, year)
			if err != nil {
				return
			}
			perYear[i] = list
		}(i, year)
	}
	wg.Wait()

	merged := make([]Holiday, 0)
	for _, list := range perYear {
		merged = append(merged, list...)
	}
	return merged
}
