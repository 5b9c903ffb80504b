package worktime

import (
	"errors"
	"testing"
	"time"
)

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.Local)
}

func mustPeriod(t *testing.T, from, to time.Time) Period {
	t.Helper()
	period, err := NewPeriod(from, to)
	if err != nil {
		t.Fatalf("new period: %v", err)
	}
	return period
}

func TestNewPeriod_RejectsReversedRange(t *testing.T) {
	t.Parallel()

	_, err := NewPeriod(day(2024, time.March, 2), day(2024, time.March, 1))
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestNewPeriod_TruncatesToMidnight(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, time.March, 1, 14, 30, 12, 99, time.Local)
	period := mustPeriod(t, from, from)

	if period.From.Hour() != 0 || period.From.Minute() != 0 || period.From.Nanosecond() != 0 {
		t.Fatalf("expected midnight start, got %v", period.From)
	}
	if !period.Contains(from) {
		t.Fatalf("expected period to contain its own start day")
	}
}

func TestPeriod_Years(t *testing.T) {
	t.Parallel()

	single := mustPeriod(t, day(2024, time.January, 1), day(2024, time.December, 31))
	if got := single.Years(); len(got) != 1 || got[0] != 2024 {
		t.Fatalf("unexpected years for single-year period: %v", got)
	}

	double := mustPeriod(t, day(2023, time.December, 15), day(2024, time.January, 15))
	if got := double.Years(); len(got) != 2 || got[0] != 2023 || got[1] != 2024 {
		t.Fatalf("unexpected years for two-year period: %v", got)
	}
}

func TestCountWeekdays_FullWeek(t *testing.T) {
	t.Parallel()

	// 2024-01-01 is a Monday; the first seven days cover each weekday once.
	period := mustPeriod(t, day(2024, time.January, 1), day(2024, time.January, 7))
	counts := CountWeekdays(period)

	if counts != (WeekdayCounts{1, 1, 1, 1, 1, 1, 1}) {
		t.Fatalf("unexpected counts for one full week: %v", counts)
	}
}

func TestCountWeekdays_SingleDay(t *testing.T) {
	t.Parallel()

	// 2024-01-03 is a Wednesday.
	period := mustPeriod(t, day(2024, time.January, 3), day(2024, time.January, 3))
	counts := CountWeekdays(period)

	want := WeekdayCounts{}
	want[2] = 1
	if counts != want {
		t.Fatalf("unexpected counts for single Wednesday: %v", counts)
	}
}

func TestCountWeekdays_AcrossLeapDayAndMonthBoundary(t *testing.T) {
	t.Parallel()

	// 2024-02-26 (Monday) through 2024-03-03 (Sunday) spans the leap day
	// and a month boundary and still forms one full week.
	period := mustPeriod(t, day(2024, time.February, 26), day(2024, time.March, 3))
	counts := CountWeekdays(period)

	if counts != (WeekdayCounts{1, 1, 1, 1, 1, 1, 1}) {
		t.Fatalf("unexpected counts across leap day: %v", counts)
	}
}

func TestCountWeekdays_AcrossYearBoundary(t *testing.T) {
	t.Parallel()

	// 2023-12-30 (Saturday) through 2024-01-02 (Tuesday).
	period := mustPeriod(t, day(2023, time.December, 30), day(2024, time.January, 2))
	counts := CountWeekdays(period)

	want := WeekdayCounts{1, 1, 0, 0, 0, 1, 1}
	if counts != want {
		t.Fatalf("unexpected counts across year boundary: %v", counts)
	}
}

func TestCountWeekdays_FullLeapYear(t *testing.T) {
	t.Parallel()

	// 2024 has 366 days starting on a Monday: Monday and Tuesday occur 53
	// times, all other weekdays 52 times.
	period := mustPeriod(t, day(2024, time.January, 1), day(2024, time.December, 31))
	counts := CountWeekdays(period)

	want := WeekdayCounts{53, 53, 52, 52, 52, 52, 52}
	if counts != want {
		t.Fatalf("unexpected counts for 2024: %v", counts)
	}
}

func TestISOWeekNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date time.Time
		want int
	}{
		{day(2024, time.January, 1), 1},
		{day(2023, time.January, 1), 52}, // belongs to the last week of 2022
		{day(2021, time.January, 4), 1},
		{day(2020, time.December, 31), 53}, // 2020 is a 53-week ISO year
		{day(2024, time.December, 30), 1},  // Monday of week 1 of 2025
		{day(2024, time.June, 13), 24},
	}

	for _, tc := range cases {
		if got := ISOWeekNumber(tc.date); got != tc.want {
			t.Fatalf("ISOWeekNumber(%s) = %d, want %d", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestISOWeekNumber_MatchesStandardLibrary(t *testing.T) {
	t.Parallel()

	date := day(2019, time.January, 1)
	for i := 0; i < 3000; i++ {
		_, want := date.ISOWeek()
		if got := ISOWeekNumber(date); got != want {
			t.Fatalf("ISOWeekNumber(%s) = %d, stdlib says %d", date.Format("2006-01-02"), got, want)
		}
		date = date.AddDate(0, 0, 1)
	}
}

func TestMondayIndex_MapsSundayLast(t *testing.T) {
	t.Parallel()

	// 2024-01-01 is a Monday, 2024-01-07 a Sunday.
	for offset := 0; offset < 7; offset++ {
		if got := mondayIndex(day(2024, time.January, 1+offset)); got != offset {
			t.Fatalf("mondayIndex day offset %d = %d", offset, got)
		}
	}
}
