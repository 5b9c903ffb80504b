package worklog

import (
	"sort"
	"time"
)

// Entry is the normalized time entry used across the mite client, the
// reconciliation engine, and the outputs. The engine treats entries as
// read-only input.
type Entry struct {
	ID       int64
	Date     time.Time
	Minutes  int
	Note     string
	Customer string
	Project  string
	Service  string
	Locked   bool
}

func TotalMinutes(entries []Entry) int {
	total := 0
	for _, entry := range entries {
		total += entry.Minutes
	}
	return total
}

// GroupByDay buckets entries by their calendar day in local time.
func GroupByDay(entries []Entry) map[string][]Entry {
	byDay := make(map[string][]Entry)
	for _, entry := range entries {
		day := entry.Date.In(time.Local).Format("2006-01-02")
		byDay[day] = append(byDay[day], entry)
	}
	return byDay
}

func SortedDays(byDay map[string][]Entry) []string {
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}
