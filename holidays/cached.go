package holidays

import (
	"context"

	"gomite/worktime"
)

// Store persists holiday lists per (year, region).
type Store interface {
	Holidays(year int, region string) ([]worktime.Holiday, bool, error)
	SaveHolidays(year int, region string, holidays []worktime.Holiday) error
}

// CachedSource memoizes a HolidaySource through a Store. The engine never
// caches internally and re-fetches on every reconciliation; this decorator
// is the caller-side memoization keyed by (year, region).
type CachedSource struct {
	source worktime.HolidaySource
	store  Store
	region string
}

func NewCachedSource(source worktime.HolidaySource, store Store, region string) *CachedSource {
	return &CachedSource{source: source, store: store, region: region}
}

func (c *CachedSource) HolidaysForYear(ctx context.Context, year int) ([]worktime.Holiday, error) {
	if cached, ok, err := c.store.Holidays(year, c.region); err == nil && ok {
		return cached, nil
	}

	fetched, err := c.source.HolidaysForYear(ctx, year)
	if err != nil {
		return nil, err
	}

	// A failed cache write is not worth failing the lookup for.
	_ = c.store.SaveHolidays(year, c.region, fetched)

	return fetched, nil
}
