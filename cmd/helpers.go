package cmd

import (
	"fmt"
	"strings"
	"time"

	"gomite/config"
	"gomite/holidays"
	"gomite/internal/timeutil"
	"gomite/mite"
	"gomite/storage"
	"gomite/worktime"
)

const cliUserAgent = "gomite-cli/1.0"

func newMiteClient(cfg *config.Config) (mite.Client, error) {
	client, err := mite.NewClient(mite.ClientConfig{
		Account:   cfg.Mite.Account,
		APIKey:    cfg.Mite.APIKey,
		BaseURL:   cfg.Mite.URL,
		UserAgent: cliUserAgent,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// holidaySourceFor wires the feiertage client, wrapped in the SQLite cache
// unless noCache is set. store may be nil only when noCache is true.
func holidaySourceFor(cfg *config.Config, store *storage.SQLiteStore, noCache bool) (worktime.HolidaySource, error) {
	client, err := holidays.NewClient(holidays.ClientConfig{
		BaseURL:   cfg.Holidays.URL,
		Region:    cfg.Holidays.Region,
		UserAgent: cliUserAgent,
	})
	if err != nil {
		return nil, err
	}
	if noCache {
		return client, nil
	}
	return holidays.NewCachedSource(client, store, cfg.Holidays.Region), nil
}

// resolvePeriod builds the reconciliation period from either an explicit
// from/to pair or a year. The current year ends today, past years run
// through December 31st.
func resolvePeriod(year int, fromRaw, toRaw string, now time.Time) (worktime.Period, error) {
	fromRaw = strings.TrimSpace(fromRaw)
	toRaw = strings.TrimSpace(toRaw)

	if fromRaw != "" || toRaw != "" {
		if fromRaw == "" || toRaw == "" {
			return worktime.Period{}, fmt.Errorf("--from and --to must be used together")
		}
		from, err := timeutil.ParseDay(fromRaw)
		if err != nil {
			return worktime.Period{}, fmt.Errorf("invalid --from value %q (expected YYYY-MM-DD)", fromRaw)
		}
		to, err := timeutil.ParseDay(toRaw)
		if err != nil {
			return worktime.Period{}, fmt.Errorf("invalid --to value %q (expected YYYY-MM-DD)", toRaw)
		}
		return worktime.NewPeriod(from, to)
	}

	if year == 0 {
		year = now.Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
	if year == now.Year() {
		to = timeutil.StartOfDay(now)
	}
	return worktime.NewPeriod(from, to)
}
