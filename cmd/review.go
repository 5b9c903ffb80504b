package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gomite/config"
	"gomite/output"
	"gomite/storage"
	"gomite/worktime"
)

var (
	reviewYear    int
	reviewFrom    string
	reviewTo      string
	reviewDBPath  string
	reviewNoCache bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Reconcile logged time entries against the scheduled work time",
	Long: `Fetch time entries from mite for the selected period, compute the required
work time from the weekly schedule minus public holidays, and print the
overtime balance.

The period defaults to January 1st of the current year through today.
Holiday lookups are cached in the local SQLite database.`,
	Example: `
  # Reconcile the current year
  gomite review

  # Reconcile a past year
  gomite review --year 2024

  # Reconcile an explicit range without the holiday cache
  gomite review --from 2025-01-01 --to 2025-06-30 --no-cache
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		period, err := resolvePeriod(reviewYear, reviewFrom, reviewTo, time.Now())
		if err != nil {
			return err
		}

		client, err := newMiteClient(cfg)
		if err != nil {
			return err
		}

		var store *storage.SQLiteStore
		if !reviewNoCache {
			store, err = storage.OpenSQLite(reviewDBPath)
			if err != nil {
				return err
			}
			defer store.Close()
		}
		source, err := holidaySourceFor(cfg, store, reviewNoCache)
		if err != nil {
			return err
		}

		entries, err := client.ListEntries(cmd.Context(), period.From, period.To)
		if err != nil {
			return err
		}

		result := worktime.Reconcile(cmd.Context(), source, period, cfg.Schedule.WeekSchedule(), entries, time.Now())

		for _, row := range output.BuildReviewRows(period, result) {
			fmt.Printf("%-40s %s\n", row.Metric, row.Value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().IntVar(&reviewYear, "year", 0, "Year to reconcile (default: current year)")
	reviewCmd.Flags().StringVar(&reviewFrom, "from", "", "Period start, format YYYY-MM-DD (requires --to)")
	reviewCmd.Flags().StringVar(&reviewTo, "to", "", "Period end, format YYYY-MM-DD (requires --from)")
	reviewCmd.Flags().StringVar(&reviewDBPath, "db", "./gomite.db", "Path to local SQLite database")
	reviewCmd.Flags().BoolVar(&reviewNoCache, "no-cache", false, "Bypass the local holiday cache")
}
