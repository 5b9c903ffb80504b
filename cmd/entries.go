package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gomite/config"
	"gomite/mite"
	"gomite/worklog"
	"gomite/worktime"
)

var entriesAt string

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List time entries grouped by day",
	Long: `List your mite time entries for a relative range, grouped by day with
per-day and overall totals.

Supported --at values: ` + strings.Join(mite.AtOptions, ", ") + `.`,
	Example: `
  # List this month's entries
  gomite entries

  # List last week's entries
  gomite entries --at last_week
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		client, err := newMiteClient(cfg)
		if err != nil {
			return err
		}

		entries, err := client.ListEntriesAt(cmd.Context(), entriesAt)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No entries found.")
			return nil
		}

		byDay := worklog.GroupByDay(entries)
		for _, day := range worklog.SortedDays(byDay) {
			dayEntries := byDay[day]
			fmt.Printf("%s (%s)\n", day, worktime.FormatClock(worklog.TotalMinutes(dayEntries)))
			for _, entry := range dayEntries {
				locked := ""
				if entry.Locked {
					locked = " [locked]"
				}
				fmt.Printf("  #%-10d %6s  %s%s\n", entry.ID, worktime.FormatClock(entry.Minutes), describeEntry(entry), locked)
			}
		}
		fmt.Printf("Total: %s\n", worktime.FormatClock(worklog.TotalMinutes(entries)))
		return nil
	},
}

func describeEntry(entry worklog.Entry) string {
	parts := make([]string, 0, 3)
	if entry.Project != "" {
		parts = append(parts, entry.Project)
	}
	if entry.Service != "" {
		parts = append(parts, entry.Service)
	}
	if entry.Note != "" {
		parts = append(parts, entry.Note)
	}
	if len(parts) == 0 {
		return "(no note)"
	}
	return strings.Join(parts, " - ")
}

func init() {
	rootCmd.AddCommand(entriesCmd)

	entriesCmd.Flags().StringVar(&entriesAt, "at", "this_month", "Relative range: "+strings.Join(mite.AtOptions, "|"))
}
