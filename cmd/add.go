package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"gomite/config"
	"gomite/internal/timeutil"
	"gomite/mite"
	"gomite/storage"
	"gomite/worktime"
)

var (
	addDate      string
	addTime      string
	addNote      string
	addProjectID int64
	addServiceID int64
	addDBPath    string
	addNoRound   bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a new time entry",
	Long: `Create a new mite time entry.

Durations accept three notations: H:MM (1:30), plain minutes (90), and
hour/minute suffixes (1h30m). Unless --no-round is set, the duration is
rounded to the nearest configured step.

Project and service default to the most recently used IDs stored in the
local database; pass --project-id/--service-id to override.`,
	Example: `
  # Log 1.5 hours for today
  gomite add --time 1:30 --note "sprint review"

  # Log 45 minutes for a specific day and project
  gomite add --date 2025-03-03 --time 45m --project-id 1234 --service-id 5678

  # Keep the exact duration
  gomite add --time 0:50 --no-round
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		minutes, err := worktime.ParseDuration(addTime)
		if err != nil {
			return err
		}
		if !addNoRound {
			minutes = worktime.RoundDuration(minutes, cfg.Entry.RoundStep)
		}

		day := timeutil.StartOfDay(time.Now())
		if addDate != "" {
			day, err = timeutil.ParseDay(addDate)
			if err != nil {
				return fmt.Errorf("invalid --date value %q (expected YYYY-MM-DD)", addDate)
			}
		}

		store, err := storage.OpenSQLite(addDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		projectID, err := resolveRecentID(store, storage.RecentProjectID, addProjectID)
		if err != nil {
			return err
		}
		serviceID, err := resolveRecentID(store, storage.RecentServiceID, addServiceID)
		if err != nil {
			return err
		}

		client, err := newMiteClient(cfg)
		if err != nil {
			return err
		}

		created, err := client.CreateEntry(cmd.Context(), mite.NewEntry{
			Date:      day,
			Minutes:   minutes,
			Note:      addNote,
			ProjectID: projectID,
			ServiceID: serviceID,
		})
		if err != nil {
			return err
		}

		rememberRecentID(store, storage.RecentProjectID, projectID)
		rememberRecentID(store, storage.RecentServiceID, serviceID)

		fmt.Printf("Created entry #%d: %s on %s\n", created.ID, worktime.FormatClock(created.Minutes), timeutil.FormatDay(created.Date))
		return nil
	},
}

// resolveRecentID falls back to the last used ID when the flag was not
// given. A missing recent is not an error; mite accepts entries without
// project or service.
func resolveRecentID(store *storage.SQLiteStore, name string, flagValue int64) (int64, error) {
	if flagValue != 0 {
		return flagValue, nil
	}
	value, err := store.RecentSelection(name)
	if err != nil {
		if errors.Is(err, storage.ErrNoRecentSelection) {
			return 0, nil
		}
		return 0, err
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt recent selection %s=%q: %w", name, value, err)
	}
	return parsed, nil
}

func rememberRecentID(store *storage.SQLiteStore, name string, id int64) {
	if id == 0 {
		return
	}
	// Best effort; a failed recents update must not fail the add.
	_ = store.SetRecentSelection(name, strconv.FormatInt(id, 10))
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addDate, "date", "", "Entry date, format YYYY-MM-DD (default: today)")
	addCmd.Flags().StringVar(&addTime, "time", "", "Duration: H:MM, minutes, or XhYm")
	addCmd.Flags().StringVar(&addNote, "note", "", "Entry note")
	addCmd.Flags().Int64Var(&addProjectID, "project-id", 0, "mite project ID (default: last used)")
	addCmd.Flags().Int64Var(&addServiceID, "service-id", 0, "mite service ID (default: last used)")
	addCmd.Flags().StringVar(&addDBPath, "db", "./gomite.db", "Path to local SQLite database")
	addCmd.Flags().BoolVar(&addNoRound, "no-round", false, "Do not round the duration to the configured step")

	_ = addCmd.MarkFlagRequired("time")
}
