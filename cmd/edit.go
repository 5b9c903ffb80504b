package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gomite/config"
	"gomite/internal/timeutil"
	"gomite/mite"
	"gomite/worktime"
)

var (
	editDate      string
	editTime      string
	editNote      string
	editProjectID int64
	editServiceID int64
	editNoRound   bool
)

var editCmd = &cobra.Command{
	Use:   "edit <entry-id>",
	Args:  cobra.ExactArgs(1),
	Short: "Update an existing time entry",
	Long: `Update fields of an existing mite time entry. Only the flags you pass
are changed; everything else keeps its current value.`,
	Example: `
  # Change the duration
  gomite edit 8019341 --time 2:15

  # Change note and date
  gomite edit 8019341 --note "retro prep" --date 2025-03-04
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid entry id %q", args[0])
		}

		var patch mite.EntryPatch
		if cmd.Flags().Changed("time") {
			minutes, err := worktime.ParseDuration(editTime)
			if err != nil {
				return err
			}
			if !editNoRound {
				minutes = worktime.RoundDuration(minutes, cfg.Entry.RoundStep)
			}
			patch.Minutes = &minutes
		}
		if cmd.Flags().Changed("note") {
			patch.Note = &editNote
		}
		if cmd.Flags().Changed("date") {
			day, err := timeutil.ParseDay(editDate)
			if err != nil {
				return fmt.Errorf("invalid --date value %q (expected YYYY-MM-DD)", editDate)
			}
			patch.Date = &day
		}
		if cmd.Flags().Changed("project-id") {
			patch.ProjectID = &editProjectID
		}
		if cmd.Flags().Changed("service-id") {
			patch.ServiceID = &editServiceID
		}

		client, err := newMiteClient(cfg)
		if err != nil {
			return err
		}
		if err := client.UpdateEntry(cmd.Context(), id, patch); err != nil {
			return err
		}

		fmt.Printf("Updated entry #%d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editDate, "date", "", "New entry date, format YYYY-MM-DD")
	editCmd.Flags().StringVar(&editTime, "time", "", "New duration: H:MM, minutes, or XhYm")
	editCmd.Flags().StringVar(&editNote, "note", "", "New entry note")
	editCmd.Flags().Int64Var(&editProjectID, "project-id", 0, "New mite project ID")
	editCmd.Flags().Int64Var(&editServiceID, "service-id", 0, "New mite service ID")
	editCmd.Flags().BoolVar(&editNoRound, "no-round", false, "Do not round the duration to the configured step")
}
