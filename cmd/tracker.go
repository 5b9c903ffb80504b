package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gomite/config"
	"gomite/mite"
	"gomite/worktime"
)

var trackerCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Show or control the live time tracker",
	Long: `Show the state of the mite live tracker, or start and stop it on a
specific time entry. Starting the tracker on one entry stops it on any
other entry.`,
	Example: `
  # Show tracker state
  gomite tracker status

  # Start tracking an entry
  gomite tracker start 8019341

  # Stop tracking an entry
  gomite tracker stop 8019341
`,
}

var trackerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the currently tracked entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := trackerClient()
		if err != nil {
			return err
		}
		tracking, err := client.Tracker(cmd.Context())
		if err != nil {
			return err
		}
		printTracking(tracking)
		return nil
	},
}

var trackerStartCmd = &cobra.Command{
	Use:   "start <entry-id>",
	Args:  cobra.ExactArgs(1),
	Short: "Start the tracker on an entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, id, err := trackerClientWithID(args[0])
		if err != nil {
			return err
		}
		tracking, err := client.StartTracker(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("Started tracker on entry #%d\n", id)
		printTracking(tracking)
		return nil
	},
}

var trackerStopCmd = &cobra.Command{
	Use:   "stop <entry-id>",
	Args:  cobra.ExactArgs(1),
	Short: "Stop the tracker on an entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, id, err := trackerClientWithID(args[0])
		if err != nil {
			return err
		}
		if _, err := client.StopTracker(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Stopped tracker on entry #%d\n", id)
		return nil
	},
}

func trackerClient() (mite.Client, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, err
	}
	return newMiteClient(cfg)
}

func trackerClientWithID(raw string) (mite.Client, int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return nil, 0, fmt.Errorf("invalid entry id %q", raw)
	}
	client, err := trackerClient()
	if err != nil {
		return nil, 0, err
	}
	return client, id, nil
}

func printTracking(tracking *mite.Tracking) {
	if tracking == nil {
		fmt.Println("Tracker is idle.")
		return
	}
	fmt.Printf("Tracking entry #%d: %s since %s\n", tracking.ID, worktime.FormatClock(tracking.Minutes), tracking.Since)
}

func init() {
	rootCmd.AddCommand(trackerCmd)

	trackerCmd.AddCommand(trackerStatusCmd)
	trackerCmd.AddCommand(trackerStartCmd)
	trackerCmd.AddCommand(trackerStopCmd)
}
