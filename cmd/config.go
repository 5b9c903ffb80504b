package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gomite configuration file values.",
	Long: `Create, edit, and display the gomite configuration file.

The configuration stores the mite credentials and the work time schedule:
- mite.account / mite.api_key / mite.url
- holidays.url / holidays.region
- schedule.hours (Monday first, seven values)
- entry.round_step`,
	Example: `
  # Create default config in $HOME/.gomite.yaml
  gomite config create

  # Show active config and source file
  gomite config show

  # Open active config in editor (creates example if missing)
  gomite config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
