package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gomite/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. The API key
is masked.`,
	Example: `
  # Show active configuration
  gomite config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("mite.account: %s\n", cfg.Mite.Account)
			fmt.Printf("mite.api_key: %s\n", maskSecret(cfg.Mite.APIKey))
			if cfg.Mite.URL != "" {
				fmt.Printf("mite.url: %s\n", cfg.Mite.URL)
			}
			fmt.Printf("holidays.url: %s\n", cfg.Holidays.URL)
			fmt.Printf("holidays.region: %s\n", cfg.Holidays.Region)
			fmt.Printf("schedule.hours: %v\n", cfg.Schedule.Hours)
			fmt.Printf("entry.round_step: %d\n", cfg.Entry.RoundStep)
		}
	},
}

func maskSecret(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return value[:2] + strings.Repeat("*", len(value)-4) + value[len(value)-2:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
