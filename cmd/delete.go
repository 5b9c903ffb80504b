package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gomite/config"
)

var deleteForce bool

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

var deleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Args:  cobra.ExactArgs(1),
	Short: "Delete a time entry",
	Long: `Delete one mite time entry permanently.

Before deletion, an interactive security prompt requires typing exactly "Y".
Use --force to skip the prompt in scripts.`,
	Example: `
  # Delete an entry (requires interactive confirmation)
  gomite delete 8019341

  # Delete without prompt
  gomite delete 8019341 --force
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

		if !deleteForce {
			confirmed, err := confirmDeletePrompt(deletePromptInput, deletePromptOutput, id)
			if err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("delete aborted: confirmation was not 'Y'")
			}
		}

		client, err := newMiteClient(cfg)
		if err != nil {
			return err
		}
		if err := client.DeleteEntry(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Deleted entry #%d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Skip the interactive confirmation prompt")
}

func confirmDeletePrompt(input io.Reader, output io.Writer, id int64) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("delete confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete entry #%d? Type Y to confirm: ", id); err != nil {
		return false, fmt.Errorf("write delete confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read delete confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}
