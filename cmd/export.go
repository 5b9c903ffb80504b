package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gomite/config"
	"gomite/output"
	"gomite/storage"
	"gomite/worktime"
)

var (
	exportFormat  string
	exportMode    string
	exportOutput  string
	exportYear    int
	exportFrom    string
	exportTo      string
	exportDBPath  string
	exportNoCache bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export time entries or the reconciliation report to CSV/Excel",
	Long: `Export data fetched from mite.

Modes:
- entries: export each time entry of the period
- review: export the reconciliation report (logged vs required hours)

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export this year's entries to CSV
  gomite export --mode entries --output ./entries.csv

  # Export the yearly report to Excel
  gomite export --mode review --output ./review.xlsx

  # Force Excel format independent of extension
  gomite export --mode review --format excel --output ./review.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		period, err := resolvePeriod(exportYear, exportFrom, exportTo, time.Now())
		if err != nil {
			return err
		}

		client, err := newMiteClient(cfg)
		if err != nil {
			return err
		}
		entries, err := client.ListEntries(cmd.Context(), period.From, period.To)
		if err != nil {
			return err
		}

		mode := strings.TrimSpace(strings.ToLower(exportMode))
		switch mode {
		case "", "entries":
			writer, writerErr := output.WriterForFormat(format)
			if writerErr != nil {
				return writerErr
			}
			if err := writer.Write(exportOutput, entries); err != nil {
				return err
			}
			fmt.Printf("Export completed. Entries: %d, Mode: entries, Format: %s, File: %s\n", len(entries), format, exportOutput)
		case "review":
			var store *storage.SQLiteStore
			if !exportNoCache {
				store, err = storage.OpenSQLite(exportDBPath)
				if err != nil {
					return err
				}
				defer store.Close()
			}
			source, err := holidaySourceFor(cfg, store, exportNoCache)
			if err != nil {
				return err
			}

			result := worktime.Reconcile(cmd.Context(), source, period, cfg.Schedule.WeekSchedule(), entries, time.Now())
			rows := output.BuildReviewRows(period, result)
			if err := output.WriteReview(exportOutput, format, rows); err != nil {
				return err
			}
			fmt.Printf("Export completed. Rows: %d, Mode: review, Format: %s, File: %s\n", len(rows), format, exportOutput)
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: entries, review)", exportMode)
		}
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "entries", "Export mode: entries|review")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "Year to export (default: current year)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Period start, format YYYY-MM-DD (requires --to)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Period end, format YYYY-MM-DD (requires --from)")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./gomite.db", "Path to local SQLite database")
	exportCmd.Flags().BoolVar(&exportNoCache, "no-cache", false, "Bypass the local holiday cache")

	_ = exportCmd.MarkFlagRequired("output")
}
