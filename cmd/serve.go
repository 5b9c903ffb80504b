package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gomite/config"
	"gomite/storage"
	"gomite/web"
)

var (
	servePort    int
	serveDBPath  string
	serveNoCache bool
	serveNoOpen  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web UI for the yearly work time review",
	Long: `Start a local HTTP server with a yearly reconciliation page.

The UI is read-only: it fetches entries from mite on every request and
renders logged versus required hours per year.`,
	Example: `
  # Start local server on default port
  gomite serve

  # Start on a custom port without opening a browser
  gomite serve --port 9090 --no-open
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

		var store *storage.SQLiteStore
		if !serveNoCache {
			store, err = storage.OpenSQLite(serveDBPath)
			if err != nil {
				return err
			}
			defer store.Close()
		}
		source, err := holidaySourceFor(cfg, store, serveNoCache)
		if err != nil {
			return err
		}

		addr := fmt.Sprintf(":%d", servePort)
		server := &http.Server{
			Addr:    addr,
			Handler: web.NewServer(client, source, cfg.Schedule.WeekSchedule()),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", servePort)
		fmt.Printf("Listening on %s\n", listenURL)
		if !serveNoOpen {
			if openErr := openURLInBrowser(listenURL); openErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", openErr)
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the local web server")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "./gomite.db", "Path to local SQLite database")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "Bypass the local holiday cache")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "Do not open browser automatically")
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
