package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fileparse/cmd/fileparse/cli"
	"fileparse/internal/fakeapi"
	"fileparse/internal/prefs"

	"github.com/spf13/cobra"
)

func newDevServerCmd(o *rootOptions) *cobra.Command {
	var (
		addr    string
		keys    []string
		latency time.Duration
	)

	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run a local stand-in for the parser service",
		Long: `Run a local server that implements /v1/convert, /v1/ocr,
/v1/supported-types and /v1/health. Text files are echoed as Markdown,
images yield a fixed OCR line and repeat uploads are served from cache.

Without --keys the server accepts the API key in use by this command line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(keys) == 0 {
				if key, ok := o.store.Get(prefs.KeyAPIKey); ok && key != "" {
					keys = []string{key}
				}
			}
			if len(keys) == 0 {
				return fmt.Errorf("no API key to accept: pass --keys or run 'fileparse key set' first")
			}

			srv := fakeapi.New(keys, fakeapi.WithLatency(latency))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.OutOrStdout(), cli.InfoText(fmt.Sprintf("Parser service listening on %s (%d keys). Press Ctrl+C to stop.", addr, len(keys))))
			if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			stats := srv.Stats()
			fmt.Fprintln(cmd.OutOrStdout(), cli.InfoText(fmt.Sprintf("Served %d uploads, %d from cache", stats.Uploads, stats.CacheHits)))
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringSliceVar(&keys, "keys", nil, "accepted API keys (comma separated)")
	cmd.Flags().DurationVar(&latency, "latency", 0, "artificial delay added to each upload")

	return cmd
}
