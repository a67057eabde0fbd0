package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fileparse/cmd/fileparse/cli"
	"fileparse/internal/errors"
	"fileparse/internal/watch"
	"fileparse/pkg/types"

	"github.com/spf13/cobra"
)

// newWatchCmd creates the watch command
func newWatchCmd(o *rootOptions) *cobra.Command {
	var (
		modeName string
		outDir   string
		include  string
		settle   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Parse every file dropped into a directory",
		Long: `Watch a directory and send each new or changed file to the parser service.
The extracted text is written to <out>/<file name>.md for document conversion
and <out>/<file name>.txt for OCR. Failures are logged and watching goes on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := o.cfg.Mode()
			if modeName != "" {
				m, err := types.ParseMode(modeName)
				if err != nil {
					return err
				}
				mode = m
			}
			if !cmd.Flags().Changed("out") {
				outDir = o.cfg.Watch.OutputDir
			}
			if !cmd.Flags().Changed("include") {
				include = o.cfg.Watch.Include
			}

			ctrl := o.controller(nil, mode)
			loc := ctrl.Localizer()
			if _, ok := ctrl.Credential(); !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.WarningText(loc.T("pleaseSaveKey")))
				return reportedError{errors.ErrMissingCredential}
			}
			if _, err := ctrl.RefreshSupportedTypes(cmd.Context()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.WarningText(loc.T("typesUnavailable")))
			}

			proc, err := watch.NewProcessor(ctrl, watch.Options{
				Dir:       args[0],
				OutputDir: outDir,
				Include:   include,
				Settle:    settle,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			proc.SetCallback(func(path, outPath string, err error) {
				if err != nil {
					fmt.Fprintln(out, cli.ErrorText(fmt.Sprintf("✗ %s: %v", path, err)))
					return
				}
				fmt.Fprintln(out, cli.SuccessText(fmt.Sprintf("✓ %s -> %s", path, outPath)))
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(out, cli.InfoText(loc.Tf("watchStarted", map[string]interface{}{
				"Dir":  args[0],
				"Mode": mode.String(),
			})))
			if err := proc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			status := proc.Status()
			fmt.Fprintln(out, cli.InfoText(loc.Tf("watchStopped", map[string]interface{}{
				"Processed": status.FilesProcessed,
				"Failed":    status.Failures,
			})))
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", "", "convert or ocr (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "parsed", "output directory; relative paths are inside DIR")
	cmd.Flags().StringVar(&include, "include", "", "only process file names matching this glob")
	cmd.Flags().DurationVar(&settle, "settle", watch.DefaultSettle, "quiet period before a changed file is picked up (0 picks it up at once)")

	return cmd
}
