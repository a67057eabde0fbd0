package main

import (
	"fmt"

	"fileparse/cmd/fileparse/cli"
	"fileparse/internal/errors"
	"fileparse/internal/log"
	"fileparse/internal/upload"
	"fileparse/pkg/types"

	"github.com/spf13/cobra"
)

// newUploadCmd builds the convert and ocr commands.
func newUploadCmd(o *rootOptions, mode types.Mode) *cobra.Command {
	var copyOut, raw bool

	short := "Convert a document to Markdown text"
	if mode == types.OCR {
		short = "Recognize the text in an image"
	}

	cmd := &cobra.Command{
		Use:   mode.String() + " FILE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := cli.NewPresenter(cmd.OutOrStdout(), cmd.ErrOrStderr(), raw)
			ctrl := o.controller(p, mode)
			p.Loc = ctrl.Localizer()
			ctrl.SelectFile(args[0])

			if !ctrl.Accepts(args[0]) {
				log.LogWithFields(log.F("file", args[0]), log.F("mode", mode.String())).
					Warn("extension is not in the accept list, uploading anyway")
			}

			if _, err := ctrl.Submit(cmd.Context()); err != nil {
				if p.Reported() {
					return reportedError{err}
				}
				return err
			}

			if copyOut {
				if err := ctrl.CopyResult(); err != nil {
					if errors.Is(err, upload.ErrNoClipboard) {
						fmt.Fprintln(cmd.ErrOrStderr(), cli.WarningText(ctrl.Localizer().T("noClipboard")))
						return reportedError{err}
					}
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), cli.SuccessText(ctrl.Localizer().T("copied")))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyOut, "copy", false, "also copy the extracted text to the clipboard")
	cmd.Flags().BoolVar(&raw, "raw", false, "print only the extracted text")
	return cmd
}
