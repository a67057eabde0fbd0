package main

import (
	"fmt"
	"strings"

	"fileparse/cmd/fileparse/cli"
	"fileparse/internal/errors"
	"fileparse/pkg/types"

	"github.com/spf13/cobra"
)

func newTypesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the file extensions accepted by each mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := o.controller(nil, o.cfg.Mode())
			loc := ctrl.Localizer()
			if _, err := ctrl.RefreshSupportedTypes(cmd.Context()); err != nil {
				note := loc.T("typesUnavailable")
				if errors.IsMissingCredential(err) {
					note = loc.T("typesNoKey")
				}
				fmt.Fprintln(cmd.ErrOrStderr(), cli.WarningText(note))
			}

			for _, mode := range types.Modes {
				label := loc.T("convertMode")
				if mode == types.OCR {
					label = loc.T("ocrMode")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", label, mode, strings.Join(ctrl.AcceptFor(mode), " "))
			}
			return nil
		},
	}
}
