package main

import (
	"fmt"
	"strings"

	"fileparse/cmd/fileparse/cli"
	"fileparse/internal/errors"

	"github.com/spf13/cobra"
)

func newKeyCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored API key",
	}

	setCmd := &cobra.Command{
		Use:   "set KEY",
		Short: "Store the API key used for every request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := cli.NewPresenter(cmd.OutOrStdout(), cmd.ErrOrStderr(), false)
			ctrl := o.controller(p, o.cfg.Mode())
			if err := ctrl.SaveCredential(args[0]); err != nil {
				if errors.IsMissingCredential(err) {
					return reportedError{err}
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessText(ctrl.Localizer().T("saveSuccess")))
			return nil
		},
	}

	var reveal bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the API key in use (masked unless --reveal)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := o.controller(nil, o.cfg.Mode())
			key, ok := ctrl.Credential()
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.WarningText(ctrl.Localizer().T("pleaseSaveKey")))
				return reportedError{errors.ErrMissingCredential}
			}
			if !reveal {
				key = maskKey(key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	showCmd.Flags().BoolVar(&reveal, "reveal", false, "print the full key")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := o.controller(nil, o.cfg.Mode())
			if err := ctrl.ClearCredential(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessText(ctrl.Localizer().T("keyCleared")))
			return nil
		},
	}

	cmd.AddCommand(setCmd, showCmd, clearCmd)
	return cmd
}

// maskKey keeps the first four characters.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}
