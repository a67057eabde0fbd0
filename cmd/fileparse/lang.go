package main

import (
	"fmt"

	"fileparse/cmd/fileparse/cli"
	"fileparse/internal/i18n"

	"github.com/spf13/cobra"
)

func newLangCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "lang [zh|en]",
		Short:     "Show or store the display language",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(i18n.Chinese), string(i18n.English)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := o.controller(nil, o.cfg.Mode())
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ctrl.Language())
				return nil
			}

			lang, err := i18n.ParseLang(args[0])
			if err != nil {
				return err
			}
			if err := ctrl.SetLanguage(lang); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessText(ctrl.Localizer().T("languageSwitched")))
			return nil
		},
	}
}
