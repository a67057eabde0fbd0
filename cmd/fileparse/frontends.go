package main

import (
	"fileparse/internal/errors"
	"fileparse/internal/gui"
	"fileparse/internal/log"
	"fileparse/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := o.controller(nil, o.cfg.Mode())
			return tui.Run(ctrl)
		},
	}
}

func newGUICmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window",
		Long: `Open the desktop window. The window keeps its API key and language in
the desktop preferences, separately from the command line store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !gui.IsGUIAvailable() {
				return errors.New("this build has no desktop window (built with -tags nogui); use 'fileparse tui' instead")
			}
			log.Debug("launching GUI")
			return gui.Start(o.client(), o.overrides(), o.controllerOptions(o.cfg.Mode())...)
		},
	}
}
