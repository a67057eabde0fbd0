package main

import (
	"fmt"
	"os"

	"fileparse/cmd/fileparse/cli"
	"fileparse/internal/config"
	"fileparse/internal/errors"

	"github.com/spf13/cobra"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create the config file or list color themes",
	}
	cmd.AddCommand(newConfigInitCmd(o), newConfigThemesCmd(o))
	return cmd
}

func newConfigInitCmd(o *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.cfgFile
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.NewFileError("config file already exists (use --force to overwrite)", path, errors.InvalidPath, nil)
			}
			if err := config.SaveConfig(config.New(), path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessText("Wrote "+path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigThemesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List color themes; the active one is marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListThemes() {
				marker := "  "
				if name == o.cfg.UI.Theme {
					marker = "* "
				}
				fmt.Fprintln(cmd.OutOrStdout(), marker+name)
			}
			return nil
		},
	}
}
