package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "bookstore [command] [flags]",
		Short:        "Book catalogue served by the mvc dispatcher",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newServeCmd(opts), newRoutesCmd(opts))
	return cmd
}
