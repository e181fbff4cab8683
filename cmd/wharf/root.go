package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var hostFlag string
	var configFlag string

	ctx := newCommandContext(&hostFlag, &configFlag)

	rootCmd := &cobra.Command{
		Use:           "wharf",
		Short:         "Minimal client for the container daemon control API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&hostFlag, "host", "H", "", "Daemon address (overrides DOCKER_HOST and daemon.host)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newImagesCommand(ctx))
	rootCmd.AddCommand(newPullCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
