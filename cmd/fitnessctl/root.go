package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	env        string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "fitnessctl",
		Short:         "fitnessctl is the operator tool of the fithub backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&opts.env, "env", "development", "environment [prod | production | dev | development]")

	rootCmd.AddCommand(
		newFoodCmd(opts),
		newLauncherCmd(opts),
		newAdminCmd(),
	)

	return rootCmd
}
