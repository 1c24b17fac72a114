package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var envDir string

	ctx := newCommandContext(&envDir)

	rootCmd := &cobra.Command{
		Use:           "boardshelf",
		Short:         "Board game catalogue server and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "Directory containing the .env file")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newGamesCommand(ctx))

	return rootCmd
}
