package main

import (
	"os"

	"github.com/go-arcade/opsboard/pkg/version"
	"github.com/spf13/cobra"
)

/**
 * @file: main.go
 * @description: opsctl, operator command line for the dashboard store
 */

func newRootCmd() *cobra.Command {
	var confFile string

	rootCmd := &cobra.Command{
		Use:          "opsctl",
		Short:        "opsctl is the operator command line tool of opsboard",
		Long:         "opsctl migrates, seeds, backs up and restores the opsboard store and issues member tokens",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				return
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&confFile, "conf", "c", "conf.d/config.toml", "conf file path")

	rootCmd.AddCommand(
		newMigrateCmd(&confFile),
		newSeedCmd(&confFile),
		newTokenCmd(&confFile),
		newBackupCmd(&confFile),
		newRestoreCmd(&confFile),
		version.VersionCmd,
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
