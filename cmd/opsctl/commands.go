package main

import (
	"fmt"
	"strings"

	"github.com/go-arcade/opsboard/internal/engine/service"
	"github.com/go-arcade/opsboard/pkg/storage"
	"github.com/spf13/cobra"
)

func newMigrateCmd(confFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the store tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			// openEnv migrates on the way in
			_, closeAll, err := openEnv(*confFile)
			if err != nil {
				return err
			}
			defer closeAll()
			fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
			return nil
		},
	}
}

func newSeedCmd(confFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample roster and actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeAll, err := openEnv(*confFile)
			if err != nil {
				return err
			}
			defer closeAll()

			report, err := service.Seed(cmd.Context(), e.services)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created: %s\n", strings.Join(report.Created, ", "))
			fmt.Fprintf(out, "skipped: %s\n", strings.Join(report.Skipped, ", "))
			fmt.Fprintf(out, "actions: %d\n", report.Actions)
			return nil
		},
	}
}

func newTokenCmd(confFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "token <email>",
		Short: "Issue an identity token for a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeAll, err := openEnv(*confFile)
			if err != nil {
				return err
			}
			defer closeAll()

			email := strings.ToLower(strings.TrimSpace(args[0]))
			m, err := e.repos.Member.GetByEmail(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("member %s: %w", email, err)
			}
			token, err := e.services.Auth.IssueToken(cmd.Context(), m.MemberId)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func newBackupCmd(confFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Upload a JSON snapshot of the store to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeAll, err := openEnv(*confFile)
			if err != nil {
				return err
			}
			defer closeAll()

			bs, err := backupService(e)
			if err != nil {
				return err
			}
			name, err := bs.Backup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func newRestoreCmd(confFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <object>",
		Short: "Replace the store content with a snapshot from object storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeAll, err := openEnv(*confFile)
			if err != nil {
				return err
			}
			defer closeAll()

			bs, err := backupService(e)
			if err != nil {
				return err
			}
			snap, err := bs.Restore(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d members, %d actions from %s\n",
				len(snap.Members), len(snap.Actions), snap.TakenAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func backupService(e *env) (*service.BackupService, error) {
	store, err := storage.NewStorage(&e.conf.Storage)
	if err != nil {
		return nil, err
	}
	return service.NewBackupService(e.repos.Snapshot, store), nil
}
