package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"subfix/internal/config"
	"subfix/internal/sessions"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and manage correction sessions",
	}

	sessionsCmd.AddCommand(newSessionsListCommand(ctx))
	sessionsCmd.AddCommand(newSessionsStatusCommand(ctx))
	sessionsCmd.AddCommand(newSessionsClearCommand(ctx))

	return sessionsCmd
}

func newSessionsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *sessions.Store) error {
				list, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No sessions")
					return nil
				}

				rows := make([][]string, 0, len(list))
				for _, session := range list {
					rows = append(rows, []string{
						strconv.FormatInt(session.ID, 10),
						string(session.Status),
						truncate(filepath.Base(session.SourcePath), 40),
						strconv.Itoa(session.EntryCount),
						strconv.Itoa(session.MergeCount),
						strconv.Itoa(session.DeleteCount),
						session.CreatedAt.Format("2006-01-02 15:04"),
					})
				}
				printTable(cmd.OutOrStdout(),
					[]string{"ID", "Status", "Source", "Entries", "Merges", "Deletes", "Created"},
					rows, 1, 4, 5, 6)
				return nil
			})
		},
	}
}

func newSessionsStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *sessions.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]string, 0, 4)
				for _, status := range sessions.AllStatuses() {
					count := stats[status]
					if count == 0 {
						continue
					}
					rows = append(rows, []string{string(status), strconv.Itoa(count)})
				}
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No sessions")
					return nil
				}
				printTable(cmd.OutOrStdout(), []string{"Status", "Count"}, rows, 2)
				return nil
			})
		},
	}
}

func newSessionsClearCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove finished sessions",
		Long: `Clear removes applied and abandoned sessions along with their actions
files. With --all, planned and reviewing sessions are removed too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *sessions.Store) error {
				list, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				var stale []string
				for _, session := range list {
					if (all || session.Status.Finished()) && session.ActionsPath != "" {
						stale = append(stale, session.ActionsPath)
					}
				}

				removed, err := store.Clear(cmd.Context(), all)
				if err != nil {
					return err
				}
				for _, path := range stale {
					if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
						fmt.Fprintf(cmd.OutOrStdout(), "Could not remove %s: %v\n", path, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d sessions\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Also remove sessions that have not been applied")
	return cmd
}
