package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"subfix/internal/config"
	"subfix/internal/correction"
	"subfix/internal/review"
	"subfix/internal/sessions"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "show <session>",
		Short: "Show the planned actions for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *sessions.Store) error {
				session, err := store.Resolve(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				file, err := os.Open(session.ActionsPath)
				if err != nil {
					return fmt.Errorf("open actions file: %w", err)
				}
				defer file.Close()

				rows, issues, err := review.ReadCSV(file)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Session %d (%s)\n", session.ID, session.Token)
				fmt.Fprintf(out, "Source: %s\n", session.SourcePath)
				fmt.Fprintf(out, "Status: %s\n\n", session.Status)

				tableRows := make([][]string, 0, len(rows))
				for _, row := range rows {
					if !all && row.Verb == string(correction.VerbKeep) {
						continue
					}
					tableRows = append(tableRows, []string{
						strconv.Itoa(row.EntryIndex),
						row.Verb,
						truncate(row.Text, 60),
					})
				}
				if len(tableRows) == 0 {
					fmt.Fprintln(out, "No deletions or merges planned. Use --all to list every entry.")
				} else {
					printTable(out, []string{"Entry", "Action", "Text"}, tableRows, 1)
				}

				for _, issue := range issues {
					fmt.Fprintf(out, "Warning: %s\n", issue)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include entries that are kept unchanged")
	return cmd
}
