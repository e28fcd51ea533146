package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subfix/internal/config"
	"subfix/internal/sessions"
	"subfix/internal/workflow"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <session>",
		Short: "Finalize a reviewed session into the output subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *sessions.Store) error {
				result, err := workflow.Apply(cmd.Context(), cfg, store, logger, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, issue := range result.RowIssues {
					fmt.Fprintf(out, "Ignored: %s\n", issue)
				}
				fmt.Fprintf(out, "Wrote %d entries to %s\n", result.Entries, result.OutputPath)
				return nil
			})
		},
	}
}
