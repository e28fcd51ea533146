package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subfix/internal/config"
	"subfix/internal/sessions"
	"subfix/internal/workflow"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	flags := &engineFlags{}

	cmd := &cobra.Command{
		Use:   "plan <subtitle-file>",
		Short: "Run the correction pass and write an editable actions file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := resolveSourceArg(args[0])
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *sessions.Store) error {
				result, err := workflow.Plan(cmd.Context(), cfg, store, logger, flags.planRequest(cmd, cfg, sourcePath))
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, issue := range result.ParseIssues {
					fmt.Fprintf(out, "Skipped: %s\n", issue)
				}
				printTable(out, []string{"Action", "Count"}, planSummaryRows(result.Session), 2)
				fmt.Fprintf(out, "Session %d (%s)\n", result.Session.ID, result.Session.Token)
				fmt.Fprintf(out, "Actions file: %s\n", result.Session.ActionsPath)
				fmt.Fprintf(out, "Review with `subfix review %d`, then apply with `subfix apply %d`.\n",
					result.Session.ID, result.Session.ID)
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}
