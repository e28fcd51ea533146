package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subfix/internal/config"
	"subfix/internal/review"
	"subfix/internal/sessions"
	"subfix/internal/workflow"
)

func newFixCommand(ctx *commandContext) *cobra.Command {
	flags := &engineFlags{}
	var yes bool
	var planOnly bool

	cmd := &cobra.Command{
		Use:   "fix <subtitle-file>",
		Short: "Plan, optionally review, and apply in one go",
		Long: `Fix runs the correction pass, shows the proposed actions, and applies
them. With a terminal attached it offers to open the actions file in your
editor first; --yes skips the prompt and --plan-only stops after planning.`,
		Args: cobra.ExactArgs(1),
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
				planned, err := workflow.Plan(cmd.Context(), cfg, store, logger, flags.planRequest(cmd, cfg, sourcePath))
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, issue := range planned.ParseIssues {
					fmt.Fprintf(out, "Skipped: %s\n", issue)
				}
				printTable(out, []string{"Action", "Count"}, planSummaryRows(planned.Session), 2)

				if planOnly {
					fmt.Fprintf(out, "Actions file: %s\n", planned.Session.ActionsPath)
					fmt.Fprintf(out, "Apply later with `subfix apply %d`.\n", planned.Session.ID)
					return nil
				}

				if !yes && stdinIsTerminal() {
					fmt.Fprint(out, "Apply now, [i]nspect first, or a[b]ort? [Y/i/b] ")
					choice := readChoice(cmd)
					switch choice {
					case "i":
						if err := workflow.MarkReviewing(cmd.Context(), store, planned.Session); err != nil {
							return err
						}
						if err := review.OpenInEditor(planned.Session.ActionsPath, cfg.Review.Editor); err != nil {
							return err
						}
					case "b":
						if err := store.UpdateStatus(cmd.Context(), planned.Session.ID, sessions.StatusAbandoned); err != nil {
							return err
						}
						fmt.Fprintf(out, "Abandoned. Actions kept at %s.\n", planned.Session.ActionsPath)
						return nil
					}
				}

				result, err := workflow.Apply(cmd.Context(), cfg, store, logger, planned.Session.Token)
				if err != nil {
					return err
				}
				for _, issue := range result.RowIssues {
					fmt.Fprintf(out, "Ignored: %s\n", issue)
				}
				fmt.Fprintf(out, "Wrote %d entries to %s\n", result.Entries, result.OutputPath)
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply without prompting")
	cmd.Flags().BoolVar(&planOnly, "plan-only", false, "Stop after writing the actions file")
	return cmd
}

func readChoice(cmd *cobra.Command) string {
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(line))
}
