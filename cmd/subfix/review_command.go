package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subfix/internal/config"
	"subfix/internal/review"
	"subfix/internal/sessions"
	"subfix/internal/workflow"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "review <session>",
		Short: "Open a session's actions file in your editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *sessions.Store) error {
				session, err := store.Resolve(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if session.Status == sessions.StatusApplied {
					return fmt.Errorf("session %d is already applied", session.ID)
				}
				if !stdinIsTerminal() {
					return fmt.Errorf("review needs a terminal; edit %s directly instead", session.ActionsPath)
				}

				if err := workflow.MarkReviewing(cmd.Context(), store, session); err != nil {
					return err
				}
				if err := review.OpenInEditor(session.ActionsPath, cfg.Review.Editor); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved edits to %s. Apply with `subfix apply %d`.\n",
					session.ActionsPath, session.ID)
				return nil
			})
		},
	}
}
