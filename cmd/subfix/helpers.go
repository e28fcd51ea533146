package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"subfix/internal/config"
	"subfix/internal/correction"
	"subfix/internal/sessions"
	"subfix/internal/workflow"
)

// engineFlags plumbs the correction tunables shared by plan and fix.
type engineFlags struct {
	threshold      float64
	minTextLength  int
	ignoreCase     bool
	deletePatterns []string
	mergeText      string
	output         string
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.threshold, "threshold", "t", 0, "Similarity score in [0,1] required to merge consecutive cues (default from config)")
	cmd.Flags().IntVar(&f.minTextLength, "min-length", 0, "Cues with trimmed text shorter than this are noise (default from config)")
	cmd.Flags().BoolVar(&f.ignoreCase, "ignore-case", false, "Fold case before comparing cue texts")
	cmd.Flags().StringArrayVar(&f.deletePatterns, "delete", nil, "Regular expression; matching cues are flagged for deletion (repeatable)")
	cmd.Flags().StringVar(&f.mergeText, "merge-text", "", "Merged cue text handling: timing or guess (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output subtitle path (default overwrites the input)")
}

// planRequest folds flag values over config defaults. Flags that were left
// untouched inherit the configured value.
func (f *engineFlags) planRequest(cmd *cobra.Command, cfg *config.Config, sourcePath string) workflow.PlanRequest {
	req := workflow.PlanRequest{
		SourcePath:     sourcePath,
		OutputPath:     f.output,
		Threshold:      cfg.Engine.MergeThreshold,
		MinTextLength:  cfg.Engine.MinTextLength,
		IgnoreCase:     cfg.Engine.IgnoreCase || f.ignoreCase,
		DeletePatterns: append(append([]string{}, cfg.Engine.DeletePatterns...), f.deletePatterns...),
		TextMode:       correction.TextMode(cfg.Engine.MergeText),
	}
	if cmd.Flags().Changed("threshold") {
		req.Threshold = f.threshold
	}
	if cmd.Flags().Changed("min-length") {
		req.MinTextLength = f.minTextLength
	}
	if mode := strings.TrimSpace(f.mergeText); mode != "" {
		req.TextMode = correction.TextMode(strings.ToLower(mode))
	}
	return req
}

func resolveSourceArg(arg string) (string, error) {
	source := strings.TrimSpace(arg)
	if source == "" {
		return "", fmt.Errorf("subtitle file path is required")
	}
	source, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("subtitle file %q not found", source)
		}
		return "", fmt.Errorf("stat subtitle file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("subtitle path %q is a directory", source)
	}
	return source, nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func planSummaryRows(session *sessions.Session) [][]string {
	return [][]string{
		{"Entries", fmt.Sprintf("%d", session.EntryCount)},
		{"Keep", fmt.Sprintf("%d", session.KeepCount)},
		{"Merge", fmt.Sprintf("%d", session.MergeCount)},
		{"Delete", fmt.Sprintf("%d", session.DeleteCount)},
	}
}
