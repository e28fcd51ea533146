package workflow_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subfix/internal/config"
	"subfix/internal/correction"
	"subfix/internal/sessions"
	"subfix/internal/testsupport"
	"subfix/internal/workflow"
)

const noisySRT = `1
00:00:01,000 --> 00:00:02,000
Hello there

2
00:00:02,500 --> 00:00:04,000
Hello there.

3
00:00:05,000 --> 00:00:06,000
42

4
00:00:07,000 --> 00:00:09,000
Goodbye now
`

func testSetup(t *testing.T) (*config.Config, *sessions.Store, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	sourcePath := testsupport.WriteSubtitle(t, t.TempDir(), "input.srt", noisySRT)
	return cfg, store, sourcePath
}

func TestPlanPersistsSessionAndActionsFile(t *testing.T) {
	cfg, store, sourcePath := testSetup(t)
	ctx := context.Background()

	result, err := workflow.Plan(ctx, cfg, store, nil, workflow.PlanRequest{
		SourcePath: sourcePath,
		Threshold:  0.9,
	})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if result.Session.EntryCount != 4 {
		t.Fatalf("expected 4 entries, got %d", result.Session.EntryCount)
	}
	if result.Session.KeepCount != 2 || result.Session.MergeCount != 1 || result.Session.DeleteCount != 1 {
		t.Fatalf("unexpected counts: %+v", result.Session)
	}
	if result.Session.Status != sessions.StatusPlanned {
		t.Fatalf("expected planned status, got %q", result.Session.Status)
	}

	data, err := os.ReadFile(result.Session.ActionsPath)
	if err != nil {
		t.Fatalf("read actions file: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "index,action,text\n") {
		t.Fatalf("expected csv header, got %q", content)
	}
	if !strings.Contains(content, "2,merge,Hello there.") {
		t.Fatalf("expected merge row, got %q", content)
	}
	if !strings.Contains(content, "3,delete,42") {
		t.Fatalf("expected delete row, got %q", content)
	}
}

func TestApplyWithoutEditsHonorsPlan(t *testing.T) {
	cfg, store, sourcePath := testSetup(t)
	ctx := context.Background()

	outputPath := filepath.Join(t.TempDir(), "fixed.srt")
	planned, err := workflow.Plan(ctx, cfg, store, nil, workflow.PlanRequest{
		SourcePath: sourcePath,
		OutputPath: outputPath,
		Threshold:  0.9,
	})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}

	result, err := workflow.Apply(ctx, cfg, store, nil, planned.Session.Token)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if result.Entries != 2 {
		t.Fatalf("expected 2 output entries, got %d", result.Entries)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "1\n00:00:01,000 --> 00:00:04,000\nHello there\n\n2\n00:00:07,000 --> 00:00:09,000\nGoodbye now\n\n"
	if string(data) != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", string(data), want)
	}

	stored, err := store.GetByID(ctx, planned.Session.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.Status != sessions.StatusApplied {
		t.Fatalf("expected applied status, got %q", stored.Status)
	}
}

func TestApplyRespectsUserEdits(t *testing.T) {
	cfg, store, sourcePath := testSetup(t)
	ctx := context.Background()

	outputPath := filepath.Join(t.TempDir(), "fixed.srt")
	planned, err := workflow.Plan(ctx, cfg, store, nil, workflow.PlanRequest{
		SourcePath: sourcePath,
		OutputPath: outputPath,
		Threshold:  0.9,
	})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}

	// The reviewer promotes the merge back to keep, fixes a typo, and
	// removes the Goodbye row entirely (implicit delete).
	edited := strings.Join([]string{
		"index,action,text",
		"1,keep,Hello there",
		"2,keep,Hello there again",
		"3,delete,42",
		"",
	}, "\n")
	if err := os.WriteFile(planned.Session.ActionsPath, []byte(edited), 0o644); err != nil {
		t.Fatalf("write edited actions: %v", err)
	}

	result, err := workflow.Apply(ctx, cfg, store, nil, planned.Session.Token)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if result.Entries != 2 {
		t.Fatalf("expected 2 output entries, got %d", result.Entries)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Hello there again") {
		t.Fatalf("expected edited text in output, got %q", content)
	}
	if strings.Contains(content, "Goodbye") {
		t.Fatalf("expected removed row to vanish from output, got %q", content)
	}
	// Promoting record 2 to keep withdraws the timing extension.
	if !strings.Contains(content, "00:00:01,000 --> 00:00:02,000") {
		t.Fatalf("expected original end time restored, got %q", content)
	}
}

func TestApplyTwiceFails(t *testing.T) {
	cfg, store, sourcePath := testSetup(t)
	ctx := context.Background()

	planned, err := workflow.Plan(ctx, cfg, store, nil, workflow.PlanRequest{
		SourcePath: sourcePath,
		OutputPath: filepath.Join(t.TempDir(), "fixed.srt"),
		Threshold:  0.9,
	})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if _, err := workflow.Apply(ctx, cfg, store, nil, planned.Session.Token); err != nil {
		t.Fatalf("first Apply returned error: %v", err)
	}
	if _, err := workflow.Apply(ctx, cfg, store, nil, planned.Session.Token); err == nil {
		t.Fatal("expected second Apply to fail")
	}
}

func TestPlanRejectsBadThreshold(t *testing.T) {
	cfg, store, sourcePath := testSetup(t)
	_, err := workflow.Plan(context.Background(), cfg, store, nil, workflow.PlanRequest{
		SourcePath: sourcePath,
		Threshold:  1.2,
	})
	if err == nil {
		t.Fatal("expected threshold validation error")
	}
}

func TestPlanGuessModeSurvivesRoundTrip(t *testing.T) {
	cfg, store, sourcePath := testSetup(t)
	ctx := context.Background()

	outputPath := filepath.Join(t.TempDir(), "fixed.srt")
	planned, err := workflow.Plan(ctx, cfg, store, nil, workflow.PlanRequest{
		SourcePath: sourcePath,
		OutputPath: outputPath,
		Threshold:  0.9,
		TextMode:   correction.TextModeGuess,
	})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if planned.Session.TextMode != string(correction.TextModeGuess) {
		t.Fatalf("expected guess mode persisted, got %q", planned.Session.TextMode)
	}
	if _, err := workflow.Apply(ctx, cfg, store, nil, planned.Session.Token); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
}

func TestMarkReviewing(t *testing.T) {
	cfg, store, sourcePath := testSetup(t)
	ctx := context.Background()

	planned, err := workflow.Plan(ctx, cfg, store, nil, workflow.PlanRequest{
		SourcePath: sourcePath,
		Threshold:  0.9,
	})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if err := workflow.MarkReviewing(ctx, store, planned.Session); err != nil {
		t.Fatalf("MarkReviewing returned error: %v", err)
	}
	if planned.Session.Status != sessions.StatusReviewing {
		t.Fatalf("expected reviewing status, got %q", planned.Session.Status)
	}
	// Idempotent on non-planned sessions.
	if err := workflow.MarkReviewing(ctx, store, planned.Session); err != nil {
		t.Fatalf("second MarkReviewing returned error: %v", err)
	}
}

func TestApplyInPlaceWritesBackup(t *testing.T) {
	cfg, store, sourcePath := testSetup(t)
	ctx := context.Background()

	planned, err := workflow.Plan(ctx, cfg, store, nil, workflow.PlanRequest{
		SourcePath:    sourcePath,
		Threshold:     0.5,
		MinTextLength: 3,
	})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if planned.Session.OutputPath != sourcePath {
		t.Fatalf("expected in-place output, got %q", planned.Session.OutputPath)
	}

	if _, err := workflow.Apply(ctx, cfg, store, nil, planned.Session.Token); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	backup, err := os.ReadFile(sourcePath + ".bak")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != noisySRT {
		t.Fatalf("backup does not match original:\n%s", backup)
	}

	fixed, err := os.ReadFile(sourcePath)
	if err != nil {
		t.Fatalf("read fixed file: %v", err)
	}
	if string(fixed) == noisySRT {
		t.Fatal("source file was not rewritten")
	}
}
