// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package reconcile

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/similigh/simili-sync/internal/core/logging"
	"github.com/similigh/simili-sync/internal/tracker"
)

func TestBuildBacklink(t *testing.T) {
	repo := tracker.Repository{URL: "https://github.com/acme/widgets"}
	got := BuildBacklink(repo, tracker.Issue{Number: 42, Title: "Bug A"})

	want := "_Synced from [Bug A](https://github.com/acme/widgets/issues/42)_"
	if got != want {
		t.Errorf("BuildBacklink() = %q, want %q", got, want)
	}
}

func TestWithBacklink(t *testing.T) {
	repo := tracker.Repository{URL: "https://gitlab.com/acme/widgets"}
	src := tracker.Issue{Number: 3, Title: "Bug A", Body: "x"}

	got := withBacklink(repo, src)

	if got.Body != "x\n\n"+BuildBacklink(repo, src) {
		t.Errorf("unexpected body %q", got.Body)
	}
	if src.Body != "x" {
		t.Errorf("withBacklink must not modify its input")
	}
}

func TestSummarize(t *testing.T) {
	comparisons := []IssueComparison{
		{Action: ActionCreate}, {Action: ActionSkip}, {Action: ActionCreate}, {Action: ActionUpdate},
	}

	got := Summarize(comparisons)
	if diff := cmp.Diff(Plan{Create: 2, Update: 1, Skip: 1}, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestReportPlan(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewActions(&buf, slog.LevelInfo)

	ReportPlan(log, []IssueComparison{{Action: ActionCreate}, {Action: ActionSkip}})

	want := "::group::Sync plan\nCreate: 1 issues\nUpdate: 0 issues\nSkip: 1 issues\n::endgroup::\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected report:\n%s\nwant:\n%s", got, want)
	}
}

func TestWritePlanTable(t *testing.T) {
	target := tracker.Issue{Number: 20}
	comparisons := []IssueComparison{
		{Source: tracker.Issue{Number: 1, Title: "Bug A"}, Action: ActionCreate},
		{Source: tracker.Issue{Number: 2, Title: "Bug B"}, Target: &target, Action: ActionUpdate},
	}

	var buf bytes.Buffer
	if err := WritePlanTable(&buf, comparisons); err != nil {
		t.Fatalf("WritePlanTable() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Action", "Bug A", "Bug B", "#20", "create", "update"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, out)
		}
	}
}
