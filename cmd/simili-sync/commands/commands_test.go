// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/similigh/simili-sync/internal/core/config"
	"github.com/similigh/simili-sync/internal/integrations/github"
	"github.com/similigh/simili-sync/internal/integrations/gitlab"
	"github.com/similigh/simili-sync/internal/reconcile"
	"github.com/similigh/simili-sync/internal/tracker"
)

func TestNewTrackerClient(t *testing.T) {
	ctx := context.Background()

	gh, err := newTrackerClient(ctx, config.RepositoryConfig{Platform: config.PlatformGitHub, Repo: "acme/widgets"})
	if err != nil {
		t.Fatalf("github client error: %v", err)
	}
	if _, ok := gh.(*github.Repo); !ok {
		t.Errorf("Expected *github.Repo, got %T", gh)
	}

	gl, err := newTrackerClient(ctx, config.RepositoryConfig{
		Platform: config.PlatformGitLab, Repo: "acme/widgets", BaseURL: "https://gitlab.example.com",
	})
	if err != nil {
		t.Fatalf("gitlab client error: %v", err)
	}
	if _, ok := gl.(*gitlab.Project); !ok {
		t.Errorf("Expected *gitlab.Project, got %T", gl)
	}

	if _, err := newTrackerClient(ctx, config.RepositoryConfig{Platform: "jira", Repo: "a/b"}); err == nil {
		t.Error("Expected error for unsupported platform")
	}
	if _, err := newTrackerClient(ctx, config.RepositoryConfig{Platform: config.PlatformGitHub, Repo: "bad"}); err == nil {
		t.Error("Expected error for malformed repository")
	}
}

func TestOutcomeMsg(t *testing.T) {
	msg := outcomeMsg(reconcile.Outcome{
		Comparison: reconcile.IssueComparison{
			Source: tracker.Issue{Number: 4, Title: "Bug A"},
			Action: reconcile.ActionUpdate,
		},
		Err: errors.New("rejected"),
	})

	if msg.Number != 4 || msg.Title != "Bug A" || msg.Status != "failed" || msg.Message != "rejected" {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	err := printPlan(&buf, []reconcile.IssueComparison{
		{Source: tracker.Issue{Number: 1, Title: "Bug A"}, Action: reconcile.ActionCreate},
	})
	if err != nil {
		t.Fatalf("printPlan() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Bug A", "Create: 1 issues", "Update: 0 issues", "Skip: 0 issues"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simili-sync.yaml")
	content := `
source:
  platform: github
  repo: acme/widgets
target:
  platform: gitlab
  repo: acme/widgets
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"validate", "--config", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		cfgFile = ""
	})

	if err := Execute(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out.String(), "source: github acme/widgets") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestValidateCommandMissingConfig(t *testing.T) {
	rootCmd.SetArgs([]string{"validate", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(nil)
		cfgFile = ""
	})

	if err := Execute(); err == nil {
		t.Error("Expected error for a missing config file")
	}
}

func TestOutcomeMsgReportsCommentFailures(t *testing.T) {
	msg := outcomeMsg(reconcile.Outcome{
		Comparison: reconcile.IssueComparison{
			Source: tracker.Issue{Number: 4, Title: "Bug A"},
			Target: &tracker.Issue{Number: 40, Title: "Bug A"},
			Action: reconcile.ActionSkip,
		},
		Comments: reconcile.CommentSyncResult{Failed: 2},
	})

	if msg.Status != "skipped" || msg.Message != "2 comment(s) not synced" {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestSummaryLine(t *testing.T) {
	got := summaryLine(map[string]int{"created": 2, "failed": 1})
	if got != "created 2, updated 0, skipped 0, failed 1" {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestUseTUIRequiresTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")

	if useTUI(&bytes.Buffer{}, &bytes.Buffer{}) {
		t.Error("Expected plain output without a terminal")
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error: %v", err)
	}
	defer r.Close()
	defer w.Close()
	if useTUI(r, w) {
		t.Error("Expected plain output when attached to pipes")
	}
}

func TestSyncWithoutTerminalRunsPlainPass(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")

	createdCh := make(chan map[string]any, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/acme/source/issues", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"number": 1, "title": "Bug A", "body": "x", "state": "open"}]`)
	})
	mux.HandleFunc("GET /api/v3/repos/acme/target/issues", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("GET /api/v3/repos/acme/source", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"full_name": "acme/source", "html_url": "https://github.example.com/acme/source"}`)
	})
	mux.HandleFunc("POST /api/v3/repos/acme/target/issues", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode create request: %v", err)
		}
		createdCh <- payload
		fmt.Fprint(w, `{"number": 7}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "simili-sync.yaml")
	content := fmt.Sprintf(`
source:
  platform: github
  repo: acme/source
  base_url: %[1]s
target:
  platform: github
  repo: acme/target
  base_url: %[1]s
`, server.URL)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	rootCmd.SetIn(&bytes.Buffer{})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"sync", "--config", path})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		cfgFile = ""
	})

	if err := Execute(); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	var created map[string]any
	select {
	case created = <-createdCh:
	default:
		t.Fatal("Expected the missing issue to be created on the target")
	}
	if created["title"] != "Bug A" {
		t.Errorf("unexpected create payload: %v", created)
	}
	body, _ := created["body"].(string)
	if !strings.HasSuffix(body, "_Synced from [Bug A](https://github.example.com/acme/source/issues/1)_") {
		t.Errorf("Expected body to end with a backlink, got %q", body)
	}
}
