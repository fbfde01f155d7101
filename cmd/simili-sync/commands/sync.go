// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/similigh/simili-sync/internal/core/config"
	"github.com/similigh/simili-sync/internal/core/logging"
	"github.com/similigh/simili-sync/internal/reconcile"
	"github.com/similigh/simili-sync/internal/tracker"
	"github.com/similigh/simili-sync/internal/tui"
)

var (
	syncDryRun     bool
	syncNoComments bool
	syncNoTUI      bool
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass from the source to the target repository",
	Long: `Run a single reconciliation pass.

Issues missing on the target are created with a backlink to the source,
issues whose body, state or labels differ are overwritten, and the opening
and closing comments of issues present on both sides are copied.

A failure on one issue is reported as a warning and does not stop the pass.
The command fails only when the issue lists cannot be fetched.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Log the changes without performing them")
	syncCmd.Flags().BoolVar(&syncNoComments, "no-comments", false, "Skip comment sync")
	syncCmd.Flags().BoolVar(&syncNoTUI, "no-tui", false, "Print logs instead of the interactive view")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	source, target, err := newClients(ctx, cfg)
	if err != nil {
		return err
	}

	opts := []reconcile.Option{
		reconcile.WithDryRun(cfg.Sync.DryRun || syncDryRun),
		reconcile.WithComments(cfg.Sync.CommentsEnabled() && !syncNoComments),
	}

	if !useTUI(cmd.InOrStdin(), cmd.OutOrStdout()) {
		log := newLogger(cfg, os.Stderr)
		_, err := reconcile.New(append(opts, reconcile.WithLogger(log))...).Reconcile(ctx, source, target)
		return err
	}
	return runSyncTUI(ctx, cfg, source, target, opts)
}

// useTUI reports whether the interactive view can run. It needs a terminal on
// both ends; cron jobs, containers and CI get plain logs.
func useTUI(in io.Reader, out io.Writer) bool {
	if syncNoTUI || logging.IsCI() {
		return false
	}
	return isTerminal(in) && isTerminal(out)
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runSyncTUI runs the pass in the background and shows its progress.
func runSyncTUI(ctx context.Context, cfg *config.Config, source, target tracker.Client, opts []reconcile.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan tea.Msg)
	log := newLogger(cfg, tui.NewLogWriter(updates))

	title := fmt.Sprintf("Simili-Sync: %s → %s", cfg.Source.Repo, cfg.Target.Repo)
	p := tea.NewProgram(tui.NewModel(title, updates))

	var syncErr error
	go func() {
		defer close(updates)

		r := reconcile.New(append(opts,
			reconcile.WithLogger(log),
			reconcile.WithProgress(func(o reconcile.Outcome) {
				updates <- outcomeMsg(o)
			}),
		)...)

		result, err := r.Reconcile(ctx, source, target)
		if err != nil {
			syncErr = err
			updates <- tui.ResultMsg{Success: false, Output: err.Error()}
			return
		}
		lines := append(result.Plan.Lines(), fmt.Sprintf("Comment failures: %d", result.CommentFailures()))
		updates <- tui.ResultMsg{Success: true, Output: strings.Join(lines, "\n")}
	}()

	final, runErr := p.Run()

	// The user may quit early; stop the pass and wait for it to wind down.
	cancel()
	for range updates {
	}

	if runErr != nil {
		return fmt.Errorf("error running TUI: %w", runErr)
	}
	if m, ok := final.(tui.Model); ok {
		fmt.Fprintln(os.Stderr, summaryLine(m.Counts()))
	}
	return syncErr
}

// summaryLine renders per-status issue counts.
func summaryLine(counts map[string]int) string {
	return fmt.Sprintf("created %d, updated %d, skipped %d, failed %d",
		counts["created"], counts["updated"], counts["skipped"], counts["failed"])
}

func outcomeMsg(o reconcile.Outcome) tui.IssueStatusMsg {
	msg := tui.IssueStatusMsg{
		Number: o.Comparison.Source.Number,
		Title:  o.Comparison.Source.Title,
		Status: o.Status(),
	}
	if o.Err != nil {
		msg.Message = o.Err.Error()
	} else if n := o.Comments.Failures(); n > 0 {
		msg.Message = fmt.Sprintf("%d comment(s) not synced", n)
	}
	return msg
}
