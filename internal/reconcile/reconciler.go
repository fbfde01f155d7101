// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package reconcile

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/similigh/simili-sync/internal/core/logging"
	"github.com/similigh/simili-sync/internal/tracker"
)

// Reconciler drives one sync pass from a source tracker to a target tracker.
// Issues are processed one at a time in source order; a failure on one issue
// is logged and recorded without stopping the pass.
type Reconciler struct {
	log      logging.Logger
	dryRun   bool
	comments bool
	progress func(Outcome)
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logging.Logger) Option {
	return func(r *Reconciler) { r.log = log }
}

// WithDryRun logs every mutation instead of performing it.
func WithDryRun(dryRun bool) Option {
	return func(r *Reconciler) { r.dryRun = dryRun }
}

// WithComments toggles comment sync for issues present on both sides.
// Enabled by default.
func WithComments(enabled bool) Option {
	return func(r *Reconciler) { r.comments = enabled }
}

// WithProgress registers a callback invoked after each issue is processed.
func WithProgress(fn func(Outcome)) Option {
	return func(r *Reconciler) { r.progress = fn }
}

// New creates a Reconciler.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{
		log:      logging.Nop(),
		comments: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Outcome records what happened to a single source issue.
type Outcome struct {
	Comparison IssueComparison
	// Err is the failure of the create or update call, if any.
	Err      error
	DryRun   bool
	Comments CommentSyncResult
}

// Status is a short label for the outcome.
func (o Outcome) Status() string {
	if o.Err != nil {
		return "failed"
	}
	switch o.Comparison.Action {
	case ActionCreate:
		return "created"
	case ActionUpdate:
		return "updated"
	default:
		return "skipped"
	}
}

// CommentSyncResult summarizes comment sync for one issue pair.
type CommentSyncResult struct {
	Created int
	Failed  int
	// Err is set when comments could not be fetched; nothing was created.
	Err error
}

// Failures returns Failed, plus one when the comments could not be fetched.
func (c CommentSyncResult) Failures() int {
	if c.Err != nil {
		return c.Failed + 1
	}
	return c.Failed
}

// Result is the outcome of a complete pass.
type Result struct {
	Plan     Plan
	Outcomes []Outcome
}

// Failed returns the number of issues whose create or update failed.
// Comment sync failures are counted by CommentFailures.
func (r *Result) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// CommentFailures returns the number of comments that could not be created.
// An issue pair whose comments could not be fetched counts once.
func (r *Result) CommentFailures() int {
	n := 0
	for _, o := range r.Outcomes {
		n += o.Comments.Failures()
	}
	return n
}

// Preview fetches both issue lists and compares them without changing
// anything. It fails only when an issue list cannot be fetched.
func (r *Reconciler) Preview(ctx context.Context, source, target tracker.Client) ([]IssueComparison, error) {
	sourceIssues, targetIssues, err := fetchIssues(ctx, source, target)
	if err != nil {
		r.log.Errorf("Sync aborted: %v", err)
		return nil, err
	}
	r.log.Infof("Fetched %d source issues and %d target issues", len(sourceIssues), len(targetIssues))

	r.flagDuplicates("source", sourceIssues)
	r.flagDuplicates("target", targetIssues)

	return CompareIssues(sourceIssues, targetIssues), nil
}

// Reconcile converges target towards source. An error is returned only when
// the issue lists cannot be fetched, in which case nothing was mutated.
func (r *Reconciler) Reconcile(ctx context.Context, source, target tracker.Client) (*Result, error) {
	comparisons, err := r.Preview(ctx, source, target)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Plan:     ReportPlan(r.log, comparisons),
		Outcomes: make([]Outcome, 0, len(comparisons)),
	}

	end := r.log.Group("Syncing issues")
	links := &backlinkSource{client: source}
	for _, c := range comparisons {
		outcome := Outcome{Comparison: c, DryRun: r.dryRun}
		outcome.Err = r.apply(ctx, target, links, c)
		if outcome.Err != nil {
			r.log.Warnf("Failed to %s issue %q: %v", c.Action, c.Source.Title, outcome.Err)
		}

		if c.Target != nil && r.comments {
			outcome.Comments = r.SyncComments(ctx, source, target, c.Source.Number, c.Target.Number)
		}

		result.Outcomes = append(result.Outcomes, outcome)
		if r.progress != nil {
			r.progress(outcome)
		}
	}
	end()

	r.log.Infof("Sync complete: %d issues processed, %d failed, %d comment failures",
		len(result.Outcomes), result.Failed(), result.CommentFailures())
	return result, nil
}

func fetchIssues(ctx context.Context, source, target tracker.Client) ([]tracker.Issue, []tracker.Issue, error) {
	var sourceIssues, targetIssues []tracker.Issue

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		issues, err := source.FetchIssuesForSync(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch source issues: %w", err)
		}
		sourceIssues = issues
		return nil
	})
	g.Go(func() error {
		issues, err := target.FetchIssuesForSync(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch target issues: %w", err)
		}
		targetIssues = issues
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sourceIssues, targetIssues, nil
}

func (r *Reconciler) flagDuplicates(side string, issues []tracker.Issue) {
	for _, title := range DuplicateTitles(issues) {
		r.log.Warnf("Duplicate %s issue title %q: only the first match is synced", side, title)
	}
}

// apply performs the action of a single comparison against the target.
func (r *Reconciler) apply(ctx context.Context, target tracker.Client, links *backlinkSource, c IssueComparison) error {
	switch c.Action {
	case ActionCreate:
		repo, err := links.repository(ctx)
		if err != nil {
			return err
		}
		issue := withBacklink(repo, c.Source)
		if r.dryRun {
			r.log.Infof("DRY RUN: would create issue %q", issue.Title)
			return nil
		}
		if err := target.CreateIssue(ctx, issue); err != nil {
			return err
		}
		r.log.Infof("Created issue %q", issue.Title)

	case ActionUpdate:
		if r.dryRun {
			r.log.Infof("DRY RUN: would update issue #%d %q", c.Target.Number, c.Source.Title)
			return nil
		}
		if err := target.UpdateIssue(ctx, c.Target.Number, c.Source); err != nil {
			return err
		}
		r.log.Infof("Updated issue #%d %q", c.Target.Number, c.Source.Title)

	case ActionSkip:
		r.log.Debugf("Issue %q is up to date", c.Source.Title)
	}
	return nil
}

// SyncComments creates the opening and closing comments of a source issue on
// its target counterpart. Failures are logged and never returned.
func (r *Reconciler) SyncComments(ctx context.Context, source, target tracker.Client, sourceNumber, targetNumber int) CommentSyncResult {
	var result CommentSyncResult

	sourceComments, err := source.FetchIssueComments(ctx, sourceNumber)
	if err != nil {
		result.Err = fmt.Errorf("failed to fetch comments of source issue #%d: %w", sourceNumber, err)
		r.log.Warnf("Skipping comment sync: %v", result.Err)
		return result
	}
	targetComments, err := target.FetchIssueComments(ctx, targetNumber)
	if err != nil {
		result.Err = fmt.Errorf("failed to fetch comments of target issue #%d: %w", targetNumber, err)
		r.log.Warnf("Skipping comment sync: %v", result.Err)
		return result
	}

	for _, c := range CompareComments(sourceComments, targetComments) {
		if r.dryRun {
			r.log.Infof("DRY RUN: would add comment to issue #%d", targetNumber)
			result.Created++
			continue
		}
		if err := target.CreateIssueComment(ctx, targetNumber, c.Source); err != nil {
			r.log.Warnf("Failed to add comment to issue #%d: %v", targetNumber, err)
			result.Failed++
			continue
		}
		r.log.Debugf("Added comment to issue #%d", targetNumber)
		result.Created++
	}

	return result
}

// backlinkSource fetches the source repository descriptor on first use.
// A failed lookup is retried by the next create.
type backlinkSource struct {
	client tracker.Client
	repo   *tracker.Repository
}

func (b *backlinkSource) repository(ctx context.Context) (tracker.Repository, error) {
	if b.repo != nil {
		return *b.repo, nil
	}
	repo, err := b.client.Repository(ctx)
	if err != nil {
		return tracker.Repository{}, fmt.Errorf("failed to get source repository: %w", err)
	}
	b.repo = &repo
	return repo, nil
}
