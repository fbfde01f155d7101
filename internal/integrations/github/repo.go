// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"

	"github.com/similigh/simili-sync/internal/tracker"
)

const perPage = 100

var _ tracker.Client = (*Repo)(nil)

// Repo is a tracker.Client for a single GitHub repository.
type Repo struct {
	client *github.Client
	owner  string
	name   string
}

// FetchIssuesForSync lists every issue of the repository, open and closed,
// oldest first. Pull requests are left out.
func (r *Repo) FetchIssuesForSync(ctx context.Context) ([]tracker.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var issues []tracker.Issue
	for {
		page, resp, err := r.client.Issues.ListByRepo(ctx, r.owner, r.name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues of %s/%s: %w", r.owner, r.name, err)
		}
		for _, issue := range page {
			if issue.IsPullRequest() {
				continue
			}
			issues = append(issues, toIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return issues, nil
}

// FetchIssueComments lists the comments of an issue, oldest first.
func (r *Repo) FetchIssueComments(ctx context.Context, number int) ([]tracker.Comment, error) {
	opts := &github.IssueListCommentsOptions{
		Sort:        github.String("created"),
		Direction:   github.String("asc"),
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var comments []tracker.Comment
	for {
		page, resp, err := r.client.Issues.ListComments(ctx, r.owner, r.name, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments of issue #%d: %w", number, err)
		}
		for _, c := range page {
			comments = append(comments, tracker.Comment{
				ID:     c.GetID(),
				Body:   c.GetBody(),
				Author: c.GetUser().GetLogin(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// CreateIssue opens a new issue. GitHub always creates issues open, so a
// closed issue is closed with a follow-up edit.
func (r *Repo) CreateIssue(ctx context.Context, issue tracker.Issue) error {
	req := &github.IssueRequest{
		Title:  github.String(issue.Title),
		Body:   github.String(issue.Body),
		Labels: labelsOf(issue),
	}

	created, _, err := r.client.Issues.Create(ctx, r.owner, r.name, req)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}

	if issue.State == tracker.StateClosed {
		closeReq := &github.IssueRequest{State: github.String(string(tracker.StateClosed))}
		if _, _, err := r.client.Issues.Edit(ctx, r.owner, r.name, created.GetNumber(), closeReq); err != nil {
			return fmt.Errorf("failed to close issue #%d: %w", created.GetNumber(), err)
		}
	}
	return nil
}

// UpdateIssue overwrites title, body, state and labels.
func (r *Repo) UpdateIssue(ctx context.Context, number int, issue tracker.Issue) error {
	req := &github.IssueRequest{
		Title:  github.String(issue.Title),
		Body:   github.String(issue.Body),
		State:  github.String(string(issue.State)),
		Labels: labelsOf(issue),
	}

	if _, _, err := r.client.Issues.Edit(ctx, r.owner, r.name, number, req); err != nil {
		return fmt.Errorf("failed to update issue #%d: %w", number, err)
	}
	return nil
}

// CreateIssueComment posts a comment on an issue.
func (r *Repo) CreateIssueComment(ctx context.Context, number int, comment tracker.Comment) error {
	if strings.TrimSpace(comment.Body) == "" {
		return fmt.Errorf("comment body cannot be empty")
	}

	c := &github.IssueComment{
		Body: github.String(comment.Body),
	}
	if _, _, err := r.client.Issues.CreateComment(ctx, r.owner, r.name, number, c); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// Repository returns the repository's web URL and full name.
func (r *Repo) Repository(ctx context.Context) (tracker.Repository, error) {
	repo, _, err := r.client.Repositories.Get(ctx, r.owner, r.name)
	if err != nil {
		return tracker.Repository{}, fmt.Errorf("failed to get repository %s/%s: %w", r.owner, r.name, err)
	}

	return tracker.Repository{
		URL:      strings.TrimSuffix(repo.GetHTMLURL(), "/"),
		FullName: repo.GetFullName(),
	}, nil
}

func toIssue(issue *github.Issue) tracker.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}

	return tracker.Issue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		State:  tracker.NormalizeState(issue.GetState()),
		Labels: labels,
		URL:    issue.GetHTMLURL(),
	}
}

// labelsOf always returns a non-nil slice so that an empty label list clears
// the labels on update.
func labelsOf(issue tracker.Issue) *[]string {
	labels := make([]string, len(issue.Labels))
	copy(labels, issue.Labels)
	return &labels
}
