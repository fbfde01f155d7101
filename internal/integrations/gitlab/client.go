// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

// Package gitlab adapts the GitLab issues API to tracker.Client.
package gitlab

import (
	"context"
	"fmt"
	"strings"

	"github.com/xanzy/go-gitlab"

	"github.com/similigh/simili-sync/internal/tracker"
)

const perPage = 100

var _ tracker.Client = (*Project)(nil)

// NewClient creates a GitLab API client. An empty baseURL uses gitlab.com.
func NewClient(token, baseURL string) (*gitlab.Client, error) {
	var opts []gitlab.ClientOptionFunc
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}

	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}
	return client, nil
}

// Project is a tracker.Client for a single GitLab project. Issue numbers are
// project-scoped IIDs.
type Project struct {
	client *gitlab.Client
	path   string
}

// NewProject binds client to the project "group/name". Nested groups are
// allowed.
func NewProject(client *gitlab.Client, path string) (*Project, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if !strings.Contains(path, "/") {
		return nil, fmt.Errorf("invalid project path: expected 'group/project', got '%s'", path)
	}
	return &Project{client: client, path: path}, nil
}

// FetchIssuesForSync lists every issue of the project, oldest first.
func (p *Project) FetchIssuesForSync(ctx context.Context) ([]tracker.Issue, error) {
	opts := &gitlab.ListProjectIssuesOptions{
		ListOptions: gitlab.ListOptions{PerPage: perPage, Page: 1},
		OrderBy:     gitlab.Ptr("created_at"),
		Sort:        gitlab.Ptr("asc"),
	}

	var issues []tracker.Issue
	for {
		page, resp, err := p.client.Issues.ListProjectIssues(p.path, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list issues of %s: %w", p.path, err)
		}
		for _, issue := range page {
			issues = append(issues, toIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return issues, nil
}

// FetchIssueComments lists the user comments of an issue, oldest first.
// System notes such as label changes are left out.
func (p *Project) FetchIssueComments(ctx context.Context, number int) ([]tracker.Comment, error) {
	opts := &gitlab.ListIssueNotesOptions{
		ListOptions: gitlab.ListOptions{PerPage: perPage, Page: 1},
		OrderBy:     gitlab.Ptr("created_at"),
		Sort:        gitlab.Ptr("asc"),
	}

	var comments []tracker.Comment
	for {
		page, resp, err := p.client.Notes.ListIssueNotes(p.path, number, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list notes of issue #%d: %w", number, err)
		}
		for _, note := range page {
			if note.System {
				continue
			}
			comments = append(comments, tracker.Comment{
				ID:     int64(note.ID),
				Body:   note.Body,
				Author: note.Author.Username,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// CreateIssue opens a new issue and closes it right away when the source is
// closed. GitLab has no way to create a closed issue.
func (p *Project) CreateIssue(ctx context.Context, issue tracker.Issue) error {
	opts := &gitlab.CreateIssueOptions{
		Title:       gitlab.Ptr(issue.Title),
		Description: gitlab.Ptr(issue.Body),
		Labels:      labelsOf(issue),
	}

	created, _, err := p.client.Issues.CreateIssue(p.path, opts, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}

	if issue.State == tracker.StateClosed {
		closeOpts := &gitlab.UpdateIssueOptions{StateEvent: gitlab.Ptr("close")}
		if _, _, err := p.client.Issues.UpdateIssue(p.path, created.IID, closeOpts, gitlab.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to close issue #%d: %w", created.IID, err)
		}
	}
	return nil
}

// UpdateIssue overwrites title, description, state and labels.
func (p *Project) UpdateIssue(ctx context.Context, number int, issue tracker.Issue) error {
	opts := &gitlab.UpdateIssueOptions{
		Title:       gitlab.Ptr(issue.Title),
		Description: gitlab.Ptr(issue.Body),
		Labels:      labelsOf(issue),
		StateEvent:  gitlab.Ptr(stateEvent(issue.State)),
	}

	if _, _, err := p.client.Issues.UpdateIssue(p.path, number, opts, gitlab.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to update issue #%d: %w", number, err)
	}
	return nil
}

// CreateIssueComment adds a note to an issue.
func (p *Project) CreateIssueComment(ctx context.Context, number int, comment tracker.Comment) error {
	if strings.TrimSpace(comment.Body) == "" {
		return fmt.Errorf("comment body cannot be empty")
	}

	opts := &gitlab.CreateIssueNoteOptions{Body: gitlab.Ptr(comment.Body)}
	if _, _, err := p.client.Notes.CreateIssueNote(p.path, number, opts, gitlab.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// Repository returns the project's web URL and full path.
func (p *Project) Repository(ctx context.Context) (tracker.Repository, error) {
	project, _, err := p.client.Projects.GetProject(p.path, nil, gitlab.WithContext(ctx))
	if err != nil {
		return tracker.Repository{}, fmt.Errorf("failed to get project %s: %w", p.path, err)
	}

	return tracker.Repository{
		URL:      strings.TrimSuffix(project.WebURL, "/"),
		FullName: project.PathWithNamespace,
	}, nil
}

func toIssue(issue *gitlab.Issue) tracker.Issue {
	labels := make([]string, len(issue.Labels))
	copy(labels, issue.Labels)

	return tracker.Issue{
		Number: issue.IID,
		Title:  issue.Title,
		Body:   issue.Description,
		State:  tracker.NormalizeState(issue.State),
		Labels: labels,
		URL:    issue.WebURL,
	}
}

func labelsOf(issue tracker.Issue) *gitlab.LabelOptions {
	labels := make(gitlab.LabelOptions, len(issue.Labels))
	copy(labels, issue.Labels)
	return &labels
}

func stateEvent(state tracker.State) string {
	if state == tracker.StateClosed {
		return "close"
	}
	return "reopen"
}
