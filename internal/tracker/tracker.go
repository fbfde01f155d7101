// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

// Package tracker defines the platform-neutral view of an issue tracker that
// the sync engine works against. Each supported platform provides an adapter
// implementing Client.
package tracker

import "context"

// State is the open/closed state of an issue.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// Issue is an issue as seen by the sync engine.
type Issue struct {
	Number int
	Title  string
	Body   string
	State  State
	Labels []string
	URL    string
}

// Comment is a single comment on an issue.
type Comment struct {
	ID     int64
	Body   string
	Author string
}

// Repository describes the repository a client is bound to.
type Repository struct {
	// URL is the web URL of the repository, without a trailing slash.
	URL      string
	FullName string
}

// Client is the capability set the sync engine needs from a tracker.
// Issue numbers are the platform's per-repository identifiers.
type Client interface {
	// FetchIssuesForSync returns every issue that takes part in a sync pass.
	FetchIssuesForSync(ctx context.Context) ([]Issue, error)

	// FetchIssueComments returns the comments of an issue in chronological order.
	FetchIssueComments(ctx context.Context, number int) ([]Comment, error)

	CreateIssue(ctx context.Context, issue Issue) error

	// UpdateIssue overwrites title, body, state and labels of the issue.
	UpdateIssue(ctx context.Context, number int, issue Issue) error

	CreateIssueComment(ctx context.Context, number int, comment Comment) error

	Repository(ctx context.Context) (Repository, error)
}

// NormalizeState maps platform state names onto State.
// GitLab reports open issues as "opened".
func NormalizeState(s string) State {
	switch s {
	case "closed":
		return StateClosed
	default:
		return StateOpen
	}
}
