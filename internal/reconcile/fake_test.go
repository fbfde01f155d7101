// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package reconcile

import (
	"context"
	"fmt"
	"sync"

	"github.com/similigh/simili-sync/internal/tracker"
)

// fakeTracker is an in-memory tracker.Client that records every call.
type fakeTracker struct {
	mu sync.Mutex

	repo     tracker.Repository
	issues   []tracker.Issue
	comments map[int][]tracker.Comment

	fetchErr        error
	commentFetchErr error
	repoErr         error
	createErr       map[string]error // by title
	updateErr       map[int]error    // by number
	commentErr      map[string]error // by body

	calls     []string
	created   []tracker.Issue
	updated   map[int]tracker.Issue
	commented map[int][]tracker.Comment
}

func newFakeTracker(url string, issues ...tracker.Issue) *fakeTracker {
	return &fakeTracker{
		repo:      tracker.Repository{URL: url},
		issues:    issues,
		comments:  map[int][]tracker.Comment{},
		updated:   map[int]tracker.Issue{},
		commented: map[int][]tracker.Comment{},
	}
}

func (f *fakeTracker) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeTracker) mutations() int {
	return len(f.created) + len(f.updated) + len(f.commented)
}

func (f *fakeTracker) FetchIssuesForSync(context.Context) ([]tracker.Issue, error) {
	f.record("fetch-issues")
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.issues, nil
}

func (f *fakeTracker) FetchIssueComments(_ context.Context, number int) ([]tracker.Comment, error) {
	f.record("fetch-comments #%d", number)
	if f.commentFetchErr != nil {
		return nil, f.commentFetchErr
	}
	return f.comments[number], nil
}

func (f *fakeTracker) CreateIssue(_ context.Context, issue tracker.Issue) error {
	f.record("create %s", issue.Title)
	if err := f.createErr[issue.Title]; err != nil {
		return err
	}
	f.created = append(f.created, issue)
	return nil
}

func (f *fakeTracker) UpdateIssue(_ context.Context, number int, issue tracker.Issue) error {
	f.record("update #%d", number)
	if err := f.updateErr[number]; err != nil {
		return err
	}
	f.updated[number] = issue
	return nil
}

func (f *fakeTracker) CreateIssueComment(_ context.Context, number int, comment tracker.Comment) error {
	f.record("comment #%d", number)
	if err := f.commentErr[comment.Body]; err != nil {
		return err
	}
	f.commented[number] = append(f.commented[number], comment)
	return nil
}

func (f *fakeTracker) Repository(context.Context) (tracker.Repository, error) {
	f.record("repository")
	if f.repoErr != nil {
		return tracker.Repository{}, f.repoErr
	}
	return f.repo, nil
}
