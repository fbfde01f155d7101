// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package policy

import (
	"context"

	"github.com/similigh/simili-sync/internal/tracker"
)

// filtered narrows FetchIssuesForSync of the wrapped client to the issues the
// matcher selects. All other calls pass through.
type filtered struct {
	tracker.Client
	matcher *RuleMatcher
}

// Filter wraps client so that only issues selected by matcher are synced.
// A matcher without rules returns client unchanged.
func Filter(client tracker.Client, matcher *RuleMatcher) tracker.Client {
	if matcher == nil || len(matcher.rules) == 0 {
		return client
	}
	return &filtered{Client: client, matcher: matcher}
}

func (f *filtered) FetchIssuesForSync(ctx context.Context) ([]tracker.Issue, error) {
	issues, err := f.Client.FetchIssuesForSync(ctx)
	if err != nil {
		return nil, err
	}

	selected := make([]tracker.Issue, 0, len(issues))
	for _, issue := range issues {
		if f.matcher.Selects(issue) {
			selected = append(selected, issue)
		}
	}
	return selected, nil
}
