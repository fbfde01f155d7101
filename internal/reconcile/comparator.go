// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

// Package reconcile reconciles the issues of a target repository towards a source
// repository hosted on another tracker.
//
// Issues are matched across repositories by exact title. The comparator
// functions are pure; the Reconciler performs the resulting actions.
package reconcile

import (
	"slices"

	"github.com/similigh/simili-sync/internal/tracker"
)

// Action is what the reconciler does for a compared item.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionSkip   Action = "skip"
)

// IssueComparison pairs a source issue with its match in the target.
// Target is nil exactly when Action is ActionCreate.
type IssueComparison struct {
	Source tracker.Issue
	Target *tracker.Issue
	Action Action
}

// CommentComparison is a source comment that has to be created on the target.
type CommentComparison struct {
	Source tracker.Comment
	Action Action
}

// CompareIssues decides, for every source issue in order, whether the target
// needs it created, updated or left alone.
func CompareIssues(source, target []tracker.Issue) []IssueComparison {
	comparisons := make([]IssueComparison, 0, len(source))

	for _, src := range source {
		match := findByTitle(target, src.Title)
		if match == nil {
			comparisons = append(comparisons, IssueComparison{Source: src, Action: ActionCreate})
			continue
		}

		action := ActionSkip
		if issueChanged(src, *match) {
			action = ActionUpdate
		}
		comparisons = append(comparisons, IssueComparison{Source: src, Target: match, Action: action})
	}

	return comparisons
}

// findByTitle returns a copy of the first issue with the given title.
func findByTitle(issues []tracker.Issue, title string) *tracker.Issue {
	for i := range issues {
		if issues[i].Title == title {
			match := issues[i]
			return &match
		}
	}
	return nil
}

// issueChanged compares the synced fields. Labels compare as ordered
// sequences, so a reordered label list counts as a change.
func issueChanged(src, dst tracker.Issue) bool {
	return src.Body != dst.Body ||
		src.State != dst.State ||
		!slices.Equal(src.Labels, dst.Labels)
}

// CompareComments selects the opening and closing comments of the source
// thread that the target does not already carry. Comments in between are
// never mirrored.
func CompareComments(source, target []tracker.Comment) []CommentComparison {
	if len(source) == 0 {
		return nil
	}

	existing := make(map[string]bool, len(target))
	for _, c := range target {
		existing[c.Body] = true
	}

	var comparisons []CommentComparison

	opening := source[0]
	if opening.Body != "" && !existing[opening.Body] {
		comparisons = append(comparisons, CommentComparison{Source: opening, Action: ActionCreate})
	}

	// A single-comment thread has no separate closing comment.
	if last := len(source) - 1; last > 0 {
		closing := source[last]
		if !existing[closing.Body] {
			comparisons = append(comparisons, CommentComparison{Source: closing, Action: ActionCreate})
		}
	}

	return comparisons
}

// DuplicateTitles returns the titles that appear more than once, in order of
// their second occurrence. Title matching cannot tell such issues apart.
func DuplicateTitles(issues []tracker.Issue) []string {
	seen := make(map[string]int, len(issues))
	var dups []string
	for _, issue := range issues {
		seen[issue.Title]++
		if seen[issue.Title] == 2 {
			dups = append(dups, issue.Title)
		}
	}
	return dups
}
