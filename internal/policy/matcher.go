// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-04
// Last Modified: 2026-10-15

// Package policy decides which source issues take part in a sync.
package policy

import (
	"sort"
	"strings"

	"github.com/similigh/simili-sync/internal/core/config"
	"github.com/similigh/simili-sync/internal/tracker"
)

// RuleMatcher evaluates filter rules against issues.
type RuleMatcher struct {
	rules []config.FilterRule
}

// NewRuleMatcher creates a new RuleMatcher with the given rules.
// It filters out disabled rules and sorts by priority (descending).
func NewRuleMatcher(rules []config.FilterRule) *RuleMatcher {
	// Filter enabled rules
	enabled := make([]config.FilterRule, 0, len(rules))
	for _, r := range rules {
		if r.Enabled == nil || *r.Enabled {
			enabled = append(enabled, r)
		}
	}

	// Sort by priority (descending - higher priority first)
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority > enabled[j].Priority
	})

	return &RuleMatcher{rules: enabled}
}

// Selects reports whether issue takes part in the sync. Without include
// rules every issue is selected; exclude rules always win.
func (m *RuleMatcher) Selects(issue tracker.Issue) bool {
	hasInclude := false
	included := false
	for i := range m.rules {
		rule := &m.rules[i]
		if !rule.Exclude {
			hasInclude = true
		}
		if !m.evaluateRule(rule, issue) {
			continue
		}
		if rule.Exclude {
			return false
		}
		included = true
	}
	return included || !hasInclude
}

// evaluateRule checks if an issue matches a single rule.
// All specified conditions must match (AND logic between condition types).
func (m *RuleMatcher) evaluateRule(rule *config.FilterRule, issue tracker.Issue) bool {
	// Labels (AND): ALL must match
	if len(rule.Labels) > 0 {
		if !m.matchLabelsAll(issue.Labels, rule.Labels) {
			return false
		}
	}

	// LabelsAny (OR): ANY must match
	if len(rule.LabelsAny) > 0 {
		if !m.matchLabelsAny(issue.Labels, rule.LabelsAny) {
			return false
		}
	}

	// TitleContains (OR): ANY must match
	if len(rule.TitleContains) > 0 {
		if !m.matchContainsAny(issue.Title, rule.TitleContains) {
			return false
		}
	}

	// BodyContains (OR): ANY must match
	if len(rule.BodyContains) > 0 {
		if !m.matchContainsAny(issue.Body, rule.BodyContains) {
			return false
		}
	}

	return true
}

// matchLabelsAll returns true if all required labels are present (case-insensitive).
func (m *RuleMatcher) matchLabelsAll(issueLabels, requiredLabels []string) bool {
	labelSet := make(map[string]bool, len(issueLabels))
	for _, l := range issueLabels {
		labelSet[strings.ToLower(l)] = true
	}

	for _, required := range requiredLabels {
		if !labelSet[strings.ToLower(required)] {
			return false
		}
	}
	return true
}

// matchLabelsAny returns true if any of the required labels are present (case-insensitive).
func (m *RuleMatcher) matchLabelsAny(issueLabels, requiredLabels []string) bool {
	for _, l := range issueLabels {
		for _, required := range requiredLabels {
			if strings.EqualFold(l, required) {
				return true
			}
		}
	}
	return false
}

// matchContainsAny returns true if the text contains any of the patterns (case-insensitive).
func (m *RuleMatcher) matchContainsAny(text string, patterns []string) bool {
	lowerText := strings.ToLower(text)
	for _, pattern := range patterns {
		if strings.Contains(lowerText, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}
