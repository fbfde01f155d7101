// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package reconcile

import (
	"fmt"

	"github.com/similigh/simili-sync/internal/tracker"
)

// BuildBacklink returns the markdown line appended to issues created on the
// target, pointing back at the source issue.
func BuildBacklink(repo tracker.Repository, issue tracker.Issue) string {
	return fmt.Sprintf("_Synced from [%s](%s/issues/%d)_", issue.Title, repo.URL, issue.Number)
}

// withBacklink returns a copy of issue whose body ends with the backlink.
func withBacklink(repo tracker.Repository, issue tracker.Issue) tracker.Issue {
	issue.Body = issue.Body + "\n\n" + BuildBacklink(repo, issue)
	return issue
}
