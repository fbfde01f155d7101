// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-15

package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"
)

// Client wraps the GitHub API client.
type Client struct {
	client *github.Client
}

// GetFileContent fetches a file from a repository at the given ref.
func (c *Client) GetFileContent(ctx context.Context, org, repo, path, ref string) ([]byte, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}
	file, _, _, err := c.client.Repositories.GetContents(ctx, org, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from %s/%s@%s: %w", path, org, repo, ref, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s in %s/%s is not a file", path, org, repo)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return []byte(content), nil
}

// Repo returns a tracker client bound to the repository "owner/name".
func (c *Client) Repo(fullName string) (*Repo, error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid repository format: expected 'owner/repo', got '%s'", fullName)
	}
	if parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repository: owner and repo cannot be empty")
	}

	return &Repo{client: c.client, owner: parts[0], name: parts[1]}, nil
}
