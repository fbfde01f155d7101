// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/similigh/simili-sync/internal/core/config"
	"github.com/similigh/simili-sync/internal/core/logging"
	"github.com/similigh/simili-sync/internal/integrations/github"
	"github.com/similigh/simili-sync/internal/integrations/gitlab"
	"github.com/similigh/simili-sync/internal/policy"
	"github.com/similigh/simili-sync/internal/tracker"
)

// loadConfig finds, loads, resolves and validates the sync config, filling
// tokens from the environment.
func loadConfig(ctx context.Context) (*config.Config, error) {
	env, err := config.LoadEnv(ctx, nil)
	if err != nil {
		return nil, err
	}

	cfgPath := config.FindConfigPath(cfgFile)
	if cfgPath == "" {
		if cfgFile != "" {
			return nil, fmt.Errorf("config file %s not found", cfgFile)
		}
		return nil, fmt.Errorf("no config file found (looked for .github/simili-sync.yaml and .simili-sync.yaml)")
	}

	fetcher := func(ref string) ([]byte, error) {
		// Parse ref: org/repo@branch:path
		org, repo, branch, path, err := config.ParseExtendsRef(ref)
		if err != nil {
			return nil, err
		}
		if env.GitHubToken == "" {
			return nil, fmt.Errorf("GITHUB_TOKEN required to fetch remote config %s", ref)
		}

		ghClient := github.NewClient(ctx, env.GitHubToken)
		return ghClient.GetFileContent(ctx, org, repo, path, branch)
	}

	cfg, err := config.LoadWithInheritance(cfgPath, fetcher)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", cfgPath, err)
	}
	cfg.ApplyEnv(env)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgPath, err)
	}
	return cfg, nil
}

// newLogger returns the run logger, tagged with a fresh run id.
func newLogger(cfg *config.Config, w io.Writer) logging.Logger {
	level := logging.ParseLevel(cfg.Logging.Level)
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(w, level).With("run", uuid.NewString())
}

// newTrackerClient builds the tracker client for one side of the sync.
func newTrackerClient(ctx context.Context, repo config.RepositoryConfig) (tracker.Client, error) {
	switch repo.Platform {
	case config.PlatformGitHub:
		client, err := github.NewEnterpriseClient(ctx, repo.Token, repo.BaseURL)
		if err != nil {
			return nil, err
		}
		r, err := client.Repo(repo.Repo)
		if err != nil {
			return nil, err
		}
		return r, nil

	case config.PlatformGitLab:
		client, err := gitlab.NewClient(repo.Token, repo.BaseURL)
		if err != nil {
			return nil, err
		}
		project, err := gitlab.NewProject(client, repo.Repo)
		if err != nil {
			return nil, err
		}
		return project, nil

	default:
		return nil, fmt.Errorf("unsupported platform %q", repo.Platform)
	}
}

// newClients builds source and target clients. The source is narrowed to the
// issues selected by the configured filters.
func newClients(ctx context.Context, cfg *config.Config) (source, target tracker.Client, err error) {
	source, err = newTrackerClient(ctx, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("source: %w", err)
	}
	target, err = newTrackerClient(ctx, cfg.Target)
	if err != nil {
		return nil, nil, fmt.Errorf("target: %w", err)
	}

	return policy.Filter(source, policy.NewRuleMatcher(cfg.Filters)), target, nil
}
