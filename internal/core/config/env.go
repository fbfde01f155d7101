// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Env holds the secrets that may come from the environment instead of the
// config file.
type Env struct {
	GitHubToken string `env:"GITHUB_TOKEN"`
	GitLabToken string `env:"GITLAB_TOKEN"`
	SourceToken string `env:"SIMILI_SYNC_SOURCE_TOKEN"`
	TargetToken string `env:"SIMILI_SYNC_TARGET_TOKEN"`
}

// LoadEnv reads Env using lookuper, or the process environment when nil.
func LoadEnv(ctx context.Context, lookuper envconfig.Lookuper) (*Env, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var env Env
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &env, nil
}

// ApplyEnv fills tokens missing from the config. A side-specific variable
// wins over the platform-wide one.
func (c *Config) ApplyEnv(env *Env) {
	if c.Source.Token == "" {
		c.Source.Token = env.tokenFor(c.Source.Platform, env.SourceToken)
	}
	if c.Target.Token == "" {
		c.Target.Token = env.tokenFor(c.Target.Platform, env.TargetToken)
	}
}

func (e *Env) tokenFor(platform, specific string) string {
	if specific != "" {
		return specific
	}
	switch platform {
	case PlatformGitLab:
		return e.GitLabToken
	default:
		return e.GitHubToken
	}
}
