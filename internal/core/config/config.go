// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-15

// Package config handles loading, merging and validating the sync policy.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported tracker platforms.
const (
	PlatformGitHub = "github"
	PlatformGitLab = "gitlab"
)

// DefaultConfigPath is the path used for 'extends' references without one.
const DefaultConfigPath = ".github/simili-sync.yaml"

// Config is the root configuration structure.
type Config struct {
	// Extends allows inheriting from a remote config (e.g., "org/repo@branch").
	Extends string `yaml:"extends,omitempty"`

	// Source is the repository issues are read from.
	Source RepositoryConfig `yaml:"source"`

	// Target is the repository that is brought in line with Source.
	Target RepositoryConfig `yaml:"target"`

	// Sync controls the reconciliation pass.
	Sync SyncConfig `yaml:"sync"`

	// Filters select which source issues take part in the sync.
	Filters []FilterRule `yaml:"filters,omitempty"`

	// Logging configures log output.
	Logging LoggingConfig `yaml:"logging"`
}

// RepositoryConfig identifies a repository on a tracker platform.
type RepositoryConfig struct {
	Platform string `yaml:"platform"`
	Repo     string `yaml:"repo"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// SyncConfig holds reconciliation settings.
type SyncConfig struct {
	// Comments enables opening/closing comment sync. Defaults to true.
	Comments *bool `yaml:"comments,omitempty"`
	DryRun   bool  `yaml:"dry_run"`
}

// FilterRule matches source issues. All conditions set on a rule must hold.
type FilterRule struct {
	Name          string   `yaml:"name"`
	Labels        []string `yaml:"labels,omitempty"`
	LabelsAny     []string `yaml:"labels_any,omitempty"`
	TitleContains []string `yaml:"title_contains,omitempty"`
	BodyContains  []string `yaml:"body_contains,omitempty"`
	// Exclude drops matching issues instead of selecting them.
	Exclude  bool  `yaml:"exclude,omitempty"`
	Priority int   `yaml:"priority,omitempty"`
	Enabled  *bool `yaml:"enabled,omitempty"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CommentsEnabled reports whether comment sync is on.
func (s SyncConfig) CommentsEnabled() bool {
	return s.Comments == nil || *s.Comments
}

// loadRaw reads and normalizes a config file without applying defaults, so
// that unset fields do not override an inherited parent.
func loadRaw(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	cfg.normalize()
	return cfg, nil
}

// parseRaw expands environment variables and decodes YAML without applying
// defaults.
func parseRaw(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadWithInheritance loads a config, expands environment variables and
// resolves the 'extends' chain. The fetcher function is used to retrieve
// remote configs; it may be nil when nothing is extended.
func LoadWithInheritance(path string, fetcher func(ref string) ([]byte, error)) (*Config, error) {
	cfg, err := loadRaw(path)
	if err != nil {
		return nil, err
	}

	if cfg.Extends == "" {
		cfg.applyDefaults()
		return cfg, nil
	}
	if fetcher == nil {
		return nil, fmt.Errorf("cannot resolve extends '%s': no remote config fetcher", cfg.Extends)
	}

	// Fetch and parse the parent config
	parentData, err := fetcher(cfg.Extends)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parent config '%s': %w", cfg.Extends, err)
	}

	parentCfg, err := parseRaw(parentData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse parent config: %w", err)
	}
	parentCfg.normalize()

	// Merge: child overrides parent
	merged := mergeConfigs(parentCfg, cfg)
	merged.applyDefaults()

	return merged, nil
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	// Search in common locations
	candidates := []string{
		".github/simili-sync.yaml",
		".github/simili-sync.yml",
		".simili-sync.yaml",
		".simili-sync.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Source.Platform == "" {
		c.Source.Platform = PlatformGitHub
	}
	if c.Target.Platform == "" {
		c.Target.Platform = PlatformGitHub
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// normalize trims user input into canonical form.
func (c *Config) normalize() {
	for _, r := range []*RepositoryConfig{&c.Source, &c.Target} {
		r.Platform = strings.ToLower(strings.TrimSpace(r.Platform))
		r.Repo = strings.Trim(strings.TrimSpace(r.Repo), "/")
		r.BaseURL = strings.TrimSuffix(strings.TrimSpace(r.BaseURL), "/")
		r.Token = strings.TrimSpace(r.Token)
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}

// Validate checks that the config describes a runnable sync.
func (c *Config) Validate() error {
	var errs []error

	errs = append(errs, c.Source.validate("source"), c.Target.validate("target"))

	if c.Source.Platform == c.Target.Platform &&
		c.Source.Repo == c.Target.Repo &&
		c.Source.BaseURL == c.Target.BaseURL && c.Source.Repo != "" {
		errs = append(errs, errors.New("source and target must be different repositories"))
	}

	for i, f := range c.Filters {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("filters[%d]: name is required", i))
		}
		if len(f.Labels)+len(f.LabelsAny)+len(f.TitleContains)+len(f.BodyContains) == 0 {
			errs = append(errs, fmt.Errorf("filters[%d]: at least one condition is required", i))
		}
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

func (r RepositoryConfig) validate(field string) error {
	var errs []error
	switch r.Platform {
	case PlatformGitHub, PlatformGitLab:
	default:
		errs = append(errs, fmt.Errorf("%s.platform: unsupported platform %q", field, r.Platform))
	}
	if r.Repo == "" {
		errs = append(errs, fmt.Errorf("%s.repo is required", field))
	} else if !strings.Contains(r.Repo, "/") {
		errs = append(errs, fmt.Errorf("%s.repo: expected 'owner/name', got %q", field, r.Repo))
	}
	return errors.Join(errs...)
}

// mergeConfigs merges a child config onto a parent config.
// Non-zero values in child override parent.
func mergeConfigs(parent, child *Config) *Config {
	result := *parent
	result.Extends = child.Extends

	result.Source = mergeRepository(parent.Source, child.Source)
	result.Target = mergeRepository(parent.Target, child.Target)

	if child.Sync.Comments != nil {
		result.Sync.Comments = child.Sync.Comments
	}
	// DryRun: a child can only turn dry-run on, never silently off
	result.Sync.DryRun = parent.Sync.DryRun || child.Sync.DryRun

	// Filters: child completely overrides if non-empty
	if len(child.Filters) > 0 {
		result.Filters = child.Filters
	}

	if child.Logging.Level != "" {
		result.Logging.Level = child.Logging.Level
	}

	return &result
}

func mergeRepository(parent, child RepositoryConfig) RepositoryConfig {
	result := parent
	if child.Platform != "" {
		result.Platform = child.Platform
	}
	if child.Repo != "" {
		result.Repo = child.Repo
	}
	if child.BaseURL != "" {
		result.BaseURL = child.BaseURL
	}
	if child.Token != "" {
		result.Token = child.Token
	}
	return result
}

// ParseExtendsRef parses "org/repo@branch" into components.
func ParseExtendsRef(ref string) (org, repo, branch, path string, err error) {
	// Format: org/repo@branch or org/repo@branch:path
	parts := strings.SplitN(ref, "@", 2)
	if len(parts) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo@branch)", ref)
	}

	orgRepo := strings.SplitN(parts[0], "/", 2)
	if len(orgRepo) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo)", ref)
	}

	org = orgRepo[0]
	repo = orgRepo[1]

	// Check for path
	branchPath := strings.SplitN(parts[1], ":", 2)
	branch = branchPath[0]
	if len(branchPath) == 2 {
		path = branchPath[1]
	} else {
		path = DefaultConfigPath
	}

	return org, repo, branch, path, nil
}
