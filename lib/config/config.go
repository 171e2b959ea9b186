// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/popover/lib/popover"
)

// GitObjectKind names a kind of git reference a build can start from.
// Each kind becomes one action on the picker's strip.
type GitObjectKind string

const (
	Branch GitObjectKind = "branch"
	Tag    GitObjectKind = "tag"
	Commit GitObjectKind = "commit"
)

// KnownGitObjectKinds lists every accepted kind in display order.
var KnownGitObjectKinds = []GitObjectKind{Branch, Tag, Commit}

// Config is the demo configuration.
type Config struct {
	Screen ScreenConfig `yaml:"screen" json:"screen"`
	Widget WidgetConfig `yaml:"widget" json:"widget"`
}

// ScreenConfig describes the trigger-build form.
type ScreenConfig struct {
	// AppSlug identifies the app whose build is triggered. Required.
	AppSlug string `yaml:"app_slug" json:"app_slug"`

	// GitObject is the reference preselected in the picker.
	GitObject GitObject `yaml:"git_object" json:"git_object"`

	// GitObjectKinds are the picker's actions, in strip order.
	// Default: branch, tag, commit.
	GitObjectKinds []GitObjectKind `yaml:"git_object_kinds" json:"git_object_kinds"`

	// WorkflowIDs are the selectable workflows.
	WorkflowIDs []string `yaml:"workflow_ids" json:"workflow_ids"`

	// WorkflowID is the preselected workflow. Must be one of
	// WorkflowIDs when set.
	WorkflowID string `yaml:"workflow_id" json:"workflow_id"`

	// Environments are the build environment variables.
	Environments []Environment `yaml:"environments" json:"environments"`
}

// GitObject is a kind and a value, e.g. branch "main".
type GitObject struct {
	Kind  GitObjectKind `yaml:"kind" json:"kind"`
	Value string        `yaml:"value" json:"value"`
}

// Environment is one build environment variable. Disabled variables
// are shown but not sent with the build.
type Environment struct {
	Key     string `yaml:"key" json:"key"`
	Value   string `yaml:"value" json:"value"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// WidgetConfig tunes the git object picker.
type WidgetConfig struct {
	// TouchedAlpha is the opacity of the item under the pointer.
	// Default: 0.5.
	TouchedAlpha float64 `yaml:"touched_alpha" json:"touched_alpha"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Screen: ScreenConfig{
			AppSlug:        "demo-app",
			GitObject:      GitObject{Kind: Branch, Value: "main"},
			GitObjectKinds: slices.Clone(KnownGitObjectKinds),
			WorkflowIDs:    []string{"primary", "deploy", "nightly"},
			WorkflowID:     "primary",
			Environments: []Environment{
				{Key: "PLATFORM", Value: "linux", Enabled: true},
				{Key: "VERBOSE", Value: "1", Enabled: false},
			},
		},
		Widget: WidgetConfig{
			TouchedAlpha: popover.DefaultTouchedAlpha,
		},
	}
}

// LoadFile loads configuration from path on top of Default. Fields the
// file omits keep their default values; lists the file sets replace
// the default lists. The result is not validated.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := cfg.parse(path, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) parse(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonc", ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parsing JSONC: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing YAML: %w", err)
		}
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in environment
// values and the git object value.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"APP_SLUG": c.Screen.AppSlug,
	}
	for index := range c.Screen.Environments {
		c.Screen.Environments[index].Value = expandVars(c.Screen.Environments[index].Value, vars)
	}
	c.Screen.GitObject.Value = expandVars(c.Screen.GitObject.Value, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, consulting
// vars before the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration. Each problem names its field;
// all problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Screen.AppSlug) == "" {
		errs = append(errs, fmt.Errorf("screen.app_slug is required"))
	}

	if len(c.Screen.GitObjectKinds) == 0 {
		errs = append(errs, fmt.Errorf("screen.git_object_kinds must list at least one kind"))
	}
	seenKinds := make(map[GitObjectKind]bool)
	for index, kind := range c.Screen.GitObjectKinds {
		if !slices.Contains(KnownGitObjectKinds, kind) {
			errs = append(errs, fmt.Errorf("screen.git_object_kinds[%d]: unknown kind %q (want one of %v)", index, kind, KnownGitObjectKinds))
		}
		if seenKinds[kind] {
			errs = append(errs, fmt.Errorf("screen.git_object_kinds[%d]: duplicate kind %q", index, kind))
		}
		seenKinds[kind] = true
	}
	if !seenKinds[c.Screen.GitObject.Kind] {
		errs = append(errs, fmt.Errorf("screen.git_object.kind %q is not in screen.git_object_kinds", c.Screen.GitObject.Kind))
	}

	if c.Screen.WorkflowID != "" && !slices.Contains(c.Screen.WorkflowIDs, c.Screen.WorkflowID) {
		errs = append(errs, fmt.Errorf("screen.workflow_id %q is not in screen.workflow_ids", c.Screen.WorkflowID))
	}

	seenKeys := make(map[string]bool)
	for index, environment := range c.Screen.Environments {
		if environment.Key == "" {
			errs = append(errs, fmt.Errorf("screen.environments[%d].key is required", index))
			continue
		}
		if seenKeys[environment.Key] {
			errs = append(errs, fmt.Errorf("screen.environments[%d]: duplicate key %q", index, environment.Key))
		}
		seenKeys[environment.Key] = true
	}

	if c.Widget.TouchedAlpha < 0 || c.Widget.TouchedAlpha > 1 {
		errs = append(errs, fmt.Errorf("widget.touched_alpha must be between 0 and 1, got %v", c.Widget.TouchedAlpha))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
