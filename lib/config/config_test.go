// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Widget.TouchedAlpha != 0.5 {
		t.Errorf("expected touched_alpha=0.5, got %v", cfg.Widget.TouchedAlpha)
	}
	if !slices.Equal(cfg.Screen.GitObjectKinds, []GitObjectKind{Branch, Tag, Commit}) {
		t.Errorf("expected kinds [branch tag commit], got %v", cfg.Screen.GitObjectKinds)
	}

	// Default must not alias the package-level list.
	cfg.Screen.GitObjectKinds[0] = "mutated"
	if KnownGitObjectKinds[0] != Branch {
		t.Error("Default aliases KnownGitObjectKinds")
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeConfig(t, "demo.yaml", `
screen:
  app_slug: ios-client
  git_object:
    kind: tag
    value: v1.2.0
  git_object_kinds: [tag, branch]
  workflow_ids: [beta, release]
  workflow_id: release
  environments:
    - key: PLATFORM
      value: tvOS
      enabled: true
widget:
  touched_alpha: 0.3
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	if cfg.Screen.AppSlug != "ios-client" {
		t.Errorf("expected app_slug=ios-client, got %s", cfg.Screen.AppSlug)
	}
	if cfg.Screen.GitObject != (GitObject{Kind: Tag, Value: "v1.2.0"}) {
		t.Errorf("unexpected git_object %+v", cfg.Screen.GitObject)
	}
	if !slices.Equal(cfg.Screen.GitObjectKinds, []GitObjectKind{Tag, Branch}) {
		t.Errorf("unexpected kinds %v", cfg.Screen.GitObjectKinds)
	}
	if len(cfg.Screen.Environments) != 1 || cfg.Screen.Environments[0].Value != "tvOS" {
		t.Errorf("unexpected environments %+v", cfg.Screen.Environments)
	}
	if cfg.Widget.TouchedAlpha != 0.3 {
		t.Errorf("expected touched_alpha=0.3, got %v", cfg.Widget.TouchedAlpha)
	}
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "demo.yaml", "screen:\n  app_slug: other\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Screen.AppSlug != "other" {
		t.Errorf("expected app_slug=other, got %s", cfg.Screen.AppSlug)
	}
	if cfg.Widget.TouchedAlpha != 0.5 || len(cfg.Screen.WorkflowIDs) != 3 {
		t.Errorf("defaults lost: alpha=%v workflows=%v", cfg.Widget.TouchedAlpha, cfg.Screen.WorkflowIDs)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "demo.jsonc", `{
  // The picker offers commits only.
  "screen": {
    "app_slug": "android",
    "git_object": {"kind": "commit", "value": "3f2a9c1"},
    "git_object_kinds": ["commit"], /* trailing comma below */
  },
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if cfg.Screen.AppSlug != "android" || cfg.Screen.GitObject.Kind != Commit {
		t.Errorf("unexpected screen %+v", cfg.Screen)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: expected fs.ErrNotExist, got %v", err)
	}

	badYAML := writeConfig(t, "bad.yaml", "screen: [unclosed")
	if _, err := LoadFile(badYAML); err == nil || !strings.Contains(err.Error(), "parsing YAML") {
		t.Errorf("bad YAML: got %v", err)
	}

	badJSON := writeConfig(t, "bad.jsonc", `{"screen": {"app_slug": 7}}`)
	if _, err := LoadFile(badJSON); err == nil || !strings.Contains(err.Error(), "parsing JSONC") {
		t.Errorf("bad JSONC: got %v", err)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("POPOVER_TEST_PLATFORM", "tvOS")

	vars := map[string]string{"APP_SLUG": "ios-client"}
	tests := []struct {
		input    string
		expected string
	}{
		{"${POPOVER_TEST_PLATFORM}", "tvOS"},
		{"${APP_SLUG}-nightly", "ios-client-nightly"},
		{"${POPOVER_TEST_UNSET:-fallback}", "fallback"},
		{"${POPOVER_TEST_UNSET}", ""},
		{"plain", "plain"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.expected {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.expected)
		}
	}
}

func TestLoadFile_ExpandsEnvironmentValues(t *testing.T) {
	t.Setenv("POPOVER_TEST_BRANCH", "feature/strip")
	path := writeConfig(t, "demo.yaml", `
screen:
  git_object: {kind: branch, value: "${POPOVER_TEST_BRANCH}"}
  environments:
    - {key: SLUG, value: "${APP_SLUG}", enabled: true}
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Screen.GitObject.Value != "feature/strip" {
		t.Errorf("git object value = %q", cfg.Screen.GitObject.Value)
	}
	if cfg.Screen.Environments[0].Value != "demo-app" {
		t.Errorf("environment value = %q", cfg.Screen.Environments[0].Value)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty app slug", func(c *Config) { c.Screen.AppSlug = " " }, "screen.app_slug"},
		{"no kinds", func(c *Config) { c.Screen.GitObjectKinds = nil }, "screen.git_object_kinds"},
		{"unknown kind", func(c *Config) { c.Screen.GitObjectKinds = append(c.Screen.GitObjectKinds, "pull") }, "screen.git_object_kinds[3]"},
		{"duplicate kind", func(c *Config) { c.Screen.GitObjectKinds = append(c.Screen.GitObjectKinds, Tag) }, "duplicate kind"},
		{"kind not offered", func(c *Config) { c.Screen.GitObjectKinds = []GitObjectKind{Tag} }, "screen.git_object.kind"},
		{"unknown workflow", func(c *Config) { c.Screen.WorkflowID = "missing" }, "screen.workflow_id"},
		{"empty env key", func(c *Config) { c.Screen.Environments[0].Key = "" }, "screen.environments[0].key"},
		{"duplicate env key", func(c *Config) { c.Screen.Environments[1].Key = "PLATFORM" }, "duplicate key"},
		{"alpha too high", func(c *Config) { c.Widget.TouchedAlpha = 1.5 }, "widget.touched_alpha"},
		{"alpha negative", func(c *Config) { c.Widget.TouchedAlpha = -0.1 }, "widget.touched_alpha"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), test.field) {
				t.Errorf("error %q does not name %s", err, test.field)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Screen.AppSlug = ""
	cfg.Widget.TouchedAlpha = 2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"screen.app_slug", "widget.touched_alpha"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q missing %s", err, field)
		}
	}
}
