// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewStreamHandler(t *testing.T) {
	var text, structured bytes.Buffer
	slog.New(NewStreamHandler(&text, slog.LevelInfo, true)).Info("opened", "item", 1)
	slog.New(NewStreamHandler(&structured, slog.LevelInfo, false)).Info("opened", "item", 1)

	if !strings.Contains(text.String(), "msg=opened item=1") {
		t.Errorf("text output = %q", text.String())
	}
	var record map[string]any
	if err := json.Unmarshal(structured.Bytes(), &record); err != nil {
		t.Fatalf("JSON output not parseable: %v (%q)", err, structured.String())
	}
	if record["msg"] != "opened" {
		t.Errorf("msg = %v", record["msg"])
	}
}

func TestFanoutHandler(t *testing.T) {
	var warnOnly, everything bytes.Buffer
	logger := slog.New(FanoutHandler{
		slog.NewTextHandler(&warnOnly, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&everything, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}).With("widget", "picker")

	logger.Debug("press")
	logger.Warn("late action")

	if strings.Contains(warnOnly.String(), "press") {
		t.Error("debug record reached the warn handler")
	}
	if !strings.Contains(warnOnly.String(), "late action") || !strings.Contains(warnOnly.String(), "widget=picker") {
		t.Errorf("warn handler output = %q", warnOnly.String())
	}
	if strings.Count(everything.String(), "widget=picker") != 2 {
		t.Errorf("debug handler output = %q", everything.String())
	}

	if (FanoutHandler{}).Enabled(t.Context(), slog.LevelError) {
		t.Error("empty fanout reports enabled")
	}
}

func TestOpenFileLogHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.log")
	handler, closeFile, err := OpenFileLogHandler(path)
	if err != nil {
		t.Fatalf("OpenFileLogHandler: %v", err)
	}
	slog.New(handler).Debug("long press", "x", 3)
	closeFile()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"long press"`) {
		t.Errorf("log file = %q", data)
	}

	if _, _, err := OpenFileLogHandler(filepath.Join(t.TempDir(), "missing", "demo.log")); err == nil {
		t.Error("expected error for a missing directory")
	}
}
