// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// LogRecordMsg delivers a slog record to the bubbletea model for
// display in the status bar.
type LogRecordMsg struct {
	// Summary is the one-line message: "message (key=value, ...)".
	Summary string

	// Level is the slog level for styling (warn vs error).
	Level slog.Level
}

// LogRecordFadeMsg is sent after LogRecordFadeDelay to clear the log
// message from the status bar and restore the help line. Sequence
// identifies the message it clears; a newer message stays up.
type LogRecordFadeMsg struct {
	Sequence int
}

// LogRecordFadeDelay is how long log messages stay visible in the
// status bar.
const LogRecordFadeDelay = 5 * time.Second

// FadeLogRecord returns a command that delivers LogRecordFadeMsg for
// sequence after LogRecordFadeDelay.
func FadeLogRecord(sequence int) tea.Cmd {
	return tea.Tick(LogRecordFadeDelay, func(time.Time) tea.Msg {
		return LogRecordFadeMsg{Sequence: sequence}
	})
}

// LogHandler is a slog.Handler that routes log records into a
// bubbletea program as LogRecordMsg values. While the alt screen is
// up, writing to stderr would corrupt the display; this handler is
// where background warnings go instead.
//
// Records below the configured level, and records arriving before
// SetProgram, are dropped. Handlers derived with WithAttrs/WithGroup
// share the program pointer, so one SetProgram call reaches them all.
type LogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []string
	prefix  string
}

// NewLogHandler creates a handler that delivers records at or above
// level.
func NewLogHandler(level slog.Level) *LogHandler {
	return &LogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives log messages.
func (handler *LogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record and sends it to the program.
func (handler *LogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}
	program.Send(LogRecordMsg{
		Summary: handler.Summarize(record),
		Level:   record.Level,
	})
	return nil
}

// Summarize renders record as the status bar shows it. Handler-level
// attributes come first; grouped keys are dotted.
func (handler *LogHandler) Summarize(record slog.Record) string {
	parts := append([]string(nil), handler.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, formatAttr(handler.prefix, attr))
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// WithAttrs returns a handler that adds attrs to every record.
func (handler *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = append([]string(nil), handler.attrs...)
	for _, attr := range attrs {
		derived.attrs = append(derived.attrs, formatAttr(handler.prefix, attr))
	}
	return &derived
}

// WithGroup returns a handler that qualifies later keys with name.
func (handler *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.attrs = append([]string(nil), handler.attrs...)
	derived.prefix = handler.prefix + name + "."
	return &derived
}

func formatAttr(prefix string, attr slog.Attr) string {
	return fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value.Resolve())
}
