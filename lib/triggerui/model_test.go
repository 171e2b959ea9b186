// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package triggerui

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/popover/lib/clock"
	"github.com/bureau-foundation/popover/lib/config"
	"github.com/bureau-foundation/popover/lib/gesturetrace"
	"github.com/bureau-foundation/popover/lib/popover"
	"github.com/bureau-foundation/popover/lib/tui"
)

// With the default 80x24 window the picker occupies (2,3)-(38,6) and
// its strip opens at (6,14). The strip's items, one row tall at y=18,
// are "branch" x 14-20, "tag" x 30-33 and "commit" x 43-49.
//
// Body rows start at y=7: workflow heading, primary (8), deploy (9),
// nightly (10), blank, environment heading, PLATFORM (13), VERBOSE (14),
// blank, trigger (16).

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (*Model, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(epoch)
	return NewModel(config.Default(), Options{Clock: fake}), fake
}

func press(model *Model, x, y int) {
	model.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func drag(model *Model, x, y int) {
	model.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

func release(model *Model, x, y int) {
	model.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

func click(model *Model, x, y int) {
	press(model, x, y)
	release(model, x, y)
}

func typeKeys(model *Model, text string) {
	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func pressKey(model *Model, keyType tea.KeyType) tea.Cmd {
	_, command := model.Update(tea.KeyMsg{Type: keyType})
	return command
}

func TestNewModel(t *testing.T) {
	model, _ := newTestModel(t)

	if got := len(model.Host().Actions()); got != 3 {
		t.Fatalf("picker actions = %d, want 3", got)
	}
	if got := model.Host().TouchedAlpha(); got != 0.5 {
		t.Errorf("touched alpha = %v, want 0.5", got)
	}
	if model.Host().Node().Parent() == nil {
		t.Error("picker node has no parent")
	}
	if got := model.currentRow(); got.kind != rowWorkflow || got.index != 0 {
		t.Errorf("cursor row = %+v, want first workflow", got)
	}
	if origin := model.Host().Node().Origin(); origin.X != 2 || origin.Y != 3 {
		t.Errorf("picker origin = %v, want (2,3)", origin)
	}
}

func TestTapOpensPickerAndSelectsKind(t *testing.T) {
	model, _ := newTestModel(t)

	click(model, 10, 4)
	if !model.Host().IsOpen() {
		t.Fatal("tap on the picker should open the strip")
	}

	click(model, 31, 18)
	if got := model.Screen().GitObject.Kind; got != config.Tag {
		t.Errorf("git object kind = %q, want tag", got)
	}
	if model.Host().IsOpen() {
		t.Error("selecting a kind should close the strip")
	}
}

func TestLongPressDragSelectsKind(t *testing.T) {
	model, fake := newTestModel(t)

	press(model, 10, 4)
	fake.Advance(popover.LongPressThreshold)
	if got := model.Host().State(); got != popover.OpenDragging {
		t.Fatalf("state after long press = %v, want open-dragging", got)
	}

	drag(model, 45, 18)
	fake.Advance(50 * time.Millisecond)
	release(model, 45, 18)

	if got := model.Screen().GitObject.Kind; got != config.Commit {
		t.Errorf("git object kind = %q, want commit", got)
	}
	if got := model.FocusChanges(); got != 1 {
		t.Errorf("focus changes = %d, want 1", got)
	}
}

func TestOpenStripCoversBodyRows(t *testing.T) {
	model, _ := newTestModel(t)
	click(model, 10, 4)

	// (10,14) is on the pill background, above the VERBOSE row. The
	// picker captures it and the tap closes the strip.
	click(model, 10, 14)

	if model.Host().IsOpen() {
		t.Error("tap on the pill background should close the strip")
	}
	if model.Screen().Environments[1].Enabled {
		t.Error("press on the strip reached the environment row underneath")
	}
}

func TestBodyClicks(t *testing.T) {
	model, _ := newTestModel(t)

	click(model, 5, 9)
	if got := model.Screen().WorkflowID; got != "deploy" {
		t.Errorf("workflow = %q, want deploy", got)
	}

	click(model, 5, 14)
	if !model.Screen().Environments[1].Enabled {
		t.Error("clicking VERBOSE should enable it")
	}

	click(model, 5, 16)
	requests := model.Requests()
	if len(requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(requests))
	}
	want := "demo-app branch:main workflow=deploy PLATFORM=linux VERBOSE=1"
	if got := requests[0].String(); got != want {
		t.Errorf("request = %q, want %q", got, want)
	}
}

func TestBodyPressDraggedOffRowDoesNothing(t *testing.T) {
	model, _ := newTestModel(t)

	press(model, 5, 9)
	release(model, 5, 10)

	if got := model.Screen().WorkflowID; got != "primary" {
		t.Errorf("workflow = %q, want primary unchanged", got)
	}
	// The cursor follows the press.
	if got := model.currentRow(); got.kind != rowWorkflow || got.index != 1 {
		t.Errorf("cursor row = %+v, want deploy", got)
	}
}

func TestKeyboardNavigation(t *testing.T) {
	model, _ := newTestModel(t)

	typeKeys(model, "k")
	if got := model.currentRow(); got.kind != rowWorkflow || got.index != 0 {
		t.Errorf("cursor moved above the first row: %+v", got)
	}

	// Three workflows, then the environment rows (headings skipped).
	for range 3 {
		typeKeys(model, "j")
	}
	if got := model.currentRow(); got.kind != rowEnvironment || got.index != 0 {
		t.Fatalf("cursor row = %+v, want first environment", got)
	}
	pressKey(model, tea.KeyEnter)
	if model.Screen().Environments[0].Enabled {
		t.Error("enter should toggle PLATFORM off")
	}

	for range 5 {
		typeKeys(model, "j")
	}
	if got := model.currentRow(); got.kind != rowTrigger {
		t.Fatalf("cursor row = %+v, want trigger", got)
	}
	pressKey(model, tea.KeySpace)
	if got := len(model.Requests()); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestAddAndRemoveEnvironment(t *testing.T) {
	model, _ := newTestModel(t)
	for range 3 {
		typeKeys(model, "j")
	}

	typeKeys(model, "a")
	if model.entry != entryEnvironment {
		t.Fatalf("entry = %v, want environment entry", model.entry)
	}
	typeKeys(model, "FOO:bar")
	pressKey(model, tea.KeyEnter)

	environments := model.Screen().Environments
	if len(environments) != 3 {
		t.Fatalf("environments = %d, want 3", len(environments))
	}
	if added := environments[2]; added.Key != "FOO" || added.Value != "bar" || !added.Enabled {
		t.Errorf("added = %+v, want enabled FOO=bar", added)
	}

	typeKeys(model, "d")
	if got := model.Screen().Environments; len(got) != 2 || got[0].Key != "VERBOSE" {
		t.Errorf("after delete environments = %+v, want only VERBOSE and FOO", got)
	}
}

func TestInvalidEnvironmentKeepsEntryOpen(t *testing.T) {
	model, _ := newTestModel(t)
	for range 3 {
		typeKeys(model, "j")
	}

	typeKeys(model, "a")
	typeKeys(model, "a:b:c")
	pressKey(model, tea.KeyEnter)

	if model.entry != entryEnvironment {
		t.Error("a rejected entry should stay open for correction")
	}
	if !strings.Contains(model.statusMessage, "want KEY:VALUE") {
		t.Errorf("status = %q, want the parse error", model.statusMessage)
	}
	if got := len(model.Screen().Environments); got != 2 {
		t.Errorf("environments = %d, want 2", got)
	}

	pressKey(model, tea.KeyEsc)
	if model.entry != entryNone {
		t.Error("esc should cancel the entry")
	}
}

func TestAddEnvironmentParsing(t *testing.T) {
	tests := []struct {
		entry     string
		wantKey   string
		wantValue string
		wantErr   string
	}{
		{entry: "FOO:bar", wantKey: "FOO", wantValue: "bar"},
		{entry: "A::B", wantKey: "A", wantValue: "B"},
		{entry: ":KEY:value:", wantKey: "KEY", wantValue: "value"},
		{entry: " SPACED : out ", wantKey: "SPACED", wantValue: "out"},
		{entry: "KEY:", wantErr: "want KEY:VALUE"},
		{entry: ":value", wantErr: "want KEY:VALUE"},
		{entry: "a:b:c", wantErr: "want KEY:VALUE"},
		{entry: "", wantErr: "want KEY:VALUE"},
		{entry: " :value", wantErr: "key is empty"},
		{entry: "VERBOSE:0", wantErr: "already exists"},
	}
	for _, test := range tests {
		t.Run(test.entry, func(t *testing.T) {
			model, _ := newTestModel(t)
			before := len(model.Screen().Environments)

			err := model.AddEnvironment(test.entry)
			environments := model.Screen().Environments
			if test.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), test.wantErr) {
					t.Fatalf("AddEnvironment(%q) error = %v, want %q", test.entry, err, test.wantErr)
				}
				if len(environments) != before {
					t.Errorf("environments = %d after a rejected entry, want %d", len(environments), before)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddEnvironment(%q): %v", test.entry, err)
			}
			added := environments[len(environments)-1]
			if added.Key != test.wantKey || added.Value != test.wantValue || !added.Enabled {
				t.Errorf("added = %+v, want enabled %s=%s", added, test.wantKey, test.wantValue)
			}
		})
	}
}

func TestEntryTypingIgnoresBindings(t *testing.T) {
	model, _ := newTestModel(t)

	typeKeys(model, "e")
	pressKey(model, tea.KeyBackspace)
	pressKey(model, tea.KeyBackspace)
	pressKey(model, tea.KeyBackspace)
	pressKey(model, tea.KeyBackspace)
	// "q" and "t" are bindings outside an entry.
	typeKeys(model, "qt")
	pressKey(model, tea.KeyEnter)

	if got := model.Screen().GitObject.Value; got != "qt" {
		t.Errorf("git object value = %q, want qt", got)
	}
	if got := len(model.Requests()); got != 0 {
		t.Errorf("requests = %d, want 0", got)
	}
}

func TestAddAndRemoveWorkflow(t *testing.T) {
	model, _ := newTestModel(t)

	typeKeys(model, "a")
	if model.entry != entryWorkflow {
		t.Fatalf("entry = %v, want workflow entry", model.entry)
	}
	typeKeys(model, "release")
	pressKey(model, tea.KeyEnter)
	if got := model.Screen().WorkflowIDs; len(got) != 4 || got[3] != "release" {
		t.Fatalf("workflows = %v, want release appended", got)
	}

	if err := model.AddWorkflow("release"); err == nil {
		t.Error("duplicate workflow should be rejected")
	}

	// The cursor is on "primary", the selected workflow.
	typeKeys(model, "d")
	if got := model.Screen().WorkflowID; got != "deploy" {
		t.Errorf("workflow after removing the selected one = %q, want deploy", got)
	}
}

func TestPickerKeyTogglesStrip(t *testing.T) {
	model, fake := newTestModel(t)

	typeKeys(model, "o")
	if !model.Host().IsOpen() {
		t.Fatal("o should open the strip")
	}
	if model.Host().PendingOpen() {
		t.Error("keyboard tap left the long-press timer running")
	}

	fake.Advance(popover.FadeDuration)
	view := ansi.Strip(model.View())
	for _, label := range []string{"branch", "tag", "commit"} {
		if !strings.Contains(view, label) {
			t.Errorf("open view missing %q", label)
		}
	}

	typeKeys(model, "o")
	fake.Advance(popover.FadeDuration)
	if strings.Contains(ansi.Strip(model.View()), "commit") {
		t.Error("closed view still shows the strip")
	}
}

func TestFramesScheduledWhileFading(t *testing.T) {
	model, fake := newTestModel(t)

	_, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	if command == nil {
		t.Fatal("opening the strip should schedule a frame")
	}
	if !model.framePending {
		t.Error("frame not marked pending")
	}

	_, command = model.Update(tui.FrameMsg{})
	if command == nil {
		t.Error("mid-fade frame should schedule another")
	}

	fake.Advance(popover.FadeDuration)
	_, command = model.Update(tui.FrameMsg{})
	if command != nil {
		t.Error("settled strip should not schedule frames")
	}
}

func TestViewLayout(t *testing.T) {
	model, _ := newTestModel(t)
	model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	lines := strings.Split(ansi.Strip(model.View()), "\n")
	if len(lines) != 30 {
		t.Fatalf("view has %d lines, want 30", len(lines))
	}
	if !strings.Contains(lines[0], "demo-app") {
		t.Errorf("header = %q, want app slug", lines[0])
	}
	if !strings.Contains(lines[4], "branch ▾ main") {
		t.Errorf("picker line = %q, want kind and value", lines[4])
	}
	if !strings.Contains(lines[8], "▸ (•) primary") {
		t.Errorf("first workflow line = %q", lines[8])
	}
	if !strings.Contains(lines[14], "[ ] VERBOSE=1") {
		t.Errorf("VERBOSE line = %q", lines[14])
	}
	if !strings.Contains(lines[29], "quit") {
		t.Errorf("status line = %q, want help", lines[29])
	}
}

func TestStatusFade(t *testing.T) {
	model, _ := newTestModel(t)

	_, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if command == nil {
		t.Fatal("trigger should schedule the status fade")
	}
	if !strings.HasPrefix(model.statusMessage, "Triggered demo-app") {
		t.Fatalf("status = %q", model.statusMessage)
	}
	first := model.statusSequence

	model.Update(tui.LogRecordMsg{Summary: "disk almost full", Level: slog.LevelWarn})
	model.Update(tui.LogRecordFadeMsg{Sequence: first})
	if model.statusMessage != "disk almost full" {
		t.Errorf("stale fade cleared a newer message: %q", model.statusMessage)
	}

	model.Update(tui.LogRecordFadeMsg{Sequence: model.statusSequence})
	if model.statusMessage != "" {
		t.Errorf("status = %q after its fade, want empty", model.statusMessage)
	}
}

func TestQuitClosesPicker(t *testing.T) {
	model, fake := newTestModel(t)
	press(model, 10, 4)

	_, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if command == nil {
		t.Fatal("q should return a command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Error("q should quit")
	}
	if fake.PendingCount() != 0 {
		t.Error("quit left the long-press timer pending")
	}
}

func TestRecordAndReplay(t *testing.T) {
	fake := clock.Fake(epoch)
	var trace bytes.Buffer
	recorder, err := gesturetrace.NewRecorder(&trace, gesturetrace.CompressionZstd, fake)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	recorded := NewModel(config.Default(), Options{Clock: fake, Recorder: recorder})

	// Long press, drag to "tag", release.
	press(recorded, 10, 4)
	fake.Advance(400 * time.Millisecond)
	drag(recorded, 31, 18)
	fake.Advance(200 * time.Millisecond)
	release(recorded, 31, 18)
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := recorded.Screen().GitObject.Kind; got != config.Tag {
		t.Fatalf("recorded session selected %q, want tag", got)
	}

	reader, err := gesturetrace.NewReader(&trace)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	replayClock := clock.Fake(epoch)
	replayed := NewModel(config.Default(), Options{Clock: replayClock})
	delivered, err := gesturetrace.Replay(records, replayClock, replayed)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if delivered != 3 {
		t.Errorf("delivered = %d, want 3", delivered)
	}
	if got := replayed.Screen().GitObject.Kind; got != config.Tag {
		t.Errorf("replayed session selected %q, want tag", got)
	}
}
