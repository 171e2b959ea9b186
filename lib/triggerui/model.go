// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package triggerui

import (
	"fmt"
	"image"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/popover/lib/clock"
	"github.com/bureau-foundation/popover/lib/config"
	"github.com/bureau-foundation/popover/lib/gesturetrace"
	"github.com/bureau-foundation/popover/lib/hittest"
	"github.com/bureau-foundation/popover/lib/pointer"
	"github.com/bureau-foundation/popover/lib/popover"
	"github.com/bureau-foundation/popover/lib/tui"
)

// Screen layout, in terminal cells.
const (
	// formTop is the row of the "Git object" heading. The title and a
	// blank line sit above it.
	formTop = 2

	// The picker is a rounded box around one line of text, directly
	// below the heading.
	pickerLeft   = 2
	pickerWidth  = 36
	pickerHeight = 3

	// bodyTop is the first row of the workflow and environment lists.
	bodyTop = formTop + 1 + pickerHeight + 1

	defaultWidth  = 80
	defaultHeight = 24
)

// BuildRequest is what the trigger button submits: the form's state at
// the moment it was pressed. Environments holds only the enabled
// variables.
type BuildRequest struct {
	AppSlug      string
	GitObject    config.GitObject
	WorkflowID   string
	Environments []config.Environment
}

// String renders the request on one line, e.g.
// "demo-app branch:main workflow=primary PLATFORM=linux".
func (request BuildRequest) String() string {
	parts := []string{
		request.AppSlug,
		string(request.GitObject.Kind) + ":" + request.GitObject.Value,
		"workflow=" + request.WorkflowID,
	}
	for _, environment := range request.Environments {
		parts = append(parts, environment.Key+"="+environment.Value)
	}
	return strings.Join(parts, " ")
}

// Options holds the Model's dependencies. Zero values select the
// production defaults.
type Options struct {
	// Clock drives the picker's long-press timer and fades.
	// Default: real time.
	Clock clock.Clock

	// Logger receives the picker's transition records and the
	// screen's own notices. Default: discard.
	Logger *slog.Logger

	// Post runs a function on the event loop. Pass tui.Loop.Post when
	// running under a tea.Program. Default: run inline.
	Post func(func())

	// Recorder, when set, receives every pointer event the screen
	// dispatches.
	Recorder *gesturetrace.Recorder

	// Theme colors the screen. Default: tui.DefaultTheme.
	Theme *tui.Theme
}

// entryTarget identifies what a line being typed will become.
type entryTarget int

const (
	entryNone entryTarget = iota
	entryWorkflow
	entryEnvironment
	entryGitObjectValue
)

func (target entryTarget) prompt() string {
	switch target {
	case entryWorkflow:
		return "New workflow ID"
	case entryEnvironment:
		return "New environment variable (KEY:VALUE)"
	case entryGitObjectValue:
		return "Git object value"
	default:
		return ""
	}
}

// Model is the bubbletea model for the trigger-build screen: a git
// object picker backed by a popover.Host, a workflow list, a list of
// environment variables, and a trigger button.
//
// Model has pointer receivers because the picker's action callbacks
// close over it. Pass the *Model to tea.NewProgram.
type Model struct {
	screen config.ScreenConfig
	keys   KeyMap
	help   help.Model
	theme  tui.Theme
	logger *slog.Logger

	recorder *gesturetrace.Recorder

	// Element tree. The form holds the picker and forwards hit tests
	// to it, so the open strip below the form's bounds stays
	// reachable. The body holds the lists and the trigger button.
	host       *popover.Host
	root       *hittest.Node
	form       *hittest.Node
	body       *hittest.Node
	dispatcher *hittest.Dispatcher

	width  int
	height int

	// rows are the body's lines, top to bottom. cursor indexes rows
	// and always rests on a selectable row.
	rows   []row
	cursor int

	entry       entryTarget
	entryBuffer []rune

	requests     []BuildRequest
	focusChanges int

	// framePending is true while a tui.FrameMsg is in flight, so at
	// most one frame ticker runs.
	framePending bool

	statusMessage  string
	statusLevel    slog.Level
	statusSequence int
}

// NewModel creates the screen for cfg. The configuration is copied;
// edits made on screen do not write back to cfg.
func NewModel(cfg *config.Config, options Options) *Model {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	theme := tui.DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}

	// The form's forwarding attribute is only consulted once
	// interception is enabled.
	hittest.Enable()

	model := &Model{
		screen:   cloneScreen(cfg.Screen),
		keys:     DefaultKeyMap,
		help:     help.New(),
		theme:    theme,
		logger:   options.Logger,
		recorder: options.Recorder,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)
	model.help.Styles.ShortKey = helpStyle.Bold(true)
	model.help.Styles.ShortDesc = helpStyle
	model.help.Styles.ShortSeparator = helpStyle
	model.help.Styles.Ellipsis = helpStyle

	model.host = popover.NewHost(popover.HostConfig{
		Name:   "git-object",
		Clock:  options.Clock,
		Logger: options.Logger,
		Post:   options.Post,
	})
	model.host.SetTouchedAlpha(cfg.Widget.TouchedAlpha)
	for _, kind := range model.screen.GitObjectKinds {
		model.host.AddAction(tui.Label{Text: string(kind)}, func() {
			model.selectGitObjectKind(kind)
		})
	}
	model.host.OnFocusChanged(func() {
		model.focusChanges++
	})

	model.root = hittest.NewNode("screen", image.Rectangle{})
	model.body = hittest.NewNode("form-body", image.Rectangle{})
	model.body.Content = &bodyArea{model: model, pressedRow: -1}
	model.form = hittest.NewNode("git-object-form", image.Rectangle{})
	model.form.AddChild(model.host.Node())
	model.form.SetForwardingTarget(model.host.Node())
	// Children are hit-tested last to first: the form is on top.
	model.root.AddChild(model.body)
	model.root.AddChild(model.form)
	model.dispatcher = hittest.NewDispatcher(model.root, options.Logger)

	model.layout()
	return model
}

func cloneScreen(screen config.ScreenConfig) config.ScreenConfig {
	screen.GitObjectKinds = slices.Clone(screen.GitObjectKinds)
	screen.WorkflowIDs = slices.Clone(screen.WorkflowIDs)
	screen.Environments = slices.Clone(screen.Environments)
	return screen
}

// Host returns the git object picker.
func (model *Model) Host() *popover.Host { return model.host }

// Screen returns the form's current state.
func (model *Model) Screen() config.ScreenConfig { return model.screen }

// Requests returns every build triggered so far, oldest first.
func (model *Model) Requests() []BuildRequest { return model.requests }

// FocusChanges returns how many times dragging moved the picker's
// focus to a different item.
func (model *Model) FocusChanges() int { return model.focusChanges }

// Init implements tea.Model.
func (model *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (model *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	sequence := model.statusSequence
	var cmd tea.Cmd

	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.layout()
		return model, nil

	case tea.MouseMsg:
		if event, ok := tui.PointerEvent(message); ok {
			model.Dispatch(event)
		}

	case tea.KeyMsg:
		cmd = model.handleKey(message)

	case tui.PostMsg:
		message.Run()

	case tui.FrameMsg:
		model.framePending = false

	case tui.LogRecordMsg:
		model.notify(message.Level, message.Summary)

	case tui.LogRecordFadeMsg:
		if message.Sequence == model.statusSequence {
			model.statusMessage = ""
		}
		return model, nil
	}

	var fade tea.Cmd
	if model.statusSequence != sequence {
		fade = tui.FadeLogRecord(model.statusSequence)
	}
	return model, tea.Batch(cmd, fade, model.frameCmd())
}

// frameCmd schedules a frame while the picker's strip is fading.
func (model *Model) frameCmd() tea.Cmd {
	if model.framePending || !tui.AnyAnimating(model.host) {
		return nil
	}
	model.framePending = true
	return tui.ScheduleFrame()
}

// Dispatch routes one pointer event (screen coordinates) through the
// element tree, recording it first when a recorder is attached. It
// reports whether a handler received the event. Replaying a
// gesturetrace through Dispatch reproduces the recorded session.
func (model *Model) Dispatch(event pointer.Event) bool {
	if model.recorder != nil {
		if err := model.recorder.Record(event); err != nil {
			model.logger.Warn("gesture recording failed, recording stopped", "error", err)
			model.recorder = nil
		}
	}
	return model.dispatcher.Dispatch(event)
}

// TapPicker taps the middle of the picker, opening its strip when it
// is closed and closing it when it is open.
func (model *Model) TapPicker() {
	frame := model.host.Node().Frame
	center := model.host.Node().Origin().Add(image.Pt(frame.Dx()/2, frame.Dy()/2))
	model.Dispatch(pointer.Event{Kind: pointer.Press, Position: center})
	model.Dispatch(pointer.Event{Kind: pointer.Release, Position: center})
}

// Close cancels any gesture in progress and tears down the picker.
func (model *Model) Close() {
	model.dispatcher.Reset()
	model.host.Close()
}

// TriggerBuild submits the form and returns the request.
func (model *Model) TriggerBuild() BuildRequest {
	request := BuildRequest{
		AppSlug:    model.screen.AppSlug,
		GitObject:  model.screen.GitObject,
		WorkflowID: model.screen.WorkflowID,
	}
	for _, environment := range model.screen.Environments {
		if environment.Enabled {
			request.Environments = append(request.Environments, environment)
		}
	}
	model.requests = append(model.requests, request)
	model.logger.Info("build triggered",
		"app_slug", request.AppSlug,
		"git_object", string(request.GitObject.Kind)+":"+request.GitObject.Value,
		"workflow_id", request.WorkflowID,
		"environments", len(request.Environments),
	)
	model.notify(slog.LevelInfo, "Triggered "+request.String())
	return request
}

func (model *Model) selectGitObjectKind(kind config.GitObjectKind) {
	model.screen.GitObject.Kind = kind
	model.logger.Info("git object kind selected", "kind", string(kind))
}

// SelectWorkflow makes workflow index the one the build runs.
func (model *Model) SelectWorkflow(index int) {
	if index < 0 || index >= len(model.screen.WorkflowIDs) {
		return
	}
	model.screen.WorkflowID = model.screen.WorkflowIDs[index]
}

// AddWorkflow appends a workflow ID. The first workflow added to an
// empty list is selected.
func (model *Model) AddWorkflow(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("workflow ID is empty")
	}
	if slices.Contains(model.screen.WorkflowIDs, id) {
		return fmt.Errorf("workflow %q already exists", id)
	}
	model.screen.WorkflowIDs = append(model.screen.WorkflowIDs, id)
	if model.screen.WorkflowID == "" {
		model.screen.WorkflowID = id
	}
	model.buildRows()
	return nil
}

// RemoveWorkflow deletes workflow index. Removing the selected
// workflow selects the first remaining one.
func (model *Model) RemoveWorkflow(index int) {
	if index < 0 || index >= len(model.screen.WorkflowIDs) {
		return
	}
	removed := model.screen.WorkflowIDs[index]
	model.screen.WorkflowIDs = slices.Delete(model.screen.WorkflowIDs, index, index+1)
	if model.screen.WorkflowID == removed {
		model.screen.WorkflowID = ""
		if len(model.screen.WorkflowIDs) > 0 {
			model.screen.WorkflowID = model.screen.WorkflowIDs[0]
		}
	}
	model.buildRows()
}

// AddEnvironment appends an enabled variable parsed from "KEY:VALUE".
// Empty fields between separators are dropped, so "A::B" is A=B; what
// remains must be exactly two fields. Empty keys and keys already
// present are rejected.
func (model *Model) AddEnvironment(entry string) error {
	parts := strings.FieldsFunc(entry, func(r rune) bool { return r == ':' })
	if len(parts) != 2 {
		return fmt.Errorf("environment variable %q: want KEY:VALUE", entry)
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return fmt.Errorf("environment variable %q: key is empty", entry)
	}
	for _, environment := range model.screen.Environments {
		if environment.Key == name {
			return fmt.Errorf("environment variable %s already exists", name)
		}
	}
	model.screen.Environments = append(model.screen.Environments, config.Environment{
		Key:     name,
		Value:   strings.TrimSpace(parts[1]),
		Enabled: true,
	})
	model.buildRows()
	return nil
}

// ToggleEnvironment flips whether variable index is sent with the
// build.
func (model *Model) ToggleEnvironment(index int) {
	if index < 0 || index >= len(model.screen.Environments) {
		return
	}
	model.screen.Environments[index].Enabled = !model.screen.Environments[index].Enabled
}

// RemoveEnvironment deletes variable index.
func (model *Model) RemoveEnvironment(index int) {
	if index < 0 || index >= len(model.screen.Environments) {
		return
	}
	model.screen.Environments = slices.Delete(model.screen.Environments, index, index+1)
	model.buildRows()
}

// SetGitObjectValue replaces the git object's value, keeping its kind.
func (model *Model) SetGitObjectValue(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("git object value is empty")
	}
	model.screen.GitObject.Value = value
	return nil
}

// notify puts message in the status bar. Update schedules its fade.
func (model *Model) notify(level slog.Level, message string) {
	model.statusSequence++
	model.statusMessage = message
	model.statusLevel = level
}

func (model *Model) handleKey(message tea.KeyMsg) tea.Cmd {
	if message.Type == tea.KeyCtrlC {
		model.Close()
		return tea.Quit
	}
	if model.entry != entryNone {
		model.handleEntryKey(message)
		return nil
	}

	current := model.currentRow()
	switch {
	case key.Matches(message, model.keys.Quit):
		model.Close()
		return tea.Quit
	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
	case key.Matches(message, model.keys.Activate):
		model.activate(current)
	case key.Matches(message, model.keys.Picker):
		model.TapPicker()
	case key.Matches(message, model.keys.Edit):
		model.startEntry(entryGitObjectValue, model.screen.GitObject.Value)
	case key.Matches(message, model.keys.Add):
		if current.kind == rowWorkflow {
			model.startEntry(entryWorkflow, "")
		} else {
			model.startEntry(entryEnvironment, "")
		}
	case key.Matches(message, model.keys.Delete):
		switch current.kind {
		case rowWorkflow:
			model.RemoveWorkflow(current.index)
		case rowEnvironment:
			model.RemoveEnvironment(current.index)
		}
	case key.Matches(message, model.keys.Trigger):
		model.TriggerBuild()
	}
	return nil
}

func (model *Model) startEntry(target entryTarget, initial string) {
	model.entry = target
	model.entryBuffer = []rune(initial)
}

func (model *Model) handleEntryKey(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.entry = entryNone
		model.entryBuffer = nil
	case key.Matches(message, model.keys.Submit):
		text := string(model.entryBuffer)
		var err error
		switch model.entry {
		case entryWorkflow:
			err = model.AddWorkflow(text)
		case entryEnvironment:
			err = model.AddEnvironment(text)
		case entryGitObjectValue:
			err = model.SetGitObjectValue(text)
		}
		if err != nil {
			model.notify(slog.LevelWarn, err.Error())
			return
		}
		model.entry = entryNone
		model.entryBuffer = nil
	case message.Type == tea.KeyBackspace:
		if len(model.entryBuffer) > 0 {
			model.entryBuffer = model.entryBuffer[:len(model.entryBuffer)-1]
		}
	case message.Type == tea.KeySpace:
		model.entryBuffer = append(model.entryBuffer, ' ')
	case message.Type == tea.KeyRunes:
		model.entryBuffer = append(model.entryBuffer, message.Runes...)
	}
}

// activate performs the row's primary action.
func (model *Model) activate(target row) {
	switch target.kind {
	case rowWorkflow:
		model.SelectWorkflow(target.index)
	case rowEnvironment:
		model.ToggleEnvironment(target.index)
	case rowTrigger:
		model.TriggerBuild()
	}
}

// layout positions the element tree for the current window size.
func (model *Model) layout() {
	model.root.Frame = image.Rect(0, 0, model.width, model.height)
	model.form.Frame = image.Rect(0, formTop, model.width, formTop+1+pickerHeight)
	model.host.Node().Frame = image.Rect(pickerLeft, 1, pickerLeft+pickerWidth, 1+pickerHeight)
	model.buildRows()
	model.help.Width = model.width
}

// View implements tea.Model.
func (model *Model) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	lines := []string{
		headerStyle.Render("Trigger build") + "  " + faintStyle.Render(model.screen.AppSlug),
		"",
		headerStyle.Render("Git object"),
	}
	lines = append(lines, model.renderPicker()...)
	lines = append(lines, "")
	for index, line := range model.rows {
		lines = append(lines, model.renderRow(index, line))
	}
	for len(lines) < model.height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, model.renderStatus())
	view := strings.Join(lines, "\n")

	overlay := tui.RenderStrip(model.host.Strip(), model.host.Visibility(), model.theme)
	origin := model.host.Node().Origin().Add(model.host.StripOrigin())
	return tui.SpliceOverlay(view, overlay, origin.X, origin.Y)
}

func (model *Model) renderPicker() []string {
	borderColor := model.theme.BorderColor
	if model.host.IsOpen() {
		borderColor = model.theme.SelectedForeground
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(pickerWidth - 2)

	kind := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.SelectedForeground).
		Render(string(model.screen.GitObject.Kind) + " ▾")
	valueWidth := max(pickerWidth-2-ansi.StringWidth(kind)-1, 0)
	value := lipgloss.NewStyle().
		Foreground(model.theme.NormalText).
		Render(ansi.Truncate(model.screen.GitObject.Value, valueWidth, "…"))

	prefix := strings.Repeat(" ", pickerLeft)
	lines := strings.Split(box.Render(kind+" "+value), "\n")
	for index := range lines {
		lines[index] = prefix + lines[index]
	}
	return lines
}

func (model *Model) renderRow(index int, line row) string {
	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if index == model.cursor {
		normal = normal.
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground)
	}
	marker := "  "
	if index == model.cursor {
		marker = "▸ "
	}

	switch line.kind {
	case rowHeading:
		return lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(line.text)
	case rowNote:
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("  " + line.text)
	case rowWorkflow:
		id := model.screen.WorkflowIDs[line.index]
		radio := "( )"
		if id == model.screen.WorkflowID {
			radio = "(•)"
		}
		return normal.Render(marker + radio + " " + id)
	case rowEnvironment:
		environment := model.screen.Environments[line.index]
		check := "[ ]"
		if environment.Enabled {
			check = "[x]"
		}
		return normal.Render(marker + check + " " + environment.Key + "=" + environment.Value)
	case rowTrigger:
		return normal.Bold(true).Render(marker + "[ Trigger build ]")
	default:
		return ""
	}
}

func (model *Model) renderStatus() string {
	if model.entry != entryNone {
		prompt := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).
			Render(model.entry.prompt() + ": " + string(model.entryBuffer) + "█")
		return prompt + "  " + model.help.View(entryHelp{keys: model.keys})
	}
	if model.statusMessage != "" {
		color := model.theme.NormalText
		switch {
		case model.statusLevel >= slog.LevelError:
			color = model.theme.LogError
		case model.statusLevel >= slog.LevelWarn:
			color = model.theme.LogWarn
		}
		return lipgloss.NewStyle().Foreground(color).
			Render(ansi.Truncate(model.statusMessage, model.width, "…"))
	}
	return model.help.View(model.keys)
}
