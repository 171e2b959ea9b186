// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package triggerui

import (
	"image"

	"github.com/bureau-foundation/popover/lib/pointer"
)

type rowKind int

const (
	rowBlank rowKind = iota
	rowHeading
	rowNote
	rowWorkflow
	rowEnvironment
	rowTrigger
)

// row is one line of the form body. index is the workflow or
// environment index for rows of those kinds.
type row struct {
	kind  rowKind
	index int
	text  string
}

func (line row) selectable() bool {
	return line.kind == rowWorkflow || line.kind == rowEnvironment || line.kind == rowTrigger
}

// buildRows regenerates the body's lines from the form state and
// resizes the body node to fit them.
func (model *Model) buildRows() {
	rows := []row{{kind: rowHeading, text: "Workflow"}}
	for index := range model.screen.WorkflowIDs {
		rows = append(rows, row{kind: rowWorkflow, index: index})
	}
	if len(model.screen.WorkflowIDs) == 0 {
		rows = append(rows, row{kind: rowNote, text: "no workflows, press a to add one"})
	}

	rows = append(rows, row{kind: rowBlank}, row{kind: rowHeading, text: "Environment variables"})
	for index := range model.screen.Environments {
		rows = append(rows, row{kind: rowEnvironment, index: index})
	}
	if len(model.screen.Environments) == 0 {
		rows = append(rows, row{kind: rowNote, text: "none, press a to add one"})
	}

	rows = append(rows, row{kind: rowBlank}, row{kind: rowTrigger})

	model.rows = rows
	model.body.Frame = image.Rect(0, bodyTop, model.width, bodyTop+len(rows))
	model.clampCursor()
}

func (model *Model) currentRow() row {
	if model.cursor < 0 || model.cursor >= len(model.rows) {
		return row{}
	}
	return model.rows[model.cursor]
}

// moveCursor steps to the next selectable row in direction delta. At
// either end the cursor stays put.
func (model *Model) moveCursor(delta int) {
	for index := model.cursor + delta; index >= 0 && index < len(model.rows); index += delta {
		if model.rows[index].selectable() {
			model.cursor = index
			return
		}
	}
}

// clampCursor moves the cursor onto a selectable row after the rows
// changed, preferring the nearest one below.
func (model *Model) clampCursor() {
	model.cursor = min(max(model.cursor, 0), len(model.rows)-1)
	if model.rows[model.cursor].selectable() {
		return
	}
	for index := model.cursor + 1; index < len(model.rows); index++ {
		if model.rows[index].selectable() {
			model.cursor = index
			return
		}
	}
	for index := model.cursor - 1; index >= 0; index-- {
		if model.rows[index].selectable() {
			model.cursor = index
			return
		}
	}
}

// bodyArea is the body node's content. A row is activated when the
// pointer is pressed and released on it; the cursor follows the press.
type bodyArea struct {
	model      *Model
	pressedRow int
}

func (area *bodyArea) HitTest(p image.Point) bool {
	return p.In(area.model.body.Bounds())
}

func (area *bodyArea) HandlePointer(event pointer.Event) {
	rowIndex := event.Position.Y
	switch event.Kind {
	case pointer.Press:
		area.pressedRow = -1
		if rowIndex >= 0 && rowIndex < len(area.model.rows) && area.model.rows[rowIndex].selectable() {
			area.pressedRow = rowIndex
			area.model.cursor = rowIndex
		}
	case pointer.Release:
		if rowIndex == area.pressedRow && area.HitTest(event.Position) {
			area.model.activate(area.model.rows[rowIndex])
		}
		area.pressedRow = -1
	case pointer.Cancel:
		area.pressedRow = -1
	}
}
