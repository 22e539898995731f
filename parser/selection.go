// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/selection.go
// Summary: Text selection over the combined scrollback + screen extent.
// Usage: Driven by the UI from mouse events; read back for copy.
// Notes: Positions are in global-row space so a live scroll cannot move the
// selection off its content.

package parser

import "unicode"

// Pos addresses a cell by global row (scrollback then screen) and column.
type Pos struct {
	Row int
	Col int
}

// Selection is an anchor/focus pair; the focus follows the drag.
type Selection struct {
	Anchor Pos
	Focus  Pos
}

// Normalized orders the endpoints by (row, col).
func (s Selection) Normalized() (Pos, Pos) {
	a, f := s.Anchor, s.Focus
	if a.Row > f.Row || (a.Row == f.Row && a.Col > f.Col) {
		return f, a
	}
	return a, f
}

func (v *VTerm) ClearSelection() {
	v.selection = nil
}

// SelectionBounds returns the normalized selection, if any.
func (v *VTerm) SelectionBounds() (Pos, Pos, bool) {
	if v.selection == nil {
		return Pos{}, Pos{}, false
	}
	a, b := v.selection.Normalized()
	return a, b, true
}

// clampPos pulls a position into [0, total lines) x [0, cols).
func (v *VTerm) clampPos(p Pos) Pos {
	p.Row = clamp(p.Row, 0, v.TotalLines()-1)
	p.Col = clamp(p.Col, 0, v.width-1)
	return p
}

// posForView converts a viewport-relative location to a global position.
func (v *VTerm) posForView(viewRow, col int) Pos {
	return v.clampPos(Pos{
		Row: v.VisibleStartGlobalRow() + clamp(viewRow, 0, v.height-1),
		Col: col,
	})
}

// StartSelectionAtView anchors a new selection at a viewport location.
func (v *VTerm) StartSelectionAtView(viewRow, col int) {
	pos := v.posForView(viewRow, col)
	v.selection = &Selection{Anchor: pos, Focus: pos}
}

// UpdateSelectionAtView drags the selection focus to a viewport location.
func (v *VTerm) UpdateSelectionAtView(viewRow, col int) {
	if v.selection == nil {
		return
	}
	v.selection.Focus = v.posForView(viewRow, col)
}

// IsSelected reports whether the cell at (globalRow, col) lies inside the
// selection.
func (v *VTerm) IsSelected(globalRow, col int) bool {
	if v.selection == nil {
		return false
	}
	a, b := v.selection.Normalized()
	if globalRow < a.Row || globalRow > b.Row {
		return false
	}
	if a.Row == b.Row {
		return col >= a.Col && col <= b.Col
	}
	switch globalRow {
	case a.Row:
		return col >= a.Col
	case b.Row:
		return col <= b.Col
	default:
		return true
	}
}

// SelectionNonEmpty reports whether a selection exists and spans at least one
// cell boundary.
func (v *VTerm) SelectionNonEmpty() bool {
	if v.selection == nil {
		return false
	}
	a, b := v.selection.Normalized()
	return a != b
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}

// SelectWordAtView expands the selection from a clicked cell to the maximal
// contiguous run of word characters (alphanumeric, '_', '-', '.'). A click on
// a non-word character selects just that cell.
func (v *VTerm) SelectWordAtView(viewRow, col int) {
	globalRow := v.VisibleStartGlobalRow() + viewRow
	row := v.LineAtGlobal(globalRow)
	if row == nil {
		return
	}
	col = clamp(col, 0, len(row)-1)
	if !isWordChar(row[col].Rune) {
		pos := Pos{Row: globalRow, Col: col}
		v.selection = &Selection{Anchor: pos, Focus: pos}
		return
	}
	start := col
	for start > 0 && isWordChar(row[start-1].Rune) {
		start--
	}
	end := col
	for end+1 < len(row) && isWordChar(row[end+1].Rune) {
		end++
	}
	v.selection = &Selection{
		Anchor: Pos{Row: globalRow, Col: start},
		Focus:  Pos{Row: globalRow, Col: end},
	}
}

// SelectLineAtView selects the full row under a viewport location.
func (v *VTerm) SelectLineAtView(viewRow int) {
	globalRow := v.VisibleStartGlobalRow() + clamp(viewRow, 0, v.height-1)
	v.selection = &Selection{
		Anchor: Pos{Row: globalRow, Col: 0},
		Focus:  Pos{Row: globalRow, Col: v.width - 1},
	}
}

// SelectAll spans the whole scrollback + screen extent.
func (v *VTerm) SelectAll() {
	v.selection = &Selection{
		Anchor: Pos{Row: 0, Col: 0},
		Focus:  Pos{Row: v.TotalLines() - 1, Col: v.width - 1},
	}
}

// SelectionText extracts the selected text: rows joined with newline,
// wide-continuation placeholders skipped, trailing spaces trimmed per line.
// Returns "" when there is no selection.
func (v *VTerm) SelectionText() string {
	if v.selection == nil {
		return ""
	}
	a, b := v.selection.Normalized()
	var out []rune
	for rowIdx := a.Row; rowIdx <= b.Row; rowIdx++ {
		row := v.LineAtGlobal(rowIdx)
		if row == nil {
			break
		}
		start := 0
		if rowIdx == a.Row {
			start = a.Col
		}
		end := v.width - 1
		if rowIdx == b.Row {
			end = min(b.Col, v.width-1)
		}
		var line []rune
		for col := start; col <= end && col < len(row); col++ {
			if row[col].WideCont {
				continue
			}
			line = append(line, row[col].Rune)
		}
		for len(line) > 0 && line[len(line)-1] == ' ' {
			line = line[:len(line)-1]
		}
		out = append(out, line...)
		if rowIdx != b.Row {
			out = append(out, '\n')
		}
	}
	return string(out)
}
