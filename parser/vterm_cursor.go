// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_cursor.go
// Summary: Cursor positioning and the saved cursor slot.
// Usage: Part of the VTerm terminal engine.

package parser

// MoveCursor places the cursor at an absolute 0-based position, clamped into
// the grid. Explicit positioning always cancels a pending wrap.
func (v *VTerm) MoveCursor(row, col int) {
	v.cursorY = clamp(row, 0, v.height-1)
	v.cursorX = clamp(col, 0, v.width-1)
}

// MoveRel moves the cursor relative to its current position, clamped to the
// grid bounds. Relative motion never scrolls.
func (v *VTerm) MoveRel(dr, dc int) {
	v.cursorY = clamp(v.cursorY+dr, 0, v.height-1)
	v.cursorX = clamp(v.cursorX+dc, 0, v.width-1)
}

// SetCursorCol sets the column only (CHA), 0-based and clamped.
func (v *VTerm) SetCursorCol(col int) {
	v.cursorX = clamp(col, 0, v.width-1)
}

// SetCursorRow sets the row only (VPA), 0-based and clamped.
func (v *VTerm) SetCursorRow(row int) {
	v.cursorY = clamp(row, 0, v.height-1)
}

func (v *VTerm) HomeCursor() {
	v.cursorX = 0
	v.cursorY = 0
}

func (v *VTerm) SaveCursor() {
	v.savedCursorX = v.cursorX
	v.savedCursorY = v.cursorY
}

func (v *VTerm) RestoreCursor() {
	v.cursorY = clamp(v.savedCursorY, 0, v.height-1)
	v.cursorX = clamp(v.savedCursorX, 0, v.width-1)
}

// setCursorShape maps DECSCUSR parameters: 0-2 block, 3-4 underline,
// 5-6 beam, anything else block.
func (v *VTerm) setCursorShape(ps int) {
	switch {
	case ps >= 3 && ps <= 4:
		v.cursorShape = CursorUnderline
	case ps >= 5 && ps <= 6:
		v.cursorShape = CursorBeam
	default:
		v.cursorShape = CursorBlock
	}
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
