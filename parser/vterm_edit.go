// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_edit.go
// Summary: Character-level grid mutation: placement, insert, delete, erase.
// Usage: Part of the VTerm terminal engine.

package parser

import "github.com/mattn/go-runewidth"

// placeChar writes a printable character at the cursor, honoring display
// width. A character that would overflow the row triggers the pending wrap
// (line feed + carriage return) first. Wide characters write a continuation
// placeholder into the following cell. After the write the cursor column may
// equal the width, which marks "about to wrap" without wrapping yet.
func (v *VTerm) placeChar(r rune) {
	if r == 0 || r == 0x7f {
		return
	}
	width := runewidth.RuneWidth(r)
	if width < 1 {
		width = 1
	}
	if width == 2 && v.width < 2 {
		// A wide character cannot fit a 1-column grid at all; place it
		// without the continuation cell rather than write past the row.
		width = 1
	}
	if v.cursorX >= v.width {
		v.cursorX = 0
		v.LineFeed()
	}
	if width == 2 && v.cursorX+1 >= v.width {
		v.cursorX = 0
		v.LineFeed()
	}
	if v.cursorY >= v.height {
		v.cursorY = v.height - 1
	}
	row := v.screen[v.cursorY]
	row[v.cursorX] = Cell{Rune: r, FG: v.style.FG, BG: v.style.BG, Attr: v.style.Attr}
	if width == 2 {
		row[v.cursorX+1] = Cell{Rune: ' ', FG: v.style.FG, BG: v.style.BG, Attr: v.style.Attr, WideCont: true}
	}
	v.cursorX += width
	if v.cursorX > v.width {
		v.cursorX = v.width
	}
}

// PlaceString feeds every rune of s through placeChar. Test/support helper.
func (v *VTerm) PlaceString(s string) {
	for _, r := range s {
		v.placeChar(r)
	}
}

func (v *VTerm) LineFeed() {
	if v.cursorY+1 >= v.height {
		v.scrollUp(1)
	} else {
		v.cursorY++
	}
}

func (v *VTerm) CarriageReturn() {
	v.cursorX = 0
}

func (v *VTerm) Backspace() {
	if v.cursorX > 0 {
		v.cursorX--
	}
}

// Tab advances to the next multiple-of-8 column, clamped to the last column.
func (v *VTerm) Tab() {
	next := ((v.cursorX / 8) + 1) * 8
	v.cursorX = min(next, v.width-1)
}

func (v *VTerm) NextLine() {
	v.LineFeed()
	v.CarriageReturn()
}

// clearRange blanks cells [start, end) of a row with the current style.
func (v *VTerm) clearRange(row []Cell, start, end int) {
	fill := blankCell(v.style)
	start = min(start, len(row))
	end = min(end, len(row))
	for x := start; x < end; x++ {
		row[x] = fill
	}
}

// EraseInLine implements EL: 0 = cursor to end, 1 = start through cursor,
// 2 = whole line.
func (v *VTerm) EraseInLine(mode int) {
	row := v.screen[v.cursorY]
	switch mode {
	case 0:
		v.clearRange(row, v.cursorX, v.width)
	case 1:
		v.clearRange(row, 0, v.cursorX+1)
	case 2:
		v.clearRange(row, 0, v.width)
	}
}

// EraseInDisplay implements ED: 0 = cursor to end of screen, 1 = start of
// screen through cursor, 2 = whole screen, 3 = whole screen plus scrollback.
// Modes 0-2 never touch scrollback.
func (v *VTerm) EraseInDisplay(mode int) {
	switch mode {
	case 0:
		v.EraseInLine(0)
		for y := v.cursorY + 1; y < v.height; y++ {
			v.clearRange(v.screen[y], 0, v.width)
		}
	case 1:
		for y := 0; y < v.cursorY; y++ {
			v.clearRange(v.screen[y], 0, v.width)
		}
		v.EraseInLine(1)
	case 2, 3:
		for y := 0; y < v.height; y++ {
			v.clearRange(v.screen[y], 0, v.width)
		}
		if mode == 3 {
			v.ClearScrollback()
		}
	}
}

// ClearAll blanks the screen with the current style and homes the cursor
// (form feed, RIS).
func (v *VTerm) ClearAll() {
	for y := 0; y < v.height; y++ {
		v.clearRange(v.screen[y], 0, v.width)
	}
	v.cursorX = 0
	v.cursorY = 0
}

// InsertBlankChars implements ICH: shifts the cursor row right from the
// cursor, injecting blank cells. Cells pushed past the last column are lost.
func (v *VTerm) InsertBlankChars(n int) {
	row := v.screen[v.cursorY]
	n = min(n, v.width-v.cursorX)
	if n <= 0 {
		return
	}
	fill := blankCell(v.style)
	for x := v.width - 1; x >= v.cursorX; x-- {
		if x >= v.cursorX+n {
			row[x] = row[x-n]
		} else {
			row[x] = fill
		}
	}
}

// DeleteChars implements DCH: removes cells at the cursor, shifting the rest
// of the row left and back-filling with blanks.
func (v *VTerm) DeleteChars(n int) {
	row := v.screen[v.cursorY]
	n = min(n, v.width-v.cursorX)
	if n <= 0 {
		return
	}
	fill := blankCell(v.style)
	for x := v.cursorX; x < v.width; x++ {
		if x+n < v.width {
			row[x] = row[x+n]
		} else {
			row[x] = fill
		}
	}
}

// EraseChars implements ECH: overwrites n cells from the cursor with blanks
// without shifting.
func (v *VTerm) EraseChars(n int) {
	end := min(v.cursorX+n, v.width)
	v.clearRange(v.screen[v.cursorY], v.cursorX, end)
}

// InsertLines implements IL: inserts n blank rows at the cursor within the
// scroll region, shifting rows below down. No-op outside the region.
func (v *VTerm) InsertLines(n int) {
	bottom := min(v.scrollBottom, v.height)
	if v.cursorY < v.scrollTop || v.cursorY >= bottom {
		return
	}
	n = min(n, bottom-v.cursorY)
	for i := 0; i < n; i++ {
		copy(v.screen[v.cursorY+1:bottom], v.screen[v.cursorY:bottom-1])
		v.screen[v.cursorY] = newRow(v.width)
	}
}

// DeleteLines implements DL: removes n rows at the cursor within the scroll
// region, shifting rows below up and back-filling blanks at the region bottom.
func (v *VTerm) DeleteLines(n int) {
	bottom := min(v.scrollBottom, v.height)
	if v.cursorY < v.scrollTop || v.cursorY >= bottom {
		return
	}
	n = min(n, bottom-v.cursorY)
	for i := 0; i < n; i++ {
		copy(v.screen[v.cursorY:bottom-1], v.screen[v.cursorY+1:bottom])
		v.screen[bottom-1] = newRow(v.width)
	}
}
