// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_test.go
// Summary: Tests for character placement, wrapping, and cursor movement.

package parser

import (
	"testing"
)

func TestBasicPlacement(t *testing.T) {
	h := NewTestHarness(10, 4)
	h.Send("Hi")
	h.AssertRune(t, 0, 0, 'H')
	h.AssertRune(t, 1, 0, 'i')
	h.AssertCursor(t, 2, 0)
}

func TestCRLF(t *testing.T) {
	h := NewTestHarness(10, 4)
	h.Send("one\r\ntwo")
	h.AssertRow(t, 0, "one")
	h.AssertRow(t, 1, "two")
	h.AssertCursor(t, 3, 1)
}

// The cursor column may sit at width (pending wrap) after filling a row; the
// wrap only happens when the next character arrives.
func TestPendingWrap(t *testing.T) {
	h := NewTestHarness(5, 4)
	h.Send("abcde")
	h.AssertRow(t, 0, "abcde")
	// Clamped accessor reports the last column, the next char still lands
	// on row 1.
	h.AssertCursor(t, 4, 0)
	h.Send("f")
	h.AssertRune(t, 0, 1, 'f')
	h.AssertCursor(t, 1, 1)
}

// A CR while the wrap is pending must cancel it: the next chars overwrite the
// same row instead of wrapping.
func TestPendingWrapCancelledByCR(t *testing.T) {
	h := NewTestHarness(5, 4)
	h.Send("abcde\rX")
	h.AssertRune(t, 0, 0, 'X')
	h.AssertRow(t, 1, "")
}

func TestAutowrapScrollsAtBottom(t *testing.T) {
	h := NewTestHarness(5, 2)
	h.Send("aaaaabbbbbccccc")
	h.AssertRow(t, 0, "bbbbb")
	h.AssertRow(t, 1, "ccccc")
	if h.VTerm().ScrollbackLen() != 1 {
		t.Fatalf("scrollback len = %d, want 1", h.VTerm().ScrollbackLen())
	}
}

func TestWideCharPlacement(t *testing.T) {
	h := NewTestHarness(10, 4)
	h.Send("世界")
	h.AssertRune(t, 0, 0, '世')
	if !h.Cell(1, 0).WideCont {
		t.Error("cell (1,0) should be a wide continuation")
	}
	h.AssertRune(t, 2, 0, '界')
	h.AssertCursor(t, 4, 0)
}

// A wide char that fits only one column at the end of a row wraps whole.
func TestWideCharWrapsAtRowEnd(t *testing.T) {
	h := NewTestHarness(5, 4)
	h.Send("abcd世")
	h.AssertRow(t, 0, "abcd")
	h.AssertRune(t, 0, 1, '世')
	if !h.Cell(1, 1).WideCont {
		t.Error("cell (1,1) should be a wide continuation")
	}
}

// A wide char on a 1-column grid has no room for its continuation cell; it
// must degrade to a single-width write instead of writing past the row.
func TestWideCharOnOneColumnGrid(t *testing.T) {
	h := NewTestHarness(1, 4)
	h.Send("世界")
	h.AssertRune(t, 0, 0, '世')
	h.AssertRune(t, 0, 1, '界')
	if h.Cell(0, 0).WideCont || h.Cell(0, 1).WideCont {
		t.Error("no continuation cells fit a 1-column grid")
	}
}

func TestBackspaceFloorsAtZero(t *testing.T) {
	h := NewTestHarness(10, 4)
	h.Send("\b")
	h.AssertCursor(t, 0, 0)
	h.Send("ab\b")
	h.AssertCursor(t, 1, 0)
}

func TestTabStops(t *testing.T) {
	h := NewTestHarness(20, 4)
	h.Send("a\t")
	h.AssertCursor(t, 8, 0)
	h.Send("\t")
	h.AssertCursor(t, 16, 0)
	// Clamped to the last column, never past it.
	h.Send("\t")
	h.AssertCursor(t, 19, 0)
}

func TestCursorMovementCSI(t *testing.T) {
	h := NewTestHarness(20, 10)
	h.Send("\x1b[5;10H")
	h.AssertCursor(t, 9, 4)
	h.Send("\x1b[2A")
	h.AssertCursor(t, 9, 2)
	h.Send("\x1b[3D")
	h.AssertCursor(t, 6, 2)
	h.Send("\x1b[100C")
	h.AssertCursor(t, 19, 2)
	h.Send("\x1b[100B")
	h.AssertCursor(t, 19, 9)
	// CSI H with no params homes.
	h.Send("\x1b[H")
	h.AssertCursor(t, 0, 0)
}

func TestCursorSaveRestore(t *testing.T) {
	h := NewTestHarness(20, 10)
	h.Send("\x1b[4;6H\x1b[s\x1b[H")
	h.AssertCursor(t, 0, 0)
	h.Send("\x1b[u")
	h.AssertCursor(t, 5, 3)
}

func TestResizeKeepsTopLeft(t *testing.T) {
	h := NewTestHarness(10, 4)
	h.Send("abcdefghij\r\n0123456789")
	h.VTerm().Resize(5, 2)
	h.AssertRow(t, 0, "abcde")
	h.AssertRow(t, 1, "01234")
	if w, hh := h.VTerm().Width(), h.VTerm().Height(); w != 5 || hh != 2 {
		t.Fatalf("size = %dx%d, want 5x2", w, hh)
	}
	// Growing pads with blanks.
	h.VTerm().Resize(8, 3)
	h.AssertRow(t, 0, "abcde")
	h.AssertBlank(t, 6, 0)
	h.AssertRow(t, 2, "")
}

func TestResizeClampsCursor(t *testing.T) {
	h := NewTestHarness(20, 10)
	h.Send("\x1b[10;20H")
	h.VTerm().Resize(5, 3)
	x, y := h.Cursor()
	if x >= 5 || y >= 3 {
		t.Fatalf("cursor (%d,%d) out of bounds after resize", x, y)
	}
}

func TestMinimumSize(t *testing.T) {
	v := NewVTerm(0, -3)
	if v.Width() != 1 || v.Height() != 1 {
		t.Fatalf("size = %dx%d, want 1x1", v.Width(), v.Height())
	}
	v.Resize(0, 0)
	if v.Width() != 1 || v.Height() != 1 {
		t.Fatalf("size after resize = %dx%d, want 1x1", v.Width(), v.Height())
	}
}

func TestBellFlag(t *testing.T) {
	h := NewTestHarness(10, 4)
	h.Send("\x07")
	if !h.VTerm().Bell() {
		t.Error("bell flag should be set")
	}
	// Read clears it.
	if h.VTerm().Bell() {
		t.Error("bell flag should clear after read")
	}
}

func TestFormFeedClearsAndHomes(t *testing.T) {
	h := NewTestHarness(10, 4)
	h.FillWithPattern("ABCDEFGHIJ")
	h.Send("\x1b[2;2H\x0c")
	h.AssertCursor(t, 0, 0)
	h.AssertRow(t, 0, "")
	h.AssertRow(t, 3, "")
}
