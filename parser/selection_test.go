// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/selection_test.go
// Summary: Tests for selection anchoring, word/line expansion, and extraction.

package parser

import (
	"testing"
)

func TestDragSelection(t *testing.T) {
	h := NewTestHarness(10, 4)
	h.Send("hello\r\nworld")
	v := h.VTerm()
	v.StartSelectionAtView(0, 1)
	v.UpdateSelectionAtView(1, 2)
	if !v.SelectionNonEmpty() {
		t.Fatal("selection should be non-empty")
	}
	if got := v.SelectionText(); got != "ello\nwor" {
		t.Errorf("text = %q, want %q", got, "ello\nwor")
	}
}

// A backwards drag normalizes to the same span.
func TestBackwardsDrag(t *testing.T) {
	h := NewTestHarness(10, 4)
	h.Send("hello\r\nworld")
	v := h.VTerm()
	v.StartSelectionAtView(1, 2)
	v.UpdateSelectionAtView(0, 1)
	if got := v.SelectionText(); got != "ello\nwor" {
		t.Errorf("text = %q, want %q", got, "ello\nwor")
	}
}

func TestSingleRowSelection(t *testing.T) {
	h := NewTestHarness(10, 4)
	h.Send("abcdef")
	v := h.VTerm()
	v.StartSelectionAtView(0, 2)
	v.UpdateSelectionAtView(0, 4)
	if got := v.SelectionText(); got != "cde" {
		t.Errorf("text = %q, want %q", got, "cde")
	}
	if !v.IsSelected(v.VisibleStartGlobalRow(), 3) {
		t.Error("col 3 should be selected")
	}
	if v.IsSelected(v.VisibleStartGlobalRow(), 5) {
		t.Error("col 5 should not be selected")
	}
}

func TestWordSelection(t *testing.T) {
	h := NewTestHarness(30, 4)
	h.Send("run my-file.go now")
	v := h.VTerm()
	v.SelectWordAtView(0, 6)
	if got := v.SelectionText(); got != "my-file.go" {
		t.Errorf("word = %q, want %q", got, "my-file.go")
	}
	// Click on a space selects just that cell.
	v.SelectWordAtView(0, 3)
	if got := v.SelectionText(); got != "" {
		t.Errorf("space click = %q, want empty after trim", got)
	}
}

func TestLineSelection(t *testing.T) {
	h := NewTestHarness(20, 4)
	h.Send("first\r\nsecond line")
	v := h.VTerm()
	v.SelectLineAtView(1)
	if got := v.SelectionText(); got != "second line" {
		t.Errorf("line = %q, want %q", got, "second line")
	}
}

func TestSelectAllSpansScrollback(t *testing.T) {
	h := NewTestHarness(20, 2)
	h.Send("one\r\ntwo\r\nthree")
	v := h.VTerm()
	v.SelectAll()
	if got := v.SelectionText(); got != "one\ntwo\nthree" {
		t.Errorf("text = %q, want all lines", got)
	}
}

// Selection endpoints live in global-row space, so new output scrolling the
// screen must not move the selection off its content.
func TestSelectionStableUnderScroll(t *testing.T) {
	h := NewTestHarness(20, 3)
	h.Send("target\r\nfiller")
	v := h.VTerm()
	v.SelectLineAtView(0)
	before := v.SelectionText()
	h.Send("\r\nmore\r\nmore\r\nmore")
	if got := v.SelectionText(); got != before {
		t.Errorf("selection drifted: %q -> %q", before, got)
	}
}

func TestWideCharSelectionText(t *testing.T) {
	h := NewTestHarness(10, 2)
	h.Send("a世b")
	v := h.VTerm()
	v.StartSelectionAtView(0, 0)
	v.UpdateSelectionAtView(0, 3)
	// The continuation cell contributes nothing.
	if got := v.SelectionText(); got != "a世b" {
		t.Errorf("text = %q, want %q", got, "a世b")
	}
}

func TestClearSelection(t *testing.T) {
	h := NewTestHarness(10, 2)
	h.Send("abc")
	v := h.VTerm()
	v.StartSelectionAtView(0, 0)
	v.UpdateSelectionAtView(0, 2)
	v.ClearSelection()
	if v.SelectionNonEmpty() {
		t.Error("selection should be cleared")
	}
	if v.SelectionText() != "" {
		t.Error("text should be empty after clear")
	}
}

// Shrinking the grid must pull existing selection endpoints back inside the
// new extent.
func TestSelectionReclampedOnResize(t *testing.T) {
	h := NewTestHarness(20, 4)
	h.Send("alpha beta\r\ngamma")
	v := h.VTerm()
	v.SelectAll()
	v.Resize(5, 2)
	a, b, ok := v.SelectionBounds()
	if !ok {
		t.Fatal("selection should survive a resize")
	}
	if a.Row < 0 || b.Row >= v.TotalLines() || a.Col < 0 || b.Col >= v.Width() {
		t.Errorf("bounds out of range after shrink: %+v %+v", a, b)
	}
}

// Clearing history shortens the global extent; a selection reaching into the
// dropped rows must be pulled back.
func TestSelectionReclampedOnClearScrollback(t *testing.T) {
	h := NewTestHarness(10, 2)
	h.Send("one\r\ntwo\r\nthree\r\nfour")
	v := h.VTerm()
	v.SelectAll()
	v.ClearScrollback()
	a, b, ok := v.SelectionBounds()
	if !ok {
		t.Fatal("selection should survive a scrollback clear")
	}
	if a.Row < 0 || b.Row >= v.TotalLines() {
		t.Errorf("rows out of range after clear: %+v %+v", a, b)
	}
}

func TestSelectionClamped(t *testing.T) {
	h := NewTestHarness(10, 2)
	h.Send("abc")
	v := h.VTerm()
	v.StartSelectionAtView(50, 99)
	v.UpdateSelectionAtView(-5, -5)
	a, b, ok := v.SelectionBounds()
	if !ok {
		t.Fatal("selection should exist")
	}
	if a.Row < 0 || b.Row >= v.TotalLines() || a.Col < 0 || b.Col >= v.Width() {
		t.Errorf("bounds out of range: %+v %+v", a, b)
	}
}
