// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/testharness.go
// Summary: Test harness for control sequence testing.
// Usage: Used by test files to send sequences and inspect grid state.

package parser

// TestHarness bundles a VTerm with its Parser for sequence-level tests.
type TestHarness struct {
	vterm  *VTerm
	parser *Parser
}

// NewTestHarness creates a harness with the given terminal size.
func NewTestHarness(width, height int, opts ...Option) *TestHarness {
	vterm := NewVTerm(width, height, opts...)
	return &TestHarness{
		vterm:  vterm,
		parser: NewParser(vterm),
	}
}

func (h *TestHarness) VTerm() *VTerm { return h.vterm }

// Send feeds a string (text and/or control sequences) through the parser.
// Example: h.Send("\x1b[5A") sends "cursor up 5".
func (h *TestHarness) Send(seq string) {
	h.parser.Feed([]byte(seq))
}

// Cell returns the screen cell at (x, y), or a zero Cell out of bounds.
func (h *TestHarness) Cell(x, y int) Cell {
	if y < 0 || y >= h.vterm.Height() || x < 0 || x >= h.vterm.Width() {
		return Cell{}
	}
	return h.vterm.Grid()[y][x]
}

// RowString flattens a screen row to text with trailing spaces trimmed.
func (h *TestHarness) RowString(y int) string {
	if y < 0 || y >= h.vterm.Height() {
		return ""
	}
	text := []rune(rowText(h.vterm.Grid()[y]))
	for len(text) > 0 && text[len(text)-1] == ' ' {
		text = text[:len(text)-1]
	}
	return string(text)
}

// Cursor reports the clamped cursor position.
func (h *TestHarness) Cursor() (int, int) {
	return h.vterm.Cursor()
}
