// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/harness_test.go
// Summary: Shared assertion helpers for the sequence-level tests.

package parser

import "testing"

// FillWithPattern fills every screen row with pattern repeated horizontally,
// so each column is visually distinct (col 0 = 'A', col 1 = 'B', ...).
func (h *TestHarness) FillWithPattern(pattern string) {
	runes := []rune(pattern)
	for y := 0; y < h.vterm.Height(); y++ {
		h.vterm.MoveCursor(y, 0)
		for x := 0; x < h.vterm.Width(); x++ {
			h.vterm.placeChar(runes[x%len(runes)])
		}
	}
	h.vterm.MoveCursor(0, 0)
}

func (h *TestHarness) AssertRune(t *testing.T, x, y int, want rune) {
	t.Helper()
	got := h.Cell(x, y).Rune
	if got != want {
		t.Errorf("cell (%d,%d) = %q, want %q", x, y, got, want)
	}
}

func (h *TestHarness) AssertBlank(t *testing.T, x, y int) {
	t.Helper()
	got := h.Cell(x, y).Rune
	if got != ' ' {
		t.Errorf("cell (%d,%d) = %q, want blank", x, y, got)
	}
}

func (h *TestHarness) AssertCursor(t *testing.T, wantX, wantY int) {
	t.Helper()
	x, y := h.Cursor()
	if x != wantX || y != wantY {
		t.Errorf("cursor = (%d,%d), want (%d,%d)", x, y, wantX, wantY)
	}
}

func (h *TestHarness) AssertRow(t *testing.T, y int, want string) {
	t.Helper()
	got := h.RowString(y)
	if got != want {
		t.Errorf("row %d = %q, want %q", y, got, want)
	}
}
