// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_scroll.go
// Summary: Scrolling: scrollback eviction, region scroll, view scrolling.
// Usage: Part of the VTerm terminal engine.

package parser

// scrollUp moves the screen up by n lines. On the primary screen the topmost
// row is pushed into scrollback (evicting the oldest row once the limit is
// reached); on the alternate screen scrolled-off rows are discarded. When the
// viewport is scrolled back it follows the content so the visible rows stay
// put.
func (v *VTerm) scrollUp(lines int) {
	for i := 0; i < lines; i++ {
		first := v.screen[0]
		if !v.inAltScreen {
			if len(v.scrollback) == ScrollbackLimit {
				v.scrollback = v.scrollback[1:]
			}
			v.scrollback = append(v.scrollback, first)
			if v.historySink != nil {
				v.historySink(rowText(first))
			}
		}
		copy(v.screen, v.screen[1:])
		v.screen[v.height-1] = newRow(v.width)
	}
	if v.viewScroll > 0 {
		v.viewScroll = min(v.viewScroll+lines, len(v.scrollback))
	}
}

// ScrollUpLines implements SU (CSI S).
func (v *VTerm) ScrollUpLines(lines int) {
	v.scrollUp(lines)
}

// ScrollDownLines implements SD (CSI T): the screen shifts down, blank rows
// appear at the top, the bottom rows fall off. Scrollback is not involved.
func (v *VTerm) ScrollDownLines(lines int) {
	lines = min(lines, v.height)
	for i := 0; i < lines; i++ {
		copy(v.screen[1:], v.screen[:v.height-1])
		v.screen[0] = newRow(v.width)
	}
}

// ReverseIndex moves the cursor up one row; at the top of the scroll region
// it instead scrolls the region down by one, inserting a blank row at the
// region top and dropping the region's bottom row. This is a region-local
// scroll, distinct from scrollback scrolling.
func (v *VTerm) ReverseIndex() {
	if v.cursorY == v.scrollTop {
		bottom := min(v.scrollBottom, v.height)
		if bottom > v.scrollTop+1 {
			copy(v.screen[v.scrollTop+1:bottom], v.screen[v.scrollTop:bottom-1])
			v.screen[v.scrollTop] = newRow(v.width)
		}
	} else if v.cursorY > 0 {
		v.cursorY--
	}
}

// SetScrollRegion sets the scroll region from 0-indexed top (inclusive) and
// bottom (exclusive), then homes the cursor (DECSTBM).
func (v *VTerm) SetScrollRegion(top, bottom int) {
	bottom = min(bottom, v.height)
	if top < bottom {
		v.scrollTop = top
		v.scrollBottom = bottom
	}
	v.cursorX = 0
	v.cursorY = 0
}

// ClearScrollback drops all history and snaps the viewport to the live screen.
func (v *VTerm) ClearScrollback() {
	v.scrollback = nil
	v.viewScroll = 0
	if v.selection != nil {
		v.selection.Anchor = v.clampPos(v.selection.Anchor)
		v.selection.Focus = v.clampPos(v.selection.Focus)
	}
}

// ViewScroll returns the current backward offset into history.
func (v *VTerm) ViewScroll() int { return v.viewScroll }

// ScrollView moves the viewport by delta rows into history (positive =
// further back), clamped to [0, scrollback length].
func (v *VTerm) ScrollView(delta int) {
	next := v.viewScroll + delta
	if next < 0 {
		next = 0
	}
	if next > len(v.scrollback) {
		next = len(v.scrollback)
	}
	v.viewScroll = next
}

// ScrollViewPage moves the viewport by whole screens.
func (v *VTerm) ScrollViewPage(pages int) {
	v.ScrollView(pages * v.height)
}

// ScrollViewToTop jumps to the oldest history row.
func (v *VTerm) ScrollViewToTop() {
	v.viewScroll = len(v.scrollback)
}

// ScrollViewToBottom snaps the viewport back to the live screen.
func (v *VTerm) ScrollViewToBottom() {
	v.viewScroll = 0
}

// enterAltScreen saves the primary screen (and on save=true the cursor) and
// swaps in a blank buffer. Re-entering while already active is a no-op.
func (v *VTerm) enterAltScreen(saveCursor bool) {
	if v.inAltScreen {
		return
	}
	v.savedPrimary = v.screen
	if saveCursor {
		v.altSavedX, v.altSavedY = v.cursorX, v.cursorY
	}
	v.screen = newGrid(v.width, v.height)
	v.cursorX = 0
	v.cursorY = 0
	v.inAltScreen = true
}

// leaveAltScreen restores the saved primary screen content. A resize while
// the alternate screen was active drops the saved copy, in which case the
// current (blanked) grid is kept.
func (v *VTerm) leaveAltScreen(restoreCursor bool) {
	if !v.inAltScreen {
		return
	}
	if v.savedPrimary != nil {
		v.screen = v.savedPrimary
		v.savedPrimary = nil
	}
	if restoreCursor {
		v.cursorX = min(v.altSavedX, v.width-1)
		v.cursorY = min(v.altSavedY, v.height-1)
	}
	v.inAltScreen = false
}
