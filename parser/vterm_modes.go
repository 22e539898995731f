// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_modes.go
// Summary: DEC private mode set/reset (CSI ? Pm h / l).
// Usage: Part of the VTerm terminal engine.

package parser

// setPrivateMode handles DECSET (CSI ? Pm h) for every mode in the list.
// Mouse tracking modes are mutually exclusive: setting one replaces any other.
func (v *VTerm) setPrivateMode(params []int) {
	for _, mode := range params {
		switch mode {
		case 1:
			v.appCursorKeys = true
		case 25:
			v.cursorVisible = true
		case 1000:
			v.mouseMode = MouseNormal
		case 1002:
			v.mouseMode = MouseButton
		case 1003:
			v.mouseMode = MouseAny
		case 1006:
			v.mouseSGR = true
		case 2004:
			v.bracketedPaste = true
		case 47, 1047:
			v.enterAltScreen(false)
		case 1049:
			v.enterAltScreen(true)
		}
	}
}

// resetPrivateMode handles DECRST (CSI ? Pm l). A mouse tracking reset only
// clears the mode when it names the currently active one.
func (v *VTerm) resetPrivateMode(params []int) {
	for _, mode := range params {
		switch mode {
		case 1:
			v.appCursorKeys = false
		case 25:
			v.cursorVisible = false
		case 1000, 1002, 1003:
			if v.mouseMode == MouseMode(mode) {
				v.mouseMode = MouseOff
			}
		case 1006:
			v.mouseSGR = false
		case 2004:
			v.bracketedPaste = false
		case 47, 1047:
			v.leaveAltScreen(false)
		case 1049:
			v.leaveAltScreen(true)
		}
	}
}
