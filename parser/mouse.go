// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/mouse.go
// Summary: Mouse report wire encoders (SGR and legacy X10 formats).
// Usage: Called by the UI to forward mouse events to the child when a
// tracking mode is active.

package parser

import "fmt"

// Mouse protocol button codes.
const (
	MouseButtonLeft    = 0
	MouseButtonMiddle  = 1
	MouseButtonRight   = 2
	MouseButtonRelease = 3
	MouseScrollUp      = 64
	MouseScrollDown    = 65
	// Added to the button code for motion-while-pressed reports (1002/1003).
	MouseMotionFlag = 32
)

// EncodeMouseSGR encodes a mouse event in SGR (1006) format:
// ESC [ < Pb ; Px ; Py M for press, trailing 'm' for release. Column and row
// are 0-based in, 1-based on the wire.
func EncodeMouseSGR(button, col, row int, pressed bool) []byte {
	suffix := byte('m')
	if pressed {
		suffix = 'M'
	}
	return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", button, col+1, row+1, suffix))
}

// EncodeMouseX10 encodes a mouse event in the legacy X10 format:
// ESC [ M Cb Cx Cy with each coordinate offset by 32 and capped at 223.
func EncodeMouseX10(button, col, row int) []byte {
	cap223 := func(v int) byte {
		if v > 223 {
			v = 223
		}
		return byte(32 + v)
	}
	return []byte{0x1b, '[', 'M', byte(32 + button), cap223(col + 1), cap223(row + 1)}
}

// WrapBracketedPaste surrounds pasted text with the bracketed-paste markers
// when the mode is active, so the child can tell paste from typed input.
func WrapBracketedPaste(text []byte, active bool) []byte {
	if !active {
		return text
	}
	out := make([]byte, 0, len(text)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, text...)
	out = append(out, "\x1b[201~"...)
	return out
}
