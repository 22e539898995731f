// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_csi.go
// Summary: CSI dispatch: one state transition per decoded control sequence.
// Usage: Called by the Parser when a CSI terminator arrives.
// Notes: Unrecognized sequences are ignored; garbage input must never
// desynchronize the interpreter.

package parser

import (
	"fmt"
	"log"
)

// ProcessCSI applies one CSI sequence. params holds the numeric parameters
// (already split on ';'), private marks a '?'-prefixed sequence, and
// intermediate is the single intermediate byte, 0 when absent.
func (v *VTerm) ProcessCSI(final rune, params []int, private bool, intermediate rune) {
	if private {
		v.processPrivateCSI(final, params)
		return
	}

	// Count parameter: missing or zero defaults to 1.
	count := func(i int) int {
		if i < len(params) && params[i] > 0 {
			return params[i]
		}
		return 1
	}
	// Mode parameter: missing defaults to def, zero is meaningful.
	arg := func(i, def int) int {
		if i < len(params) {
			return params[i]
		}
		return def
	}

	if intermediate == ' ' && final == 'q' {
		v.setCursorShape(arg(0, 0))
		return
	}

	switch final {
	case 'A':
		v.MoveRel(-count(0), 0)
	case 'B':
		v.MoveRel(count(0), 0)
	case 'C':
		v.MoveRel(0, count(0))
	case 'D':
		v.MoveRel(0, -count(0))
	case 'E':
		v.MoveRel(count(0), 0)
		v.CarriageReturn()
	case 'F':
		v.MoveRel(-count(0), 0)
		v.CarriageReturn()
	case 'G':
		v.SetCursorCol(count(0) - 1)
	case 'H', 'f':
		v.MoveCursor(count(0)-1, count(1)-1)
	case 'J':
		v.EraseInDisplay(arg(0, 0))
	case 'K':
		v.EraseInLine(arg(0, 0))
	case 'L':
		v.InsertLines(count(0))
	case 'M':
		v.DeleteLines(count(0))
	case '@':
		v.InsertBlankChars(count(0))
	case 'P':
		v.DeleteChars(count(0))
	case 'S':
		v.ScrollUpLines(count(0))
	case 'T':
		v.ScrollDownLines(count(0))
	case 'X':
		v.EraseChars(count(0))
	case 'd':
		v.SetCursorRow(count(0) - 1)
	case 'm':
		v.SGR(params)
	case 'n':
		if arg(0, 0) == 6 {
			v.reportCursorPosition()
		}
	case 'r':
		top := count(0) - 1
		bottom := v.height
		if len(params) > 1 && params[1] > 0 {
			bottom = params[1]
		}
		v.SetScrollRegion(top, bottom)
	case 's':
		v.SaveCursor()
	case 'u':
		v.RestoreCursor()
	default:
		log.Printf("parser: ignoring CSI %q params=%v", final, params)
	}
}

func (v *VTerm) processPrivateCSI(final rune, params []int) {
	switch final {
	case 'h':
		v.setPrivateMode(params)
	case 'l':
		v.resetPrivateMode(params)
	}
}

// reportCursorPosition answers DSR 6 with a CPR reply, ESC [ r ; c R
// (1-based), written straight back to the child.
func (v *VTerm) reportCursorPosition() {
	if v.WriteToPty == nil {
		return
	}
	x, y := v.Cursor()
	v.WriteToPty([]byte(fmt.Sprintf("\x1b[%d;%dR", y+1, x+1)))
}
