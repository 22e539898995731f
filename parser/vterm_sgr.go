// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_sgr.go
// Summary: Select Graphic Rendition handling (CSI ... m).
// Usage: Part of the VTerm terminal engine.

package parser

// SGR applies a graphic rendition parameter list to the pending style.
// Unrecognized or malformed parameters are ignored without error.
func (v *VTerm) SGR(params []int) {
	if len(params) == 0 {
		v.style = DefaultStyle()
		return
	}
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			v.style = DefaultStyle()
		case p == 1:
			v.style.Attr |= AttrBold
		case p == 4:
			v.style.Attr |= AttrUnderline
		case p == 7:
			v.style.Attr |= AttrReverse
		case p == 22:
			v.style.Attr &^= AttrBold
		case p == 24:
			v.style.Attr &^= AttrUnderline
		case p == 27:
			v.style.Attr &^= AttrReverse
		case p == 39:
			v.style.FG = DefaultFG
		case p == 49:
			v.style.BG = DefaultBG
		case p >= 30 && p <= 37:
			v.style.FG = Color{Mode: ColorModeStandard, Value: uint8(p - 30)}
		case p >= 40 && p <= 47:
			v.style.BG = Color{Mode: ColorModeStandard, Value: uint8(p - 40)}
		case p >= 90 && p <= 97:
			v.style.FG = Color{Mode: ColorModeStandard, Value: uint8(p - 90 + 8)}
		case p >= 100 && p <= 107:
			v.style.BG = Color{Mode: ColorModeStandard, Value: uint8(p - 100 + 8)}
		case p == 38 || p == 48:
			c, consumed, ok := extendedColor(params[i+1:])
			if !ok {
				// A truncated color spec leaves no way to tell where it
				// ends; drop the rest rather than misread it as SGR codes.
				return
			}
			if p == 38 {
				v.style.FG = c
			} else {
				v.style.BG = c
			}
			i += consumed
		}
		i++
	}
}

// extendedColor parses the tail of a 38/48 sequence: "5;n" selects a palette
// entry, "2;r;g;b" an RGB triple. Returns the number of parameters consumed;
// a truncated spec reports not-ok and the caller discards the tail.
func extendedColor(rest []int) (Color, int, bool) {
	if len(rest) >= 2 && rest[0] == 5 {
		return Color{Mode: ColorMode256, Value: clampU8(rest[1])}, 2, true
	}
	if len(rest) >= 4 && rest[0] == 2 {
		c := Color{
			Mode: ColorModeRGB,
			R:    clampU8(rest[1]),
			G:    clampU8(rest[2]),
			B:    clampU8(rest[3]),
		}
		return c, 4, true
	}
	return Color{}, 0, false
}

func clampU8(v int) uint8 {
	return uint8(clamp(v, 0, 255))
}
