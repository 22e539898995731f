// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/cell.go
// Summary: Cell, color and style types for the terminal grid.
// Usage: Consumed by the terminal engine when decoding VT sequences.
// Notes: Keeps grid data concerns isolated from rendering.

package parser

type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrUnderline
	AttrReverse
)

// String returns a human-readable representation of the attribute flags.
func (a Attribute) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	if a&AttrBold != 0 {
		parts = append(parts, "bold")
	}
	if a&AttrUnderline != 0 {
		parts = append(parts, "underline")
	}
	if a&AttrReverse != 0 {
		parts = append(parts, "reverse")
	}
	if len(parts) == 0 {
		return "unknown"
	}
	result := parts[0]
	for i := 1; i < len(parts); i++ {
		result += "|" + parts[i]
	}
	return result
}

// ColorMode defines the type of color stored.
type ColorMode int

const (
	ColorModeDefault  ColorMode = iota // Default terminal foreground/background
	ColorModeStandard                  // The 16 basic ANSI colors
	ColorMode256                       // 256-color palette
	ColorModeRGB                       // 24-bit "true" color
)

// Color represents a color in potentially different modes.
type Color struct {
	Mode    ColorMode
	Value   uint8 // Palette index for ColorMode256
	R, G, B uint8 // Channel values for ColorModeRGB
}

var (
	DefaultFG = Color{Mode: ColorModeDefault}
	DefaultBG = Color{Mode: ColorModeDefault}
)

// Style is the pending rendition applied to newly written cells.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns the reset rendition (default colors, no attributes).
func DefaultStyle() Style {
	return Style{FG: DefaultFG, BG: DefaultBG}
}

// Cell represents a single character cell on the screen.
// A wide (2-column) character occupies two cells: the first holds the rune,
// the second is a WideCont placeholder that is never rendered, copied into
// selection text, or matched by search on its own.
type Cell struct {
	Rune     rune
	FG       Color
	BG       Color
	Attr     Attribute
	WideCont bool
}

// blankCell returns the fill cell for erase operations. Erased cells inherit
// the current pending colors, matching real terminal behavior.
func blankCell(s Style) Cell {
	return Cell{Rune: ' ', FG: s.FG, BG: s.BG}
}

// RGB resolves a Color to 8-bit channel values using the standard xterm
// palette: 16 ANSI colors, the 6x6x6 cube and the 24-step grayscale ramp.
// Default colors resolve to the engine-wide defaults; a renderer that has its
// own theme should special-case ColorModeDefault before calling this.
func (c Color) RGB() (uint8, uint8, uint8) {
	switch c.Mode {
	case ColorModeRGB:
		return c.R, c.G, c.B
	case ColorModeStandard, ColorMode256:
		return ansi256(c.Value)
	default:
		return defaultFGRGB()
	}
}

func defaultFGRGB() (uint8, uint8, uint8) { return 0xe6, 0xe6, 0xe6 }

func ansi256(idx uint8) (uint8, uint8, uint8) {
	switch {
	case idx < 16:
		c := base16[idx]
		return c[0], c[1], c[2]
	case idx < 232:
		i := idx - 16
		cv := func(v uint8) uint8 {
			if v == 0 {
				return 0
			}
			return 55 + v*40
		}
		return cv(i / 36), cv((i % 36) / 6), cv(i % 6)
	default:
		g := 8 + (idx-232)*10
		return g, g, g
	}
}

// base16 follows the common xterm defaults for the first 16 palette slots.
var base16 = [16][3]uint8{
	{0x00, 0x00, 0x00},
	{0xcd, 0x31, 0x31},
	{0x0d, 0xbc, 0x79},
	{0xe5, 0xe5, 0x10},
	{0x24, 0x72, 0xc8},
	{0xbc, 0x3f, 0xbc},
	{0x11, 0xa8, 0xcd},
	{0xe5, 0xe5, 0xe5},
	{0x66, 0x66, 0x66},
	{0xf1, 0x4c, 0x4c},
	{0x23, 0xd1, 0x8b},
	{0xf5, 0xf5, 0x43},
	{0x3b, 0x8e, 0xff},
	{0xd6, 0x70, 0xd6},
	{0x29, 0xb8, 0xdb},
	{0xff, 0xff, 0xff},
}
