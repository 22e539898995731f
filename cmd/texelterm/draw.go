// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelterm/draw.go
// Summary: Renders the visible grid, selection, and search overlays to tcell.

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelterm/parser"
)

func mapColor(c parser.Color) tcell.Color {
	if c.Mode == parser.ColorModeDefault {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func cellStyle(c parser.Cell) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(mapColor(c.FG)).
		Background(mapColor(c.BG))
	style = style.Bold(c.Attr&parser.AttrBold != 0)
	style = style.Underline(c.Attr&parser.AttrUnderline != 0)
	style = style.Reverse(c.Attr&parser.AttrReverse != 0)
	return style
}

func cursorStyle(shape parser.CursorShape) tcell.CursorStyle {
	switch shape {
	case parser.CursorUnderline:
		return tcell.CursorStyleBlinkingUnderline
	case parser.CursorBeam:
		return tcell.CursorStyleBlinkingBar
	default:
		return tcell.CursorStyleBlinkingBlock
	}
}

func (a *app) draw() {
	v := a.vterm
	width, height := v.Width(), v.Height()
	visStart := v.VisibleStartGlobalRow()

	for y := 0; y < height; y++ {
		line := v.VisibleLine(y)
		globalRow := visStart + y
		for x := 0; x < width; x++ {
			if x >= len(line) {
				a.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
				continue
			}
			cell := line[x]
			if cell.WideCont {
				continue
			}
			style := cellStyle(cell)
			switch {
			case a.search.IsCurrentHighlight(globalRow, x):
				style = style.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack)
			case a.search.IsHighlighted(globalRow, x):
				style = style.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
			case v.IsSelected(globalRow, x):
				style = style.Reverse(true)
			}
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			a.screen.SetContent(x, y, r, nil, style)
		}
	}

	if a.search.Active {
		a.drawSearchBar()
	}

	if v.CursorVisible() && v.ViewScroll() == 0 && !a.search.Active {
		cx, cy := v.Cursor()
		a.screen.ShowCursor(cx, cy)
		a.screen.SetCursorStyle(cursorStyle(v.CursorShape()))
	} else {
		a.screen.HideCursor()
	}

	if v.Bell() {
		a.screen.Beep()
	}
	if a.titlePending || v.TitleDirty() {
		a.titlePending = false
		a.screen.SetTitle(v.Title())
	}

	a.screen.Show()
}

// drawSearchBar paints the query prompt over the bottom row.
func (a *app) drawSearchBar() {
	v := a.vterm
	y := v.Height() - 1
	style := tcell.StyleDefault.Reverse(true)
	label := "/" + a.search.Query
	if n := len(a.search.Matches); n > 0 {
		label = fmt.Sprintf("/%s  [%d/%d]", a.search.Query, a.search.Current+1, n)
	}
	runes := []rune(label)
	for x := 0; x < v.Width(); x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		a.screen.SetContent(x, y, r, nil, style)
	}
}
