// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelterm/app.go
// Summary: Event handling and rendering for the tcell front end.
// Usage: Single-goroutine consumer of pty output and tcell input events.

package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelterm/history"
	"github.com/framegrace/texelterm/parser"
	"github.com/framegrace/texelterm/pty"
)

const clickInterval = 400 * time.Millisecond

type app struct {
	screen  tcell.Screen
	vterm   *parser.VTerm
	parser  *parser.Parser
	search  *parser.SearchState
	session *pty.Session
	hist    *history.Store

	selecting    bool
	lastClick    time.Time
	clickCount   int
	lastButtons  tcell.ButtonMask
	pasting      bool
	pasteBuf     []byte
	titlePending bool
}

func newApp(screen tcell.Screen, cols, rows int, hist *history.Store) *app {
	a := &app{
		screen: screen,
		search: parser.NewSearchState(),
		hist:   hist,
	}
	opts := []parser.Option{
		parser.WithTitleChangeHandler(func(string) { a.titlePending = true }),
		parser.WithPtyWriter(func(b []byte) { a.write(b) }),
	}
	if hist != nil {
		opts = append(opts, parser.WithHistorySink(func(line string) {
			if err := hist.Append(line); err != nil {
				log.Printf("history append: %v", err)
			}
		}))
	}
	a.vterm = parser.NewVTerm(cols, rows, opts...)
	a.parser = parser.NewParser(a.vterm)
	return a
}

func (a *app) write(b []byte) {
	if a.session == nil {
		return
	}
	if err := a.session.Write(b); err != nil {
		log.Printf("pty write: %v", err)
	}
}

func (a *app) feed(data []byte) {
	a.parser.Feed(data)
}

// handleEvent processes one tcell event; returns false to quit.
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.vterm.Resize(cols, rows)
		if a.session != nil {
			a.session.Resize(cols, rows)
		}
		a.screen.Sync()
		a.draw()
	case *tcell.EventPaste:
		if ev.Start() {
			a.pasting = true
			a.pasteBuf = a.pasteBuf[:0]
		} else {
			a.pasting = false
			a.write(parser.WrapBracketedPaste(a.pasteBuf, a.vterm.BracketedPaste()))
		}
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	if a.pasting {
		if ev.Key() == tcell.KeyRune {
			a.pasteBuf = append(a.pasteBuf, []byte(string(ev.Rune()))...)
		} else if ev.Key() == tcell.KeyEnter {
			a.pasteBuf = append(a.pasteBuf, '\n')
		}
		return true
	}

	if a.search.Active {
		a.handleSearchKey(ev)
		a.draw()
		return true
	}

	mods := ev.Modifiers()
	switch {
	case ev.Key() == tcell.KeyF3:
		a.search.Toggle()
		a.draw()
		return true
	case ev.Key() == tcell.KeyPgUp && mods&tcell.ModShift != 0:
		a.vterm.ScrollViewPage(1)
		a.draw()
		return true
	case ev.Key() == tcell.KeyPgDn && mods&tcell.ModShift != 0:
		a.vterm.ScrollViewPage(-1)
		a.draw()
		return true
	case ev.Key() == tcell.KeyHome && mods&tcell.ModShift != 0:
		a.vterm.ScrollViewToTop()
		a.draw()
		return true
	case ev.Key() == tcell.KeyEnd && mods&tcell.ModShift != 0:
		a.vterm.ScrollViewToBottom()
		a.draw()
		return true
	}

	// Any keystroke going to the child snaps the view back to the live
	// screen and drops the selection.
	a.vterm.ScrollViewToBottom()
	a.vterm.ClearSelection()
	if b := encodeKey(ev, a.vterm.AppCursorKeys()); b != nil {
		a.write(b)
	}
	a.draw()
	return true
}

func (a *app) handleSearchKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.search.Close()
	case tcell.KeyEnter:
		a.search.NextMatch()
		a.scrollToCurrentMatch()
	case tcell.KeyUp:
		a.search.PrevMatch()
		a.scrollToCurrentMatch()
	case tcell.KeyDown:
		a.search.NextMatch()
		a.scrollToCurrentMatch()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.search.PopRune()
		a.search.Search(a.vterm)
	case tcell.KeyRune:
		a.search.PushRune(ev.Rune())
		a.search.Search(a.vterm)
	}
}

// scrollToCurrentMatch brings the focused match into the viewport.
func (a *app) scrollToCurrentMatch() {
	m, ok := a.search.CurrentMatch()
	if !ok {
		return
	}
	visStart := a.vterm.VisibleStartGlobalRow()
	if m.GlobalRow >= visStart && m.GlobalRow < visStart+a.vterm.Height() {
		return
	}
	scroll := a.vterm.TotalLines() - m.GlobalRow - a.vterm.Height()
	if scroll < 0 {
		scroll = 0
	}
	a.vterm.ScrollViewToBottom()
	a.vterm.ScrollView(scroll)
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	mode, _ := a.vterm.Mouse()

	// Hold shift to keep local selection while the child tracks the mouse.
	if mode != parser.MouseOff && ev.Modifiers()&tcell.ModShift == 0 {
		a.reportMouse(ev)
		a.lastButtons = buttons &^ (tcell.WheelUp | tcell.WheelDown)
		return
	}

	switch {
	case buttons&tcell.WheelUp != 0:
		a.vterm.ScrollView(3)
	case buttons&tcell.WheelDown != 0:
		a.vterm.ScrollView(-3)
	case buttons&tcell.Button1 != 0 && a.lastButtons&tcell.Button1 == 0:
		now := time.Now()
		if now.Sub(a.lastClick) < clickInterval {
			a.clickCount++
			if a.clickCount > 3 {
				a.clickCount = 1
			}
		} else {
			a.clickCount = 1
		}
		a.lastClick = now
		switch a.clickCount {
		case 2:
			a.vterm.SelectWordAtView(y, x)
		case 3:
			a.vterm.SelectLineAtView(y)
		default:
			a.selecting = true
			a.vterm.StartSelectionAtView(y, x)
		}
	case buttons&tcell.Button1 != 0 && a.selecting:
		a.vterm.UpdateSelectionAtView(y, x)
	case buttons&tcell.Button1 == 0 && a.lastButtons&tcell.Button1 != 0:
		a.selecting = false
	}
	a.lastButtons = buttons &^ (tcell.WheelUp | tcell.WheelDown)
	a.draw()
}

// reportMouse forwards a mouse event to the child in the negotiated wire
// format.
func (a *app) reportMouse(ev *tcell.EventMouse) {
	mode, sgr := a.vterm.Mouse()
	x, y := ev.Position()
	buttons := ev.Buttons() &^ (tcell.WheelUp | tcell.WheelDown)
	wheel := ev.Buttons() & (tcell.WheelUp | tcell.WheelDown)

	encode := func(button int, pressed bool) {
		if sgr {
			a.write(parser.EncodeMouseSGR(button, x, y, pressed))
			return
		}
		code := button
		if !pressed {
			code = parser.MouseButtonRelease
		}
		a.write(parser.EncodeMouseX10(code, x, y))
	}

	if wheel&tcell.WheelUp != 0 {
		encode(parser.MouseScrollUp, true)
	}
	if wheel&tcell.WheelDown != 0 {
		encode(parser.MouseScrollDown, true)
	}

	for _, b := range []struct {
		mask tcell.ButtonMask
		code int
	}{
		{tcell.Button1, parser.MouseButtonLeft},
		{tcell.Button3, parser.MouseButtonMiddle},
		{tcell.Button2, parser.MouseButtonRight},
	} {
		was := a.lastButtons&b.mask != 0
		is := buttons&b.mask != 0
		switch {
		case is && !was:
			encode(b.code, true)
		case !is && was:
			encode(b.code, false)
		case is && was && mode != parser.MouseNormal:
			// Motion with a held button, reported in 1002/1003.
			encode(b.code+parser.MouseMotionFlag, true)
		}
	}
	if buttons == 0 && a.lastButtons == 0 && mode == parser.MouseAny {
		encode(parser.MouseButtonRelease+parser.MouseMotionFlag, true)
	}
}
