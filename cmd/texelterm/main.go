// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelterm/main.go
// Summary: tcell front end for the texelterm engine.
// Usage: Runs the user's shell in an emulated terminal inside the current
// terminal; renders the grid, encodes input, drives selection and search.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/texelterm/config"
	"github.com/framegrace/texelterm/history"
	"github.com/framegrace/texelterm/pty"
)

func main() {
	log.SetPrefix("texelterm: ")
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "texelterm must run inside a terminal")
		os.Exit(1)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "texelterm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnablePaste()

	cols, rows := screen.Size()

	var hist *history.Store
	if cfg.HistoryEnabled {
		path, err := cfg.HistoryDBPath()
		if err == nil {
			hist, err = history.Open(path)
		}
		if err != nil {
			log.Printf("history disabled: %v", err)
			hist = nil
		}
	}
	if hist != nil {
		defer hist.Close()
	}

	app := newApp(screen, cols, rows, hist)

	ptyEvents := make(chan pty.Event, 64)
	session, pid, err := pty.Spawn(cols, rows, cfg.Shell, cfg.Term, func(ev pty.Event) {
		ptyEvents <- ev
	})
	if err != nil {
		return fmt.Errorf("spawn shell: %w", err)
	}
	defer session.Close()
	log.Printf("shell started, pid %d", pid)
	app.session = session

	tcellEvents := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(tcellEvents, quit)
	defer close(quit)

	app.draw()
	for {
		select {
		case ev := <-ptyEvents:
			if ev.Type == pty.EventExit {
				return nil
			}
			app.feed(ev.Data)
			// Coalesce queued output before redrawing.
		coalesce:
			for {
				select {
				case next := <-ptyEvents:
					if next.Type == pty.EventExit {
						return nil
					}
					app.feed(next.Data)
				default:
					break coalesce
				}
			}
			app.draw()
		case ev := <-tcellEvents:
			if !app.handleEvent(ev) {
				return nil
			}
		}
	}
}
