// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/parser.go
// Summary: VT100/ANSI byte-stream tokenizer feeding the VTerm.
// Usage: Feed raw PTY output through Feed; state survives chunk boundaries.
// Notes: Keeps parsing concerns isolated from rendering.

package parser

import (
	"strconv"
	"unicode/utf8"
)

type State int

const (
	StateGround State = iota
	StateEscape
	StateCSI
	StateOSC
	StateCharset
	StateDCS
	StateDCSEscape
)

// Parser decodes the control-sequence stream and applies exactly one VTerm
// transition per decoded event.
type Parser struct {
	state        State
	vterm        *VTerm
	params       []int
	currentParam int
	private      bool
	intermediate rune
	oscBuffer    []rune
	partial      []byte // undecoded UTF-8 tail from the previous chunk
}

func NewParser(v *VTerm) *Parser {
	return &Parser{
		state:     StateGround,
		vterm:     v,
		params:    make([]int, 0, 16),
		oscBuffer: make([]rune, 0, 128),
	}
}

// Feed decodes a chunk of PTY output. Chunk boundaries may split UTF-8
// sequences; the undecoded tail is carried into the next call.
func (p *Parser) Feed(data []byte) {
	buf := data
	if len(p.partial) > 0 {
		buf = append(p.partial, data...)
		p.partial = nil
	}
	for len(buf) > 0 {
		if buf[0] < utf8.RuneSelf {
			p.Parse(rune(buf[0]))
			buf = buf[1:]
			continue
		}
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError && size == 1 {
			if !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
				// Incomplete sequence at the chunk end: wait for more bytes.
				p.partial = append(p.partial, buf...)
				return
			}
			// Genuinely invalid byte: skip it.
			buf = buf[1:]
			continue
		}
		p.Parse(r)
		buf = buf[size:]
	}
}

// Parse processes one decoded rune through the state machine.
func (p *Parser) Parse(r rune) {
	switch p.state {
	case StateGround:
		switch r {
		case 0x1b:
			p.state = StateEscape
		case '\n', 0x0b:
			p.vterm.LineFeed()
		case '\r':
			p.vterm.CarriageReturn()
		case '\b':
			p.vterm.Backspace()
		case '\t':
			p.vterm.Tab()
		case 0x07:
			p.vterm.bell = true
		case 0x0c:
			p.vterm.ClearAll()
		default:
			if r >= ' ' {
				p.vterm.placeChar(r)
			}
		}
	case StateEscape:
		switch r {
		case '[':
			p.state = StateCSI
			p.params = p.params[:0]
			p.currentParam = 0
			p.private = false
			p.intermediate = 0
		case ']':
			p.state = StateOSC
			p.oscBuffer = p.oscBuffer[:0]
		case 'P':
			p.state = StateDCS
		case 'D':
			p.vterm.LineFeed()
			p.state = StateGround
		case 'E':
			p.vterm.NextLine()
			p.state = StateGround
		case 'M':
			p.vterm.ReverseIndex()
			p.state = StateGround
		case 'c':
			p.vterm.Reset()
			p.state = StateGround
		case '(', ')':
			p.state = StateCharset
		default:
			p.state = StateGround
		}
	case StateCSI:
		switch {
		case r >= '0' && r <= '9':
			p.currentParam = p.currentParam*10 + int(r-'0')
		case r == ';':
			p.params = append(p.params, p.currentParam)
			p.currentParam = 0
		case r >= '<' && r <= '?':
			p.private = true
		case r >= ' ' && r <= '/':
			p.intermediate = r
		case r >= '@' && r <= '~':
			p.params = append(p.params, p.currentParam)
			p.vterm.ProcessCSI(r, p.params, p.private, p.intermediate)
			p.state = StateGround
		case r == 0x1b:
			// A stray ESC aborts the sequence and starts a new one.
			p.state = StateEscape
		}
	case StateOSC:
		if r == 0x07 || r == 0x1b { // terminated by BEL or by ST (ESC \)
			p.handleOSC(p.oscBuffer)
			p.state = StateGround
			if r == 0x1b {
				p.Parse(r)
			}
		} else {
			p.oscBuffer = append(p.oscBuffer, r)
		}
	case StateDCS:
		// DCS payloads (tmux passthrough etc.) are accepted and dropped, so
		// only the state is tracked; nothing is buffered.
		if r == 0x1b {
			p.state = StateDCSEscape
		}
	case StateDCSEscape:
		if r == '\\' {
			p.state = StateGround
		} else {
			p.state = StateDCS
		}
	case StateCharset:
		p.state = StateGround
	}
}

// handleOSC processes an Operating System Command. Commands 0 and 2 set the
// window title; everything else is ignored.
func (p *Parser) handleOSC(sequence []rune) {
	parts := splitRunesN(sequence, ';', 2)
	if len(parts) < 2 {
		return
	}
	command, err := strconv.Atoi(string(parts[0]))
	if err != nil {
		return
	}
	switch command {
	case 0, 2:
		p.vterm.SetTitle(string(parts[1]))
	}
}

func splitRunesN(r []rune, sep rune, n int) [][]rune {
	if n <= 1 {
		return [][]rune{r}
	}
	res := make([][]rune, 0, n)
	start := 0
	count := 1
	for i, ru := range r {
		if ru == sep && count < n {
			res = append(res, r[start:i])
			start = i + 1
			count++
		}
	}
	res = append(res, r[start:])
	return res
}
