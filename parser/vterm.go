// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm.go
// Summary: VTerm terminal state: screen grid, scrollback, cursor, modes.
// Usage: Mutated by the Parser while decoding VT sequences; read by the UI.
// Notes: Not goroutine-safe; a single consumer owns the instance.

package parser

// ScrollbackLimit bounds the history ring. Pushing past the limit evicts the
// oldest row (FIFO).
const ScrollbackLimit = 2000

// CursorShape selects how the UI draws the cursor (DECSCUSR).
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBeam
)

// MouseMode is the active mouse tracking mode (DECSET 1000/1002/1003).
type MouseMode int

const (
	MouseOff    MouseMode = 0
	MouseNormal MouseMode = 1000
	MouseButton MouseMode = 1002
	MouseAny    MouseMode = 1003
)

// VTerm holds the state of a virtual terminal: the active screen, the bounded
// scrollback, cursor, pending style, selection and per-session protocol modes.
type VTerm struct {
	width, height int

	screen     [][]Cell
	scrollback [][]Cell // oldest row first, len <= ScrollbackLimit

	cursorX, cursorY           int // cursorX may equal width: pending wrap
	savedCursorX, savedCursorY int

	style Style

	selection  *Selection
	viewScroll int // 0 = live screen, >0 = rows scrolled back into history

	title        string
	titleChanged bool
	bell         bool

	cursorShape   CursorShape
	cursorVisible bool

	appCursorKeys  bool
	mouseMode      MouseMode
	mouseSGR       bool
	bracketedPaste bool

	inAltScreen  bool
	savedPrimary [][]Cell
	altSavedX    int
	altSavedY    int

	// Scroll region, 0-indexed, bottom exclusive.
	scrollTop    int
	scrollBottom int

	TitleChanged func(string)
	WriteToPty   func([]byte)
	historySink  func(string)
}

type Option func(*VTerm)

// WithTitleChangeHandler sets a callback invoked when OSC 0/2 changes the title.
func WithTitleChangeHandler(handler func(string)) Option {
	return func(v *VTerm) { v.TitleChanged = handler }
}

// WithPtyWriter sets a callback for writing replies (DSR etc.) back to the PTY.
func WithPtyWriter(writer func([]byte)) Option {
	return func(v *VTerm) { v.WriteToPty = writer }
}

// WithHistorySink sets a callback invoked with the text of every row that is
// pushed into scrollback, in eviction order. Used for persistent history.
func WithHistorySink(sink func(string)) Option {
	return func(v *VTerm) { v.historySink = sink }
}

// NewVTerm creates a terminal of the given size. Dimensions below 1 are
// clamped to 1.
func NewVTerm(width, height int, opts ...Option) *VTerm {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v := &VTerm{
		width:         width,
		height:        height,
		screen:        newGrid(width, height),
		style:         DefaultStyle(),
		cursorVisible: true,
		scrollTop:     0,
		scrollBottom:  height,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func newGrid(width, height int) [][]Cell {
	grid := make([][]Cell, height)
	for y := range grid {
		grid[y] = newRow(width)
	}
	return grid
}

func newRow(width int) []Cell {
	row := make([]Cell, width)
	for x := range row {
		row[x] = Cell{Rune: ' ', FG: DefaultFG, BG: DefaultBG}
	}
	return row
}

func (v *VTerm) Width() int  { return v.width }
func (v *VTerm) Height() int { return v.height }

// Grid exposes the active screen for rendering.
func (v *VTerm) Grid() [][]Cell { return v.screen }

// Cursor returns the cursor position, with the column clamped into the grid
// (the internal column may sit one past the last column while a wrap is
// pending).
func (v *VTerm) Cursor() (int, int) {
	x := v.cursorX
	if x >= v.width {
		x = v.width - 1
	}
	return x, v.cursorY
}

func (v *VTerm) CursorVisible() bool           { return v.cursorVisible }
func (v *VTerm) SetCursorVisible(visible bool) { v.cursorVisible = visible }
func (v *VTerm) CursorShape() CursorShape      { return v.cursorShape }
func (v *VTerm) AppCursorKeys() bool           { return v.appCursorKeys }
func (v *VTerm) Mouse() (MouseMode, bool)      { return v.mouseMode, v.mouseSGR }
func (v *VTerm) BracketedPaste() bool          { return v.bracketedPaste }
func (v *VTerm) AltScreenActive() bool         { return v.inAltScreen }
func (v *VTerm) ScrollRegion() (top, bot int)  { return v.scrollTop, v.scrollBottom }

// Bell reports and clears the bell flag.
func (v *VTerm) Bell() bool {
	b := v.bell
	v.bell = false
	return b
}

func (v *VTerm) Title() string { return v.title }

// TitleDirty reports and clears the title-changed flag.
func (v *VTerm) TitleDirty() bool {
	d := v.titleChanged
	v.titleChanged = false
	return d
}

func (v *VTerm) SetTitle(title string) {
	v.title = title
	v.titleChanged = true
	if v.TitleChanged != nil {
		v.TitleChanged(title)
	}
}

// Resize reallocates the screen to the new dimensions, copying the
// overlapping top-left submatrix. Scrollback is left untouched; cursor,
// scroll region and view scroll are re-clamped.
func (v *VTerm) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == v.width && height == v.height {
		return
	}

	newScreen := newGrid(width, height)
	copyRows := min(v.height, height)
	copyCols := min(v.width, width)
	for y := 0; y < copyRows; y++ {
		copy(newScreen[y][:copyCols], v.screen[y][:copyCols])
	}

	v.screen = newScreen
	v.width = width
	v.height = height
	v.cursorY = min(v.cursorY, height-1)
	v.cursorX = min(v.cursorX, width-1)
	v.scrollTop = 0
	v.scrollBottom = height
	v.viewScroll = min(v.viewScroll, len(v.scrollback))
	v.savedPrimary = nil
	if v.selection != nil {
		v.selection.Anchor = v.clampPos(v.selection.Anchor)
		v.selection.Focus = v.clampPos(v.selection.Focus)
	}
}

// Reset restores the terminal to its initial state: screen and scrollback
// cleared, cursor homed (RIS).
func (v *VTerm) Reset() {
	v.ClearAll()
	v.ClearScrollback()
	v.style = DefaultStyle()
	v.scrollTop = 0
	v.scrollBottom = v.height
}

// TotalLines is the combined scrollback + screen extent used for global row
// addressing (selection, search).
func (v *VTerm) TotalLines() int {
	return len(v.scrollback) + v.height
}

// ScrollbackLen returns the number of rows currently held in history.
func (v *VTerm) ScrollbackLen() int { return len(v.scrollback) }

// LineAtGlobal resolves a global row index across scrollback then screen.
func (v *VTerm) LineAtGlobal(row int) []Cell {
	if row < 0 {
		return nil
	}
	if row < len(v.scrollback) {
		return v.scrollback[row]
	}
	row -= len(v.scrollback)
	if row < v.height {
		return v.screen[row]
	}
	return nil
}

// VisibleStartGlobalRow is the global row shown at the top of the viewport.
func (v *VTerm) VisibleStartGlobalRow() int {
	start := v.TotalLines() - v.height - v.viewScroll
	if start < 0 {
		start = 0
	}
	return start
}

// VisibleLine returns the row at a viewport-relative index, honoring the
// current view scroll.
func (v *VTerm) VisibleLine(viewRow int) []Cell {
	return v.LineAtGlobal(v.VisibleStartGlobalRow() + viewRow)
}

// CursorViewRow reports the viewport row holding the cursor, or -1 when the
// viewport is scrolled back into history.
func (v *VTerm) CursorViewRow() int {
	if v.viewScroll != 0 {
		return -1
	}
	return v.cursorY
}

// rowText flattens a row to a string, dropping wide-continuation placeholders.
func rowText(row []Cell) string {
	runes := make([]rune, 0, len(row))
	for _, cell := range row {
		if cell.WideCont {
			continue
		}
		runes = append(runes, cell.Rune)
	}
	return string(runes)
}
