// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/search.go
// Summary: In-memory text search over scrollback + screen.
// Usage: Rebuilt on every query edit; the UI highlights the match list.
// Notes: A full rescan is acceptable with the bounded scrollback.

package parser

import "unicode"

// Match locates one occurrence: [ColStart, ColEnd) on a global row.
type Match struct {
	GlobalRow int
	ColStart  int
	ColEnd    int
}

// SearchState holds the query and the navigable match list.
type SearchState struct {
	Active  bool
	Query   string
	Matches []Match
	Current int
}

func NewSearchState() *SearchState {
	return &SearchState{}
}

// Toggle opens or closes search mode; closing discards the query and matches.
func (s *SearchState) Toggle() {
	s.Active = !s.Active
	if !s.Active {
		s.reset()
	}
}

func (s *SearchState) Close() {
	s.Active = false
	s.reset()
}

func (s *SearchState) reset() {
	s.Query = ""
	s.Matches = nil
	s.Current = 0
}

func (s *SearchState) PushRune(r rune) {
	s.Query += string(r)
}

func (s *SearchState) PopRune() {
	if s.Query == "" {
		return
	}
	runes := []rune(s.Query)
	s.Query = string(runes[:len(runes)-1])
}

// Search rebuilds the match list by scanning scrollback rows then screen rows,
// case-folded. Matches are found left to right; the scan advances one column
// past each match start, so adjacent matches may overlap.
func (s *SearchState) Search(v *VTerm) {
	s.Matches = s.Matches[:0]
	if s.Query == "" {
		s.Current = 0
		return
	}
	q := foldRunes([]rune(s.Query))
	for globalRow := 0; globalRow < v.TotalLines(); globalRow++ {
		row := v.LineAtGlobal(globalRow)
		if row == nil {
			break
		}
		text := foldRow(row)
		start := 0
		for {
			col := indexRunes(text, q, start)
			if col < 0 {
				break
			}
			s.Matches = append(s.Matches, Match{
				GlobalRow: globalRow,
				ColStart:  col,
				ColEnd:    col + len(q),
			})
			start = col + 1
		}
	}
	if len(s.Matches) > 0 {
		s.Current = min(s.Current, len(s.Matches)-1)
	} else {
		s.Current = 0
	}
}

// foldRow flattens a row to case-folded runes, one per column, so match
// offsets line up with grid columns. Wide-continuation cells contribute their
// placeholder space and therefore never match on their own.
func foldRow(row []Cell) []rune {
	runes := make([]rune, len(row))
	for i, cell := range row {
		runes[i] = unicode.ToLower(cell.Rune)
	}
	return runes
}

func foldRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// indexRunes finds needle in haystack at or after from, returning a column
// offset or -1.
func indexRunes(haystack, needle []rune, from int) int {
	for i := from; i+len(needle) <= len(haystack); i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

// NextMatch cycles forward with wraparound; empty match lists stay at 0.
func (s *SearchState) NextMatch() {
	if len(s.Matches) > 0 {
		s.Current = (s.Current + 1) % len(s.Matches)
	}
}

// PrevMatch cycles backward with wraparound.
func (s *SearchState) PrevMatch() {
	if len(s.Matches) == 0 {
		return
	}
	if s.Current == 0 {
		s.Current = len(s.Matches) - 1
	} else {
		s.Current--
	}
}

// CurrentMatch returns the focused match, if any.
func (s *SearchState) CurrentMatch() (Match, bool) {
	if s.Current < len(s.Matches) {
		return s.Matches[s.Current], true
	}
	return Match{}, false
}

// IsHighlighted reports whether any match covers (globalRow, col).
func (s *SearchState) IsHighlighted(globalRow, col int) bool {
	for _, m := range s.Matches {
		if m.GlobalRow == globalRow && col >= m.ColStart && col < m.ColEnd {
			return true
		}
	}
	return false
}

// IsCurrentHighlight reports whether the focused match covers (globalRow, col).
func (s *SearchState) IsCurrentHighlight(globalRow, col int) bool {
	m, ok := s.CurrentMatch()
	return ok && m.GlobalRow == globalRow && col >= m.ColStart && col < m.ColEnd
}
