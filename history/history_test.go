// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/history_test.go
// Summary: Tests for the persistent scrollback store.

package history

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndSearch(t *testing.T) {
	s := openTestStore(t)
	lines := []string{
		"make build",
		"make test",
		"git status",
	}
	for _, l := range lines {
		if err := s.Append(l); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	got, err := s.Search("make", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].Text != "make test" || got[1].Text != "make build" {
		t.Errorf("order wrong: %q, %q", got[0].Text, got[1].Text)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	s.Append("Mixed Case Line")
	s.Flush()
	got, err := s.Search("mixed case", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("matches = %d, want 1", len(got))
	}
}

// LIKE metacharacters in the query must match literally.
func TestSearchEscapesWildcards(t *testing.T) {
	s := openTestStore(t)
	s.Append("100% done")
	s.Append("100 percent done")
	s.Flush()
	got, err := s.Search("100%", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("matches = %d, want 1 (literal %%)", len(got))
	}
	if got[0].Text != "100% done" {
		t.Errorf("got %q", got[0].Text)
	}
}

func TestBlankLinesSkipped(t *testing.T) {
	s := openTestStore(t)
	s.Append("")
	s.Append("   ")
	s.Append("real")
	s.Flush()
	n, err := s.Len()
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 1 {
		t.Errorf("len = %d, want 1", n)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Append("persisted line")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, err := s2.Search("persisted", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("matches after reopen = %d, want 1", len(got))
	}
}

func TestSearchLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 10; i++ {
		s.Append("repeat line")
	}
	s.Flush()
	got, err := s.Search("repeat", 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("matches = %d, want 3", len(got))
	}
}

func TestAppendAfterClose(t *testing.T) {
	s := openTestStore(t)
	s.Close()
	if err := s.Append("too late"); err == nil {
		t.Error("append after close should fail")
	}
}
