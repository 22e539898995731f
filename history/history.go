// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/history.go
// Summary: SQLite-backed persistent index of scrollback lines.
// Usage: Wired to the terminal's history sink; rows entering scrollback are
// appended in batches and remain searchable across sessions.

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// batchSize is the number of lines accumulated before a flush.
	batchSize = 64
	// batchTimeout flushes a partial batch that has been sitting too long.
	batchTimeout = 5 * time.Second
)

// Line is one indexed scrollback row.
type Line struct {
	ID        int64
	Timestamp time.Time
	Text      string
}

// Store appends and searches terminal history in a SQLite database.
type Store struct {
	db *sql.DB

	mu        sync.Mutex
	pending   []pendingLine
	lastFlush time.Time
	closed    bool
}

type pendingLine struct {
	ts   time.Time
	text string
}

// Open creates or opens the history database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS lines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts INTEGER NOT NULL,
			text TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS lines_ts ON lines(ts);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db, lastFlush: time.Now()}, nil
}

// Append queues one line for indexing. Blank lines are skipped. The batch is
// flushed once it is full or stale.
func (s *Store) Append(text string) error {
	if strings.TrimRight(text, " ") == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("history: store closed")
	}
	s.pending = append(s.pending, pendingLine{ts: time.Now(), text: text})
	if len(s.pending) >= batchSize || time.Since(s.lastFlush) > batchTimeout {
		return s.flushLocked()
	}
	return nil
}

// Flush writes all queued lines.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	if len(s.pending) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("history flush: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO lines (ts, text) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("history flush: %w", err)
	}
	for _, l := range s.pending {
		if _, err := stmt.Exec(l.ts.UnixMilli(), strings.TrimRight(l.text, " ")); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("history insert: %w", err)
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("history commit: %w", err)
	}
	s.pending = s.pending[:0]
	s.lastFlush = time.Now()
	return nil
}

// Search runs a case-insensitive substring query, newest lines first.
func (s *Store) Search(query string, limit int) ([]Line, error) {
	if err := s.Flush(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}
	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.Query(
		`SELECT id, ts, text FROM lines
		 WHERE text LIKE ? ESCAPE '\' COLLATE NOCASE
		 ORDER BY id DESC LIMIT ?`,
		pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history search: %w", err)
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		var ts int64
		if err := rows.Scan(&l.ID, &ts, &l.Text); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		l.Timestamp = time.UnixMilli(ts)
		out = append(out, l)
	}
	return out, rows.Err()
}

// Len reports the number of indexed lines, counting queued ones.
func (s *Store) Len() (int, error) {
	if err := s.Flush(); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM lines`).Scan(&n); err != nil {
		return 0, fmt.Errorf("history count: %w", err)
	}
	return n, nil
}

// Close flushes queued lines and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	err := s.flushLocked()
	s.closed = true
	s.mu.Unlock()
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}

func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(q)
}
