// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pty/pty_test.go
// Summary: Integration tests spawning real child processes on a pty.

package pty

import (
	"bytes"
	"testing"
	"time"
)

func collectEvents(t *testing.T) (func(Event), <-chan Event) {
	t.Helper()
	ch := make(chan Event, 64)
	return func(ev Event) { ch <- ev }, ch
}

func waitForExit(t *testing.T, ch <-chan Event, timeout time.Duration) []byte {
	t.Helper()
	var out bytes.Buffer
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-ch:
			switch ev.Type {
			case EventOutput:
				out.Write(ev.Data)
			case EventExit:
				return out.Bytes()
			}
		case <-deadline:
			t.Fatalf("no exit event within %v; got %q so far", timeout, out.String())
		}
	}
}

func TestSpawnShortLivedChild(t *testing.T) {
	emit, ch := collectEvents(t)
	s, pid, err := Spawn(80, 24, "/bin/true", "", emit)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	defer s.Close()
	if pid <= 0 {
		t.Errorf("pid = %d, want > 0", pid)
	}
	waitForExit(t, ch, 5*time.Second)
}

func TestWriteReachesChild(t *testing.T) {
	emit, ch := collectEvents(t)
	s, _, err := Spawn(80, 24, "/bin/cat", "", emit)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	defer s.Close()

	if err := s.Write([]byte("roundtrip\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	// cat echoes the line back; the pty line discipline may echo it too.
	deadline := time.After(5 * time.Second)
	var out bytes.Buffer
	for !bytes.Contains(out.Bytes(), []byte("roundtrip")) {
		select {
		case ev := <-ch:
			if ev.Type == EventOutput {
				out.Write(ev.Data)
			}
		case <-deadline:
			t.Fatalf("echo not seen, got %q", out.String())
		}
	}
}

func TestEmptyWriteIsNoop(t *testing.T) {
	emit, _ := collectEvents(t)
	s, _, err := Spawn(80, 24, "/bin/cat", "", emit)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	defer s.Close()
	if err := s.Write(nil); err != nil {
		t.Errorf("empty write: %v", err)
	}
}

func TestResizeDoesNotDisturbSession(t *testing.T) {
	emit, _ := collectEvents(t)
	s, _, err := Spawn(80, 24, "/bin/cat", "", emit)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	defer s.Close()
	s.Resize(120, 40)
	if err := s.Write([]byte("still alive\n")); err != nil {
		t.Errorf("write after resize: %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	emit, _ := collectEvents(t)
	s, _, err := Spawn(80, 24, "/bin/cat", "", emit)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}

// A closed master ends the child; the reader must emit exactly one exit.
func TestCloseEmitsSingleExit(t *testing.T) {
	emit, ch := collectEvents(t)
	s, _, err := Spawn(80, 24, "/bin/cat", "", emit)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	s.Close()

	waitForExit(t, ch, 5*time.Second)

	// No second exit may follow.
	quiet := time.After(time.Second)
	for {
		select {
		case ev := <-ch:
			if ev.Type == EventExit {
				t.Fatal("duplicate exit event")
			}
		case <-quiet:
			return
		}
	}
}
