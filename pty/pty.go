// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pty/pty.go
// Summary: Pseudo-terminal session: shell child, reader goroutine, writes.
// Usage: Spawn starts the shell and delivers Output/Exit events to the
// caller's emit function from a dedicated goroutine.
// Notes: The session handle is mutex-guarded; the grid model must only ever
// be touched by the consumer of the emitted events.

package pty

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// EventType discriminates reader events.
type EventType int

const (
	// EventOutput carries a chunk of child output, one per successful read.
	EventOutput EventType = iota
	// EventExit is terminal: the child hung up or the descriptor failed.
	// No further events follow.
	EventExit
)

// Event is what the reader goroutine delivers to the consumer.
type Event struct {
	Type EventType
	Data []byte
}

const (
	// pollTimeoutMs bounds the readiness wait so the reader can notice a
	// session teardown even when the child produces no output.
	pollTimeoutMs = 500
	readBufSize   = 8192
)

// Session owns the master side of the pseudo-terminal. Write and Resize are
// safe to call from the consumer goroutine while the reader runs.
type Session struct {
	mu     sync.Mutex
	ptmx   *os.File
	fd     int
	cmd    *exec.Cmd
	done   chan struct{}
	closed bool
}

// Spawn forks the user's shell attached to a fresh pseudo-terminal of the
// given size, switches the master descriptor to non-blocking mode and starts
// the reader goroutine. Returns the session handle and the child pid.
func Spawn(cols, rows int, command, term string, emit func(Event)) (*Session, int, error) {
	if command == "" {
		command = os.Getenv("SHELL")
	}
	if command == "" {
		command = "/bin/sh"
	}
	if term == "" {
		term = "xterm-256color"
	}

	cmd := exec.Command(command)
	cmd.Env = append(os.Environ(),
		"TERM="+term,
		"TERM_PROGRAM=texelterm",
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("start pty: %w", err)
	}

	fd := int(ptmx.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		ptmx.Close()
		return nil, 0, fmt.Errorf("set nonblocking: %w", err)
	}

	// The reader runs on its own duplicate of the descriptor so a concurrent
	// Close cannot yank the fd out from under a read.
	readerFD, err := unix.Dup(fd)
	if err != nil {
		ptmx.Close()
		return nil, 0, fmt.Errorf("dup master fd: %w", err)
	}

	s := &Session{
		ptmx: ptmx,
		fd:   fd,
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go s.readLoop(readerFD, emit)

	return s, cmd.Process.Pid, nil
}

// readLoop waits for readiness with a bounded timeout, then drains the
// descriptor until it reports "would block", emitting one Output event per
// successful read. EOF or a non-retryable error emits Exit and ends the loop.
func (s *Session) readLoop(fd int, emit func(Event)) {
	defer unix.Close(fd)

	var exitOnce sync.Once
	exit := func() {
		exitOnce.Do(func() { emit(Event{Type: EventExit}) })
	}

	buf := make([]byte, readBufSize)
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	for {
		select {
		case <-s.done:
			exit()
			return
		default:
		}

		// Re-arm the poll set each pass; revents is an out parameter.
		fds[0].Revents = 0
		n, err := unix.Poll(fds, pollTimeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			exit()
			return
		}
		if n == 0 {
			continue
		}

		for {
			n, err := unix.Read(fd, buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				emit(Event{Type: EventOutput, Data: chunk})
				continue
			}
			if n == 0 && err == nil {
				exit()
				return
			}
			if err == unix.EINTR {
				continue
			}
			if err == unix.EAGAIN {
				break
			}
			// On Linux a hangup surfaces as EIO once the child exits.
			exit()
			return
		}
	}
}

// Write sends bytes to the child. The descriptor is non-blocking, so the
// write retries on interruption, briefly sleeps on backpressure, and treats
// zero progress without a would-block signal as a fatal anomaly.
func (s *Session) Write(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("pty write: session closed")
	}
	written := 0
	for written < len(data) {
		n, err := unix.Write(s.fd, data[written:])
		if n > 0 {
			written += n
			continue
		}
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			time.Sleep(time.Millisecond)
		case err != nil:
			return fmt.Errorf("pty write: %w", err)
		default:
			return fmt.Errorf("pty write: no progress")
		}
	}
	return nil
}

// Resize issues the window-size ioctl so the child's SIGWINCH fires.
// Best effort: there is no failure path for the caller.
func (s *Session) Resize(cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if err := pty.Setsize(s.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	}); err != nil {
		log.Printf("pty: resize to %dx%d failed: %v", cols, rows, err)
	}
}

// Pid returns the child process id.
func (s *Session) Pid() int {
	return s.cmd.Process.Pid
}

// Close tears the session down: the master descriptor is closed, which
// delivers hangup to the child, and the reader goroutine stops within one
// poll timeout. Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	err := s.ptmx.Close()
	if err != nil {
		return fmt.Errorf("close pty: %w", err)
	}
	return nil
}
