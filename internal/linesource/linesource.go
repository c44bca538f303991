// Package linesource turns a byte stream into a channel of non-empty lines.
package linesource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

const (
	// DefaultBuffer is the default channel buffer size.
	DefaultBuffer = 1024

	// DefaultMaxLineSize is the default maximum size (in bytes) of a single line.
	DefaultMaxLineSize = 1024 * 1024 // 1MB
)

// Config holds tunable parameters for a Source.
type Config struct {
	BufferSize  int
	MaxLineSize int
}

// Source reads lines from an io.Reader in a background goroutine.
type Source struct {
	ch     chan string
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

// New starts reading r. The Lines channel is closed at EOF, on a read error
// or once ctx is done or Stop is called.
func New(ctx context.Context, r io.Reader, conf ...Config) *Source {
	bufferSize := DefaultBuffer
	maxLineSize := DefaultMaxLineSize
	if len(conf) > 0 {
		if conf[0].BufferSize > 0 {
			bufferSize = conf[0].BufferSize
		}
		if conf[0].MaxLineSize > 0 {
			maxLineSize = conf[0].MaxLineSize
		}
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Source{
		ch:     make(chan string, bufferSize),
		cancel: cancel,
	}
	go s.read(ctx, r, maxLineSize)
	return s
}

func (s *Source) read(ctx context.Context, r io.Reader, maxLineSize int) {
	defer close(s.ch)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	// A blocked Scan cannot observe ctx, so scanning runs in its own goroutine.
	results := make(chan string)
	go func() {
		defer close(results)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			select {
			case results <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				err = fmt.Errorf("linesource: line exceeded max size (%d bytes): %w", maxLineSize, err)
			}
			s.setErr(err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-results:
			if !ok {
				return
			}
			select {
			case s.ch <- line:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *Source) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Err returns the read error that ended the source, if any. It is only
// meaningful once Lines is closed.
func (s *Source) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Source) Lines() <-chan string { return s.ch }
func (s *Source) Stop()                { s.cancel() }
