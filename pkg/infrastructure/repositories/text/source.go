package text

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// Source splits a line stream into two phases: design lines up to the first
// blank line, then part lines. Both phases are read lazily from the same
// scanner, so PartLines continues where DesignLines stopped.
type Source struct {
	scanner     *bufio.Scanner
	line        int
	designsDone bool
	err         error
}

// NewSource wraps r in a two-phase line source
func NewSource(r io.Reader) *Source {
	return &Source{scanner: bufio.NewScanner(r)}
}

// DesignLines yields (line number, text) for every line before the first blank line
func (s *Source) DesignLines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for !s.designsDone {
			text, ok := s.next()
			if !ok || text == "" {
				s.designsDone = true
				return
			}
			if !yield(s.line, text) {
				return
			}
		}
	}
}

// PartLines yields (line number, text) for every non-blank line after the
// first blank line. Unread design lines are skipped.
func (s *Source) PartLines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for range s.DesignLines() {
		}
		for {
			text, ok := s.next()
			if !ok {
				return
			}
			if text == "" {
				continue
			}
			if !yield(s.line, text) {
				return
			}
		}
	}
}

// Err returns the first read error, if any
func (s *Source) Err() error {
	return s.err
}

func (s *Source) next() (string, bool) {
	if s.err != nil {
		return "", false
	}
	if !s.scanner.Scan() {
		s.err = s.scanner.Err()
		return "", false
	}
	s.line++
	return strings.TrimSpace(s.scanner.Text()), true
}
