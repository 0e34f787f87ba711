package console

import (
	"context"
	"fmt"
	"io"
)

// Script replays a fixed list of lines and then reports io.EOF. It stands in
// for the operator when a session is driven programmatically.
type Script struct {
	lines []string
	next  int

	// Prompts records every prompt shown, in order.
	Prompts []string

	// BeforeRead, when set, runs before line n (0-based) is handed out and
	// once more before the final io.EOF.
	BeforeRead func(n int)
}

// NewScript creates a Script that will return lines in order.
func NewScript(lines ...string) *Script {
	return &Script{lines: lines}
}

func (s *Script) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	s.Prompts = append(s.Prompts, prompt)
	if s.BeforeRead != nil {
		s.BeforeRead(s.next)
	}
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}

// Remaining is the number of lines not read yet.
func (s *Script) Remaining() int { return len(s.lines) - s.next }
