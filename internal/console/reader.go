// Package console reads lines typed by the operator and styles what is shown
// back to them. A real terminal gets line editing and history; anything else
// (pipes, files, tests) is read line by line.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ErrInterrupted is returned when a read is abandoned because the context ended.
var ErrInterrupted = errors.New("input interrupted")

// LineReader prompts for and reads one line at a time.
// io.EOF signals the end of the input.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

type readResult struct {
	line string
	err  error
}

// readAsync runs read on its own goroutine so a blocked read can be abandoned
// when ctx ends. An abandoned read keeps its goroutine until the underlying
// input returns; only the last read of a session is ever abandoned.
func readAsync(ctx context.Context, read func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	ch := make(chan readResult, 1)
	go func() {
		line, err := read()
		ch <- readResult{line: line, err: err}
	}()
	select {
	case res := <-ch:
		return res.line, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
}

// =============================================================================
// PLAIN READER
// =============================================================================

// Plain reads newline terminated lines from any reader and writes prompts to out.
type Plain struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlain creates a Plain reader.
func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{in: bufio.NewReader(in), out: out}
}

func (p *Plain) ReadLine(ctx context.Context, prompt string) (string, error) {
	if _, err := io.WriteString(p.out, prompt); err != nil {
		return "", err
	}
	return readAsync(ctx, func() (string, error) {
		line, err := p.in.ReadString('\n')
		if err != nil {
			// A last line without newline still counts.
			if errors.Is(err, io.EOF) && line != "" {
				return strings.TrimRight(line, "\r"), nil
			}
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	})
}

// =============================================================================
// TERMINAL READER
// =============================================================================

// Terminal reads from an interactive terminal with line editing and history.
// The terminal is only in raw mode while a line is being read, so everything
// else written to it behaves normally.
type Terminal struct {
	fd  int
	out io.Writer
	t   *term.Terminal
	log *zap.Logger
	tty ttyControl

	mu    sync.Mutex
	state *term.State
}

// ttyControl is the part of x/term that touches the file descriptor.
type ttyControl struct {
	makeRaw func(fd int) (*term.State, error)
	restore func(fd int, state *term.State) error
	size    func(fd int) (width, height int, err error)
}

var realTTY = ttyControl{
	makeRaw: term.MakeRaw,
	restore: term.Restore,
	size:    term.GetSize,
}

// NewTerminal wraps in/out, in must be a terminal.
func NewTerminal(in *os.File, out io.Writer, logger *zap.Logger) *Terminal {
	return newTerminal(int(in.Fd()), in, out, logger, realTTY)
}

func newTerminal(fd int, in io.Reader, out io.Writer, logger *zap.Logger, tty ttyControl) *Terminal {
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	return &Terminal{
		fd:  fd,
		out: out,
		t:   term.NewTerminal(rw, ""),
		log: logger,
		tty: tty,
	}
}

func (t *Terminal) ReadLine(ctx context.Context, prompt string) (string, error) {
	// Leading newlines are printed in cooked mode; the line editor would
	// count them as columns.
	rest := strings.TrimLeft(prompt, "\n")
	if lead := prompt[:len(prompt)-len(rest)]; lead != "" {
		if _, err := io.WriteString(t.out, lead); err != nil {
			return "", err
		}
	}

	line, err := readAsync(ctx, func() (string, error) {
		if err := t.makeRaw(); err != nil {
			return "", err
		}
		defer t.restore()
		t.resize()
		t.t.SetPrompt(rest)
		// Ctrl-C and Ctrl-D on an empty line both come back as io.EOF.
		return t.t.ReadLine()
	})
	if errors.Is(err, ErrInterrupted) {
		t.restore()
	}
	return line, err
}

// resize follows the current window width so wrapping and redraw line up.
func (t *Terminal) resize() {
	width, height, err := t.tty.size(t.fd)
	if err != nil {
		t.log.Debug("failed to read terminal size", zap.Error(err))
		return
	}
	if err := t.t.SetSize(width, height); err != nil {
		t.log.Debug("failed to resize line editor", zap.Error(err))
	}
}

func (t *Terminal) makeRaw() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, err := t.tty.makeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.state = state
	return nil
}

func (t *Terminal) restore() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == nil {
		return
	}
	if err := t.tty.restore(t.fd, t.state); err != nil {
		t.log.Warn("failed to restore terminal", zap.Error(err))
	}
	t.state = nil
}

// =============================================================================
// SELECTION
// =============================================================================

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewLineReader picks a Terminal reader when both ends are terminals and a
// Plain one otherwise. Losing the terminal only loses editing and history.
func NewLineReader(in *os.File, out *os.File, logger *zap.Logger) LineReader {
	if IsTerminal(in) && IsTerminal(out) {
		return NewTerminal(in, out, logger)
	}
	logger.Debug("input is not a terminal, line editing disabled")
	return NewPlain(in, out)
}
