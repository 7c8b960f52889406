// Package tuitest drives a terminal program through a pseudo terminal and
// records what it draws.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 100
	defaultHeight  = 40
	defaultTimeout = 10 * time.Second
)

// Step is one scripted interaction: sleep for Delay, wait until the screen
// shows WaitFor (when set), then type Input.
type Step struct {
	Delay   time.Duration
	WaitFor string
	Input   []byte
}

// Config describes the program to run and the script to play against it.
// The program must exit with status 0 once the script is done.
type Config struct {
	Command []string
	Dir     string
	Env     []string
	Width   int
	Height  int
	Steps   []Step
	Timeout time.Duration
}

// Recording contains the raw terminal stream plus parsed frames.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

// session is one running program attached to a PTY.
type session struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	output lockedBuffer
	done   chan struct{}
}

// Run starts cfg.Command in a PTY, plays cfg.Steps and returns everything
// the program drew once it exits.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, orDefault(cfg.Timeout, defaultTimeout))
	defer cancel()

	s, err := start(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.ptmx.Close() }()

	started := time.Now()
	if err := s.play(ctx, cfg.Steps); err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	raw := s.output.Bytes()
	return &Recording{Raw: raw, Frames: parseFrames(raw), Duration: time.Since(started)}, nil
}

func start(ctx context.Context, cfg Config) (*session, error) {
	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	size := &pty.Winsize{
		Rows: uint16(orDefault(cfg.Height, defaultHeight)),
		Cols: uint16(orDefault(cfg.Width, defaultWidth)),
	}
	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	s := &session{cmd: cmd, ptmx: ptmx, done: make(chan struct{})}
	go s.record()
	return s, nil
}

// record copies PTY output into the buffer until the PTY is closed.
func (s *session) record() {
	defer close(s.done)
	responder := &backgroundResponder{w: s.ptmx}
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			responder.Process(buf[:n])
			_, _ = s.output.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func (s *session) play(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("tuitest: step %d: %w", i, ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if step.WaitFor != "" {
			if err := waitForText(ctx, &s.output, step.WaitFor); err != nil {
				return fmt.Errorf("tuitest: step %d: %w\n%s", i, err, s.output.Plain())
			}
		}
		if len(step.Input) > 0 {
			if _, err := s.ptmx.Write(step.Input); err != nil {
				return fmt.Errorf("tuitest: step %d: write input: %w", i, err)
			}
		}
	}
	return nil
}

// wait blocks until the program exits, then drains the remaining output.
func (s *session) wait(ctx context.Context) error {
	exited := make(chan error, 1)
	go func() { exited <- s.cmd.Wait() }()

	select {
	case err := <-exited:
		_ = s.ptmx.Close()
		<-s.done
		if err != nil {
			return fmt.Errorf("tuitest: program failed: %w\n%s", err, s.output.Plain())
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("tuitest: program still running: %w\n%s", ctx.Err(), s.output.Plain())
	}
}

func orDefault[T int | time.Duration](value, fallback T) T {
	if value <= 0 {
		return fallback
	}
	return value
}

const pollInterval = 20 * time.Millisecond

var (
	// backgroundQuery is the OSC 11 query lipgloss sends when it first resolves
	// an AdaptiveColor. termenv follows it with a cursor position request and
	// waits for both answers.
	backgroundQuery = []byte("\x1b]11;?\x1b\\")
	// backgroundReply reports a black background, then the cursor position.
	backgroundReply = []byte("\x1b]11;rgb:0000/0000/0000\x1b\\\x1b[1;1R")
)

// backgroundResponder answers background colour queries found in the PTY
// stream, including queries split across reads.
type backgroundResponder struct {
	w    io.Writer
	tail []byte
}

func (r *backgroundResponder) Process(chunk []byte) {
	data := append(r.tail, chunk...)
	for {
		idx := bytes.Index(data, backgroundQuery)
		if idx < 0 {
			break
		}
		_, _ = r.w.Write(backgroundReply)
		data = data[idx+len(backgroundQuery):]
	}
	keep := len(backgroundQuery) - 1
	if len(data) < keep {
		keep = len(data)
	}
	r.tail = append(r.tail[:0], data[len(data)-keep:]...)
}

func waitForText(ctx context.Context, output *lockedBuffer, text string) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if strings.Contains(output.Plain(), text) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %q: %w", text, ctx.Err())
		case <-ticker.C:
		}
	}
}

// lockedBuffer collects PTY output while the script polls it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

// Plain returns the output so far without escape sequences.
func (b *lockedBuffer) Plain() string {
	return stripANSI(strings.ReplaceAll(string(b.Bytes()), "\r", ""))
}

func buildEnv(extra []string) []string {
	env := os.Environ()
	env = append(env, extra...)
	termSet := false
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			termSet = true
			break
		}
	}
	if !termSet {
		env = append(env, "TERM=xterm-256color")
	}
	return env
}

var (
	// KeyEnter sends a carriage return to the PTY.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC requests the program to terminate.
	KeyCtrlC = []byte{3}
	// KeyEsc is the bare escape byte.
	KeyEsc = []byte{27}

	KeyUp    = []byte("\x1b[A")
	KeyDown  = []byte("\x1b[B")
	KeyRight = []byte("\x1b[C")
	KeyLeft  = []byte("\x1b[D")
)

// WaitFor returns a step that blocks until text is on screen, then sends input.
func WaitFor(text string, input []byte) Step {
	return Step{WaitFor: text, Input: input}
}
