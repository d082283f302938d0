package progress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/flutterkit-labs/flutterkit/internal/ui"
)

// DefaultInterval is the spinner redraw period.
const DefaultInterval = 25 * time.Millisecond

// DefaultWidth is the column the status glyph is drawn at.
const DefaultWidth = 54

// ErrChildProcessFailed is wrapped when a child process cannot be started or
// waited on. A non-zero exit is not an error; it is reported as failure.
var ErrChildProcessFailed = errors.New("child process failed")

// State is the lifecycle of the step currently being watched.
type State int

const (
	Idle State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Step is one external command with a fixed argument vector.
type Step struct {
	Description string
	Name        string
	Args        []string
	// Dir is the working directory; empty means the current directory.
	Dir string
}

// String returns the command line, e.g. "flutter pub get".
func (s Step) String() string {
	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

// Outcome captures the result of running a Step.
type Outcome struct {
	Step     Step
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	// Err is set when the process could not be started or waited on.
	Err error
}

// Success reports whether the step exited with code zero.
func (o *Outcome) Success() bool {
	return o.Err == nil && o.ExitCode == 0
}

// Supervisor draws progress for one child process at a time. It is not safe
// for concurrent use.
type Supervisor struct {
	Out      io.Writer
	Theme    ui.Theme
	Interval time.Duration
	Width    int
	// Animate enables the spinner. When false only the final glyph is drawn,
	// which keeps piped output free of redraw noise.
	Animate bool

	state State
}

// New returns a Supervisor writing to out. Animation is enabled when out is
// a terminal.
func New(out io.Writer, theme ui.Theme, interval time.Duration) *Supervisor {
	return &Supervisor{
		Out:      out,
		Theme:    theme,
		Interval: interval,
		Width:    DefaultWidth,
		Animate:  ui.IsTerminal(out),
	}
}

// State returns the state of the most recent step.
func (s *Supervisor) State() State { return s.state }

// Run executes step, capturing its output, and reports the outcome.
func (s *Supervisor) Run(ctx context.Context, step Step) *Outcome {
	cmd := exec.CommandContext(ctx, step.Name, step.Args...)
	cmd.Dir = step.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	_, err := s.Watch(step.Description, cmd)

	out := &Outcome{
		Step:     step,
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		Err:      err,
	}
	if cmd.ProcessState != nil {
		out.ExitCode = cmd.ProcessState.ExitCode()
	}
	return out
}

// Watch draws description and a spinner until cmd exits, then replaces the
// spinner with a success or failure glyph. cmd is started if it has not been
// already. The boolean is true iff the process exited with code zero.
func (s *Supervisor) Watch(description string, cmd *exec.Cmd) (bool, error) {
	s.state = Idle
	fmt.Fprint(s.Out, s.pad(description))

	if cmd.Process == nil {
		if err := cmd.Start(); err != nil {
			s.finish(false)
			return false, fmt.Errorf("%w: %s: %v", ErrChildProcessFailed, commandLine(cmd), err)
		}
	}
	s.state = Running

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var ticks <-chan time.Time
	if s.Animate {
		ticker := time.NewTicker(s.interval())
		defer ticker.Stop()
		ticks = ticker.C
	}

	frames := []rune(ui.SpinnerFrames)
	frame := 0
	if s.Animate {
		s.draw(frames[frame])
	}

	for {
		select {
		case err := <-done:
			ok := cmd.ProcessState != nil && cmd.ProcessState.ExitCode() == 0
			s.finish(ok)
			var exitErr *exec.ExitError
			if err != nil && !ok && !errors.As(err, &exitErr) {
				return false, fmt.Errorf("%w: %s: %v", ErrChildProcessFailed, commandLine(cmd), err)
			}
			return ok, nil
		case <-ticks:
			frame = (frame + 1) % len(frames)
			s.draw(frames[frame])
		}
	}
}

// Mark draws a completed line for work done without a child process.
func (s *Supervisor) Mark(description string, ok bool) {
	fmt.Fprint(s.Out, s.pad(description))
	s.finish(ok)
}

func (s *Supervisor) draw(r rune) {
	fmt.Fprint(s.Out, "\b"+s.Theme.Magenta(string(r)))
}

func (s *Supervisor) finish(ok bool) {
	if ok {
		s.state = Succeeded
		fmt.Fprintln(s.Out, "\b"+s.Theme.Check()+" ")
		return
	}
	s.state = Failed
	fmt.Fprintln(s.Out, "\b"+s.Theme.Cross()+" ")
}

// pad left-aligns description in the status column and guarantees one
// trailing space for the glyph to overwrite.
func (s *Supervisor) pad(description string) string {
	width := s.Width
	if width <= 0 {
		width = DefaultWidth
	}
	if len(description) >= width {
		return description + " "
	}
	return fmt.Sprintf("%-*s", width, description)
}

func (s *Supervisor) interval() time.Duration {
	if s.Interval <= 0 {
		return DefaultInterval
	}
	return s.Interval
}

func commandLine(cmd *exec.Cmd) string {
	if len(cmd.Args) == 0 {
		return cmd.Path
	}
	return strings.Join(cmd.Args, " ")
}
