package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner executes one command in a working directory.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string) (*Output, error)
}

// Output captures the result of a command execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Func adapts a plain function to Runner.
type Func func(ctx context.Context, dir string, argv []string) (*Output, error)

// Run calls f.
func (f Func) Run(ctx context.Context, dir string, argv []string) (*Output, error) {
	return f(ctx, dir, argv)
}

// ExecRunner runs commands with os/exec. Output is captured and, when set,
// also streamed to Stdout and Stderr.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes argv in dir. A non-zero exit is reported through
// Output.ExitCode; the error return is for commands that could not start.
func (r *ExecRunner) Run(ctx context.Context, dir string, argv []string) (*Output, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", argv[0], err)
	}

	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = tee(r.Stdout, &stdoutBuf)
	cmd.Stderr = tee(r.Stderr, &stderrBuf)

	err = cmd.Run()
	out := &Output{Stdout: stdoutBuf.String(), Stderr: stderrBuf.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, fmt.Errorf("executing %s: %w", strings.Join(argv, " "), err)
	}
	return out, nil
}

func tee(w io.Writer, buf *bytes.Buffer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}
