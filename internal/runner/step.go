package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Status is the outcome of one best-effort step.
type Status int

const (
	Succeeded Status = iota
	Failed
	Skipped
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Step is a named external command.
type Step struct {
	Name string
	Argv []string
}

// Command returns the command line as typed in a shell.
func (s Step) Command() string {
	return strings.Join(s.Argv, " ")
}

// StepResult records what happened to one step.
type StepResult struct {
	Step   string
	Status Status
	// Detail explains a failure: the start error or the tail of stderr.
	Detail string
	// Hint is the manual recovery instruction shown for failures.
	Hint string
}

// OK reports whether the step did not fail.
func (r StepResult) OK() bool { return r.Status != Failed }

// maxDetail bounds the stderr excerpt kept in a StepResult.
const maxDetail = 512

// RunStep executes step in dir and converts the outcome to a StepResult.
// A step without a command is Skipped.
func RunStep(ctx context.Context, r Runner, dir string, step Step) StepResult {
	res := StepResult{Step: step.Name}
	if len(step.Argv) == 0 {
		res.Status = Skipped
		res.Detail = "no command configured"
		return res
	}

	hint := fmt.Sprintf("run `%s` manually in %s", step.Command(), dir)
	out, err := r.Run(ctx, dir, step.Argv)
	switch {
	case err != nil:
		res.Status = Failed
		res.Detail = err.Error()
		res.Hint = hint
	case out.ExitCode != 0:
		res.Status = Failed
		res.Detail = fmt.Sprintf("exit status %d", out.ExitCode)
		if tail := tailOf(out.Stderr); tail != "" {
			res.Detail += ": " + tail
		}
		res.Hint = hint
	default:
		res.Status = Succeeded
	}
	return res
}

// RunSteps runs each step in order, announcing it on w; failures do not
// stop later steps. A nil w discards the announcements.
func RunSteps(ctx context.Context, r Runner, dir string, steps []Step, w io.Writer) []StepResult {
	if w == nil {
		w = io.Discard
	}
	results := make([]StepResult, 0, len(steps))
	for _, s := range steps {
		fmt.Fprintf(w, "Running %s (%s)...\n", s.Name, s.Command())
		results = append(results, RunStep(ctx, r, dir, s))
	}
	return results
}

func tailOf(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxDetail {
		s = "..." + s[len(s)-maxDetail:]
	}
	return s
}
