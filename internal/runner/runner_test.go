package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestRunStep_Succeeded(t *testing.T) {
	var gotDir string
	var gotArgv []string
	r := Func(func(_ context.Context, dir string, argv []string) (*Output, error) {
		gotDir, gotArgv = dir, argv
		return &Output{}, nil
	})

	res := RunStep(context.Background(), r, "/sites/a", Step{Name: "install", Argv: []string{"npm", "install"}})
	if res.Status != Succeeded {
		t.Fatalf("Status = %s, want succeeded", res.Status)
	}
	if gotDir != "/sites/a" || strings.Join(gotArgv, " ") != "npm install" {
		t.Errorf("ran %v in %s", gotArgv, gotDir)
	}
	if !res.OK() {
		t.Error("OK() = false for a successful step")
	}
}

func TestRunStep_NonZeroExit(t *testing.T) {
	r := Func(func(context.Context, string, []string) (*Output, error) {
		return &Output{ExitCode: 2, Stderr: "\nnpm ERR! missing script: build\n"}, nil
	})

	res := RunStep(context.Background(), r, "/sites/a", Step{Name: "build", Argv: []string{"npm", "run", "build"}})
	if res.Status != Failed {
		t.Fatalf("Status = %s, want failed", res.Status)
	}
	if res.Detail != "exit status 2: npm ERR! missing script: build" {
		t.Errorf("Detail = %q", res.Detail)
	}
	if !strings.Contains(res.Hint, "npm run build") {
		t.Errorf("Hint = %q, want manual command", res.Hint)
	}
}

func TestRunStep_StartError(t *testing.T) {
	r := Func(func(context.Context, string, []string) (*Output, error) {
		return nil, errors.New("git not found")
	})

	res := RunStep(context.Background(), r, "/x", Step{Name: "vcs", Argv: []string{"git", "init"}})
	if res.Status != Failed || res.Detail != "git not found" {
		t.Errorf("got %+v", res)
	}
}

func TestRunStep_NoCommandSkipped(t *testing.T) {
	r := Func(func(context.Context, string, []string) (*Output, error) {
		t.Fatal("runner must not be called")
		return nil, nil
	})
	res := RunStep(context.Background(), r, "/x", Step{Name: "build"})
	if res.Status != Skipped {
		t.Errorf("Status = %s, want skipped", res.Status)
	}
}

func TestRunSteps_ContinuesAfterFailure(t *testing.T) {
	var calls int
	r := Func(func(context.Context, string, []string) (*Output, error) {
		calls++
		if calls == 1 {
			return &Output{ExitCode: 1}, nil
		}
		return &Output{}, nil
	})
	var out bytes.Buffer
	results := RunSteps(context.Background(), r, "/x", []Step{
		{Name: "install", Argv: []string{"npm", "install"}},
		{Name: "build", Argv: []string{"npm", "run", "build"}},
	}, &out)
	if len(results) != 2 || results[0].Status != Failed || results[1].Status != Succeeded {
		t.Errorf("unexpected results: %+v", results)
	}
	want := "Running install (npm install)...\nRunning build (npm run build)...\n"
	if out.String() != want {
		t.Errorf("announcements = %q, want %q", out.String(), want)
	}
}

func TestTailOfTruncates(t *testing.T) {
	long := strings.Repeat("x", maxDetail+10)
	got := tailOf(long)
	if len(got) != maxDetail+3 || !strings.HasPrefix(got, "...") {
		t.Errorf("tailOf length = %d", len(got))
	}
}

func TestExecRunner_EmptyCommand(t *testing.T) {
	if _, err := (&ExecRunner{}).Run(context.Background(), t.TempDir(), nil); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestExecRunner_ExitCodeAndStreaming(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}

	var stdout bytes.Buffer
	r := &ExecRunner{Stdout: &stdout}
	out, err := r.Run(context.Background(), t.TempDir(), []string{"sh", "-c", "echo hello; exit 3"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", out.ExitCode)
	}
	if strings.TrimSpace(out.Stdout) != "hello" || strings.TrimSpace(stdout.String()) != "hello" {
		t.Errorf("stdout not captured and streamed: %q / %q", out.Stdout, stdout.String())
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := (&ExecRunner{}).Run(context.Background(), t.TempDir(), []string{"definitely-not-a-real-binary-xyz"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}
