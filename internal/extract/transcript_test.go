package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner fakes external tool presence and output.
type fakeRunner struct {
	// paths maps tool name to its resolved path; absent means not on PATH.
	paths map[string]string

	output []byte
	err    error

	// captured from the last Output call
	gotName string
	gotArgs []string
	gotEnv  []string
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if p, ok := f.paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

func (f *fakeRunner) Output(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	f.gotName = name
	f.gotArgs = args
	f.gotEnv = env
	return f.output, f.err
}

func newTestExtractor(r CommandRunner) *Extractor {
	e := New()
	e.runner = r
	return e
}

func TestTranscript_ToolOnPath(t *testing.T) {
	runner := &fakeRunner{
		paths:  map[string]string{transcriptTool: "/usr/bin/" + transcriptTool},
		output: []byte("hello from the transcript\n"),
	}
	e := newTestExtractor(runner)

	got, err := e.Transcript(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Transcript() unexpected error: %v", err)
	}
	if got != "hello from the transcript\n" {
		t.Errorf("Transcript() = %q, want tool output verbatim", got)
	}

	wantArgs := []string{"dQw4w9WgXcQ", "--format", "text"}
	if len(runner.gotArgs) != len(wantArgs) {
		t.Fatalf("tool args = %v, want %v", runner.gotArgs, wantArgs)
	}
	for i := range wantArgs {
		if runner.gotArgs[i] != wantArgs[i] {
			t.Errorf("tool arg[%d] = %q, want %q", i, runner.gotArgs[i], wantArgs[i])
		}
	}
	if runner.gotEnv != nil {
		t.Errorf("tool env = %v, want inherited environment for on-PATH tool", runner.gotEnv)
	}
}

func TestTranscript_ToolInLocalBinDir(t *testing.T) {
	dir := t.TempDir()
	toolPath := filepath.Join(dir, transcriptTool)
	if err := os.WriteFile(toolPath, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("writing fake tool: %v", err)
	}

	orig := localBinDirs
	localBinDirs = []string{dir}
	t.Cleanup(func() { localBinDirs = orig })

	runner := &fakeRunner{output: []byte("spoken words")}
	e := newTestExtractor(runner)

	got, err := e.Transcript(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Transcript() unexpected error: %v", err)
	}
	if got != "spoken words" {
		t.Errorf("Transcript() = %q, want %q", got, "spoken words")
	}
	if runner.gotName != toolPath {
		t.Errorf("tool path = %q, want probed path %q", runner.gotName, toolPath)
	}

	var pathVar string
	for _, kv := range runner.gotEnv {
		if strings.HasPrefix(kv, "PATH=") {
			pathVar = kv
		}
	}
	if !strings.Contains(pathVar, dir) {
		t.Errorf("child PATH %q does not include probed dir %q", pathVar, dir)
	}
}

func TestTranscript_ToolNotFound(t *testing.T) {
	orig := localBinDirs
	localBinDirs = []string{filepath.Join(t.TempDir(), "empty")}
	t.Cleanup(func() { localBinDirs = orig })

	runner := &fakeRunner{}
	e := newTestExtractor(runner)

	_, err := e.Transcript(context.Background(), "abc123")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("Transcript() error = %v, want ErrToolNotFound", err)
	}
	if !strings.Contains(err.Error(), "pip install") {
		t.Errorf("error %q is missing the remediation hint", err)
	}
	if runner.gotName != "" {
		t.Errorf("tool %q was invoked despite being absent", runner.gotName)
	}
}

func TestTranscript_ToolFailure(t *testing.T) {
	runner := &fakeRunner{
		paths: map[string]string{transcriptTool: "/usr/bin/" + transcriptTool},
		err:   errors.New("exit status 1"),
	}
	e := newTestExtractor(runner)

	_, err := e.Transcript(context.Background(), "abc123")
	if err == nil {
		t.Fatal("Transcript() with failing tool: expected error, got nil")
	}
	if errors.Is(err, ErrToolNotFound) {
		t.Errorf("tool failure reported as ErrToolNotFound: %v", err)
	}
	if !strings.Contains(err.Error(), "abc123") {
		t.Errorf("error %q does not name the video id", err)
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single line", in: "boom\n", want: "boom"},
		{name: "multi line keeps first", in: "first\nsecond\nthird", want: "first"},
		{name: "leading whitespace trimmed", in: "  oops  \n", want: "oops"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstLine([]byte(tt.in)); got != tt.want {
				t.Errorf("firstLine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
