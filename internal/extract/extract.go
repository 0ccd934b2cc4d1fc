// Package extract turns a classified URL into readable text.
//
// Two strategies exist: transcripts for YouTube videos (an external
// transcript tool) and article text for everything else (an external dump
// tool when present, otherwise a native fetch). Exactly one strategy runs
// per invocation; the caller picks it from the classification result.
package extract

import (
	"context"
	"errors"
	"net/http"
	"os/exec"
	"time"
)

// ErrToolNotFound is returned when a required external tool is absent from
// the resolved search path.
var ErrToolNotFound = errors.New("extraction tool not found")

const httpTimeout = 30 * time.Second

// CommandRunner abstracts external process invocation so tests can fake
// tool presence and output.
type CommandRunner interface {
	// LookPath reports where the named binary lives, or an error when it
	// is not on PATH.
	LookPath(name string) (string, error)

	// Output runs the command and returns its stdout. A non-nil env
	// replaces the child's environment.
	Output(ctx context.Context, env []string, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Output(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if env != nil {
		cmd.Env = env
	}
	return cmd.Output()
}

// Extractor holds the dependencies shared by both strategies.
type Extractor struct {
	runner  CommandRunner
	client  *http.Client
	timeout time.Duration
}

// New creates an Extractor backed by real process execution and a 30-second
// HTTP client.
func New() *Extractor {
	return &Extractor{
		runner:  execRunner{},
		client:  &http.Client{Timeout: httpTimeout},
		timeout: httpTimeout,
	}
}
