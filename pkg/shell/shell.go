// Package shell spawns installer commands.
//
// Two runners are provided. Native hands the command line to a system shell
// (/bin/sh -c on Unix, cmd /C on Windows, or whatever Command.Shell names).
// Virtual interprets the line with the embedded POSIX shell from
// mvdan.cc/sh, which still executes external programs such as npm or pip3
// but does not depend on a system shell being installed.
//
// Both runners capture stdout and stderr separately and report every failure
// (non-zero exit, spawn error, timeout) as a COMMAND_FAILED error.
package shell

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/hydrate/pkg/errors"
)

// VirtualShell is the Command.Shell value that selects the embedded interpreter.
const VirtualShell = "virtual"

// Command is a single install invocation.
type Command struct {
	Line    string            // Command line, e.g. "npm ci"
	Dir     string            // Working directory
	Env     map[string]string // Overlaid on the current process environment
	Shell   string            // Shell program; empty for the platform default
	Timeout time.Duration     // Zero means no timeout
}

// Output is the captured result of a command.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// Auto dispatches to Virtual when Command.Shell is VirtualShell and to
// Native otherwise.
type Auto struct {
	Native  *Native
	Virtual *Virtual
}

// NewAuto creates a dispatching runner with default native and virtual runners.
func NewAuto() *Auto {
	return &Auto{Native: NewNative(), Virtual: NewVirtual()}
}

// Run executes cmd with the runner selected by cmd.Shell.
func (a *Auto) Run(ctx context.Context, cmd Command) (Output, error) {
	if cmd.Shell == VirtualShell {
		return a.Virtual.Run(ctx, cmd)
	}
	return a.Native.Run(ctx, cmd)
}

// Environ returns the process environment with env overlaid, keys sorted for
// deterministic ordering of the overlay.
func Environ(env map[string]string) []string {
	base := os.Environ()
	if len(env) == 0 {
		return base
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(base)+len(keys))
	for _, kv := range base {
		name, _, _ := strings.Cut(kv, "=")
		if _, overridden := env[name]; overridden {
			continue
		}
		out = append(out, kv)
	}
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

// withTimeout derives the context the command runs under.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// classify turns a run error into the shared COMMAND_FAILED shape.
func classify(ctx context.Context, cmd Command, exitCode int, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.Wrap(errors.ErrCodeCommand,
			errors.New(errors.ErrCodeTimeout, "timed out after %s", cmd.Timeout),
			"%s in %s", cmd.Line, displayDir(cmd.Dir))
	}
	if exitCode > 0 {
		return errors.Wrap(errors.ErrCodeCommand, err,
			"%s in %s exited with status %d", cmd.Line, displayDir(cmd.Dir), exitCode)
	}
	return errors.Wrap(errors.ErrCodeCommand, err,
		"failed to execute %s in %s", cmd.Line, displayDir(cmd.Dir))
}

func displayDir(dir string) string {
	if dir == "" || dir == "." {
		return "project root"
	}
	return dir
}
