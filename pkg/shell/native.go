package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Native executes commands through a system shell.
type Native struct {
	// WaitDelay bounds how long Run waits for output pipes after the shell
	// exits or is killed. Installers frequently leave grandchildren behind.
	WaitDelay time.Duration
}

// NewNative creates a native runner.
func NewNative() *Native {
	return &Native{WaitDelay: 2 * time.Second}
}

// Run executes cmd.Line with the configured shell and captures its output.
func (r *Native) Run(ctx context.Context, cmd Command) (Output, error) {
	ctx, cancel := withTimeout(ctx, cmd.Timeout)
	defer cancel()

	sh := shellPath(cmd.Shell)
	args := append(shellArgs(sh), cmd.Line)

	c := exec.CommandContext(ctx, sh, args...)
	c.Dir = cmd.Dir
	c.Env = Environ(cmd.Env)
	c.WaitDelay = r.WaitDelay

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}

	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	out.ExitCode = code
	if out.ExitCode <= 0 {
		out.ExitCode = 1
	}
	return out, classify(ctx, cmd, code, err)
}

// shellPath determines which shell to use.
func shellPath(configured string) string {
	if configured != "" {
		return configured
	}
	if runtime.GOOS == "windows" {
		return "cmd"
	}
	return "/bin/sh"
}

// shellArgs returns the arguments that make the shell run one command line.
func shellArgs(sh string) []string {
	base := strings.TrimSuffix(filepath.Base(sh), ".exe")
	switch base {
	case "cmd":
		return []string{"/d", "/s", "/c"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		return []string{"-c"}
	}
}
