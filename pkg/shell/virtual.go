package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	hyerrors "github.com/matzehuels/hydrate/pkg/errors"
)

// Virtual executes commands with the embedded mvdan.cc/sh interpreter.
type Virtual struct{}

// NewVirtual creates a virtual shell runner.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// Validate parses line and reports syntax errors without running anything.
func Validate(line string) error {
	if _, err := syntax.NewParser().Parse(strings.NewReader(line), ""); err != nil {
		return hyerrors.Wrap(hyerrors.ErrCodeInvalidInput, err, "invalid command %q", line)
	}
	return nil
}

// Run interprets cmd.Line and captures its output.
func (r *Virtual) Run(ctx context.Context, cmd Command) (Output, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(cmd.Line), "")
	if err != nil {
		return Output{ExitCode: 1}, classify(ctx, cmd, 0, err)
	}

	ctx, cancel := withTimeout(ctx, cmd.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(Environ(cmd.Env)...)),
		interp.StdIO(nil, &stdout, &stderr),
	}
	if cmd.Dir != "" {
		opts = append(opts, interp.Dir(cmd.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return Output{ExitCode: 1}, classify(ctx, cmd, 0, err)
	}

	err = runner.Run(ctx, prog)
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}

	var status interp.ExitStatus
	if errors.As(err, &status) && status != 0 {
		out.ExitCode = int(status)
		return out, classify(ctx, cmd, out.ExitCode, err)
	}
	out.ExitCode = 1
	return out, classify(ctx, cmd, 0, err)
}
