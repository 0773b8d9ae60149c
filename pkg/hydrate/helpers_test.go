package hydrate

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hydrate/pkg/errors"
	"github.com/matzehuels/hydrate/pkg/shell"
)

// writeFiles creates empty files (and their parents) below root.
func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s) error = %v", full, err)
		}
		if err := os.WriteFile(full, nil, 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", full, err)
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// fakeRunner records commands and fails those whose directory ends in a
// key of fail.
type fakeRunner struct {
	calls  []shell.Command
	stdout string
	fail   map[string]bool
}

func (f *fakeRunner) Run(_ context.Context, cmd shell.Command) (shell.Output, error) {
	f.calls = append(f.calls, cmd)
	for dir := range f.fail {
		if strings.HasSuffix(cmd.Dir, filepath.FromSlash(dir)) {
			out := shell.Output{Stderr: "npm ERR! boom", ExitCode: 1}
			return out, errors.New(errors.ErrCodeCommand, "%s in %s exited with status 1", cmd.Line, dir)
		}
	}
	return shell.Output{Stdout: f.stdout}, nil
}

func (f *fakeRunner) lines() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Line
	}
	return out
}

// recordingReporter echoes messages and keeps an event log.
type recordingReporter struct {
	events []string
}

func (r *recordingReporter) Start(msg string) string {
	r.events = append(r.events, "start:"+msg)
	return msg
}

func (r *recordingReporter) Done(msg string) string {
	r.events = append(r.events, "done:"+msg)
	return msg
}

func (r *recordingReporter) Cancel() {
	r.events = append(r.events, "cancel")
}

func (r *recordingReporter) Status(msg string) string {
	r.events = append(r.events, "status:"+msg)
	return msg
}

// fakeShared returns fixed records and error.
type fakeShared struct {
	calls   int
	params  SharedParams
	records []Record
	err     error
}

func (f *fakeShared) Hydrate(_ context.Context, p SharedParams) ([]Record, error) {
	f.calls++
	f.params = p
	return f.records, f.err
}

// stepClock returns a clock that advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func rawRecords(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Raw.Stdout
	}
	return out
}
