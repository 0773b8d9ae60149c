package hydrate

import (
	"context"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/hydrate/pkg/runtimes"
)

// Manifest is one discovered dependency-declaration file.
type Manifest struct {
	Path string        // Relative to the project root, OS separators
	Kind runtimes.Kind // Runtime inferred from the filename
	Dir  string        // Parent directory of Path
}

// Output is one representation of a record's text.
type Output struct {
	Stdout string `json:"stdout"`
}

// Record is a displayable line (or block) of hydration output in both plain
// and terminal-formatted form.
type Record struct {
	Raw  Output `json:"raw"`
	Term Output `json:"term"`
}

// NewRecord builds a Record from terminal text, stripping ANSI sequences for
// the raw form.
func NewRecord(term string) Record {
	return Record{
		Raw:  Output{Stdout: ansi.Strip(term)},
		Term: Output{Stdout: term},
	}
}

// Inventory reports which directories are registered, active components.
// Paths are relative to the project root.
type Inventory interface {
	ComponentPaths(ctx context.Context) ([]string, error)
}

// Reporter renders progress. Each method returns the text it displayed so
// the caller can keep it as a record.
type Reporter interface {
	Start(msg string) string
	Done(msg string) string
	Cancel()
	Status(msg string) string
}

// SharedParams is what the shared hydration delegate receives.
type SharedParams struct {
	Root     string
	Env      map[string]string
	Shell    string
	Timeout  time.Duration
	Quiet    bool
	Verbose  bool
	Reporter Reporter
}

// SharedHydrator copies shared code into components. It runs as the final
// job of a run.
type SharedHydrator interface {
	Hydrate(ctx context.Context, params SharedParams) ([]Record, error)
}

// Outcome is the raw result of one install command handed to a Printer.
type Outcome struct {
	Err     error
	Stdout  string
	Stderr  string
	Command string
	Label   string // e.g. "src/http/get-index" or "project root"
	Status  string // Progress line already displayed for this job, if any
	Verbose bool
}

// Printer formats an Outcome into a Record. It returns Outcome.Err (possibly
// annotated) when the outcome is a failure.
type Printer interface {
	Print(o Outcome) (Record, error)
}

// Summary is the final, ordered report of a run.
type Summary struct {
	Records []Record
	Results []Result
	Jobs    int   // Number of manifest-derived jobs planned
	Err     error // Terminating error, nil on success
}
