package hydrate

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Aggregator assembles the ordered records of a run. Begin must be called
// before the first job so the lead line is displayed ahead of job output.
type Aggregator struct {
	reporter Reporter
	opts     Options
	paths    int
	lead     *Record
}

// NewAggregator creates an aggregator for a run over paths manifest jobs.
func NewAggregator(reporter Reporter, opts Options, paths int) *Aggregator {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Aggregator{reporter: reporter, opts: opts, paths: paths}
}

// Begin displays and remembers the lead line, if the run has one.
func (a *Aggregator) Begin() {
	var msg string
	switch {
	case a.paths > 0:
		msg = fmt.Sprintf("Hydrating dependencies in %d %s", a.paths, plural(a.paths))
	case a.opts.Verbose:
		base := strings.TrimRight(a.opts.Basepath, `/\`)
		msg = "No dependencies found in: " + base + string(filepath.Separator) + "**"
	default:
		return
	}
	rec := NewRecord(a.reporter.Status(msg))
	a.lead = &rec
}

// Finish flattens job records in execution order behind the lead line. The
// trailing line is added only when err is nil.
func (a *Aggregator) Finish(results []Result, err error) *Summary {
	s := &Summary{Results: results, Jobs: a.paths, Err: err}
	if a.lead != nil {
		s.Records = append(s.Records, *a.lead)
	}
	for _, r := range results {
		s.Records = append(s.Records, r.Records...)
	}
	if err != nil {
		return s
	}

	switch {
	case a.paths > 0:
		msg := fmt.Sprintf("Successfully hydrated dependencies in %d %s", a.paths, plural(a.paths))
		s.Records = append(s.Records, NewRecord(a.reporter.Done(msg)))
	case !a.opts.Quiet:
		s.Records = append(s.Records, NewRecord(a.reporter.Done("Finished checks, nothing to hydrate")))
	}
	return s
}

// Aggregate builds a summary in one step, for callers that display nothing
// while jobs run.
func Aggregate(reporter Reporter, opts Options, paths int, results []Result, err error) *Summary {
	a := NewAggregator(reporter, opts, paths)
	a.Begin()
	return a.Finish(results, err)
}

func plural(n int) string {
	if n == 1 {
		return "path"
	}
	return "paths"
}
