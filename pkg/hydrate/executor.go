package hydrate

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hydrate/pkg/errors"
	"github.com/matzehuels/hydrate/pkg/observability"
	"github.com/matzehuels/hydrate/pkg/shell"
)

// State is the lifecycle position of a job.
type State int

const (
	StatePending State = iota
	StateCleaning
	StateInstalling
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCleaning:
		return "cleaning"
	case StateInstalling:
		return "installing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Result is what one executed job produced.
type Result struct {
	Job     Job
	State   State
	Success bool
	Stdout  string
	Stderr  string
	Command string
	Label   string
	Elapsed time.Duration
	Records []Record
}

// Executor runs jobs one at a time and stops at the first failure.
type Executor struct {
	opts     Options
	runner   shell.Runner
	reporter Reporter
	printer  Printer
	shared   SharedHydrator
	logger   *log.Logger
	now      func() time.Time
}

// Execute runs jobs in order. It returns the results of every job it
// started, including the failing one, together with the first error.
func (e *Executor) Execute(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := e.run(ctx, job)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (e *Executor) run(ctx context.Context, job Job) (Result, error) {
	hooks := observability.Hydration()
	hooks.OnJobStart(ctx, job.Label, job.Command)
	e.logger.Debug("job start", "label", job.Label, "command", job.Command)

	res := Result{Job: job, State: StatePending, Command: job.Command, Label: job.Label}
	start := e.now()

	var err error
	if job.Shared {
		err = e.hydrateShared(ctx, &res)
	} else {
		err = e.install(ctx, &res, start)
	}

	res.Elapsed = e.now().Sub(start)
	if err != nil {
		res.State = StateFailed
	} else {
		res.State = StateSucceeded
		res.Success = true
	}
	hooks.OnJobComplete(ctx, job.Label, res.Elapsed, err)
	e.logger.Debug("job complete", "label", job.Label, "state", res.State, "elapsed", res.Elapsed)
	return res, err
}

func (e *Executor) install(ctx context.Context, res *Result, start time.Time) error {
	job := res.Job

	e.reporter.Start("Hydrating " + job.Label)

	res.State = StateCleaning
	if err := e.clean(ctx, job); err != nil {
		e.reporter.Cancel()
		return e.print(res, Outcome{Err: err, Command: job.Command, Label: job.Label})
	}

	res.State = StateInstalling
	out, err := e.runner.Run(ctx, shell.Command{
		Line:    job.Command,
		Dir:     filepath.Join(e.opts.Root, job.Dir),
		Env:     e.opts.Env,
		Shell:   e.opts.Shell,
		Timeout: e.opts.Timeout,
	})
	res.Stdout, res.Stderr = out.Stdout, out.Stderr

	var status string
	if err != nil {
		e.reporter.Cancel()
	} else {
		if out.Stdout == "" && out.Stderr == "" {
			e.reporter.Cancel()
			res.Stdout = "Done in " + seconds(e.now().Sub(start)) + "s"
		}
		status = e.reporter.Done("Hydrated " + job.Label)
	}

	return e.print(res, Outcome{
		Err:     err,
		Stdout:  res.Stdout,
		Stderr:  res.Stderr,
		Command: job.Command,
		Label:   job.Label,
		Status:  status,
	})
}

// clean removes the job's dependency cache directory. A directory that does
// not exist is already clean.
func (e *Executor) clean(ctx context.Context, job Job) error {
	if job.CleanupDir == "" || job.CleanupDir == job.Dir {
		return nil
	}
	err := os.RemoveAll(filepath.Join(e.opts.Root, job.CleanupDir))
	observability.Hydration().OnCleanup(ctx, job.CleanupDir, err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCleanup, err, "remove %s", job.CleanupDir)
	}
	return nil
}

// print records the outcome. A failed outcome stays failed even when the
// printer swallows the error.
func (e *Executor) print(res *Result, o Outcome) error {
	o.Verbose = e.opts.Verbose
	rec, err := e.printer.Print(o)
	res.Records = append(res.Records, rec)
	if err == nil {
		err = o.Err
	}
	return err
}

func (e *Executor) hydrateShared(ctx context.Context, res *Result) error {
	res.State = StateInstalling
	records, err := e.shared.Hydrate(ctx, SharedParams{
		Root:     e.opts.Root,
		Env:      e.opts.Env,
		Shell:    e.opts.Shell,
		Timeout:  e.opts.Timeout,
		Quiet:    e.opts.Quiet,
		Verbose:  e.opts.Verbose,
		Reporter: e.reporter,
	})
	res.Records = records
	if err != nil {
		return errors.Wrap(errors.ErrCodeDelegate, err, "hydrate shared code")
	}
	return nil
}

// seconds formats d as fractional seconds at millisecond precision.
func seconds(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Milliseconds())/1000, 'f', -1, 64)
}
