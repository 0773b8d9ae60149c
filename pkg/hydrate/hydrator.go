package hydrate

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hydrate/pkg/errors"
	"github.com/matzehuels/hydrate/pkg/observability"
	"github.com/matzehuels/hydrate/pkg/shell"
)

// Deps are the collaborators a Hydrator is built from. Every field is
// optional.
type Deps struct {
	Inventory Inventory      // Active components; nil means no components
	Reporter  Reporter       // Progress display; nil displays nothing
	Printer   Printer        // Job output formatting; nil uses plain text
	Shared    SharedHydrator // Shared code delegate; nil skips the shared job
	Runner    shell.Runner   // Command execution; nil uses shell.NewAuto
	Logger    *log.Logger    // nil uses log.Default
}

// Hydrator runs the discover → filter → build → execute → aggregate
// pipeline. It holds no per-run state, so one Hydrator can serve many runs.
type Hydrator struct {
	deps Deps
	now  func() time.Time
}

// NewHydrator creates a Hydrator, filling missing collaborators with defaults.
func NewHydrator(deps Deps) *Hydrator {
	if deps.Inventory == nil {
		deps.Inventory = StaticInventory()
	}
	if deps.Reporter == nil {
		deps.Reporter = nopReporter{}
	}
	if deps.Printer == nil {
		deps.Printer = plainPrinter{}
	}
	if deps.Runner == nil {
		deps.Runner = shell.NewAuto()
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Hydrator{deps: deps, now: time.Now}
}

// Plan resolves options and returns the job queue without running anything.
func (h *Hydrator) Plan(ctx context.Context, opts Options) ([]Job, error) {
	opts, err := h.prepare(opts)
	if err != nil {
		return nil, err
	}
	return h.plan(ctx, opts)
}

// Run hydrates every active component under opts.Basepath. The summary is
// returned even on failure and holds the records produced up to and
// including the failing job; the error is also stored in Summary.Err.
func (h *Hydrator) Run(ctx context.Context, opts Options) (*Summary, error) {
	opts, err := h.prepare(opts)
	if err != nil {
		return nil, err
	}

	jobs, err := h.plan(ctx, opts)
	if err != nil {
		return nil, err
	}

	paths := countManifestJobs(jobs)
	hooks := observability.Hydration()
	hooks.OnRunStart(ctx, opts.Root, paths)
	start := h.now()

	agg := NewAggregator(h.deps.Reporter, opts, paths)
	agg.Begin()

	exec := &Executor{
		opts:     opts,
		runner:   h.deps.Runner,
		reporter: h.deps.Reporter,
		printer:  h.deps.Printer,
		shared:   h.deps.Shared,
		logger:   h.deps.Logger,
		now:      h.now,
	}
	results, err := exec.Execute(ctx, jobs)
	if err != nil {
		err = fmt.Errorf("hydrate: %w", err)
	}

	hooks.OnRunComplete(ctx, opts.Root, paths, h.now().Sub(start), err)
	h.deps.Logger.Info("hydration finished",
		"paths", paths,
		"jobs", len(results),
		"duration", h.now().Sub(start))

	summary := agg.Finish(results, err)
	return summary, err
}

func (h *Hydrator) prepare(opts Options) (Options, error) {
	opts, err := opts.WithDefaults()
	if err != nil {
		return opts, err
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

func (h *Hydrator) plan(ctx context.Context, opts Options) ([]Job, error) {
	manifests, err := Discover(opts.Root, opts.Basepath, !opts.SkipHydrateShared)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	components, err := h.deps.Inventory.ComponentPaths(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInventory, err, "load inventory")
	}

	kept, dropped := Partition(manifests, components, opts.hydrateBasepath())
	for _, m := range dropped {
		h.deps.Logger.Debug("dropped manifest", "path", m.Path)
	}
	h.deps.Logger.Debug("discovered manifests", "found", len(manifests), "kept", len(kept))

	copyShared := !opts.SkipCopyShared && h.deps.Shared != nil
	jobs := BuildJobs(opts.Root, kept, copyShared)

	// The embedded shell parses lines itself, so reject bad ones before
	// anything is cleaned.
	if opts.Shell == shell.VirtualShell {
		for _, job := range jobs {
			if job.Shared {
				continue
			}
			if err := shell.Validate(job.Command); err != nil {
				return nil, err
			}
		}
	}
	return jobs, nil
}
