// Package hydrate installs the dependencies of every active component in a
// multi-language project.
//
// # Pipeline
//
// A run is a single-threaded relay of five stages:
//
//  1. Discover: find package.json, requirements.txt and Gemfile manifests
//     below the basepath, plus the src/shared and src/views trees
//  2. Filter: keep manifests of active components, shared code, or the
//     project root; drop everything else silently
//  3. BuildJobs: resolve runtime, cleanup directory and install command for
//     each manifest, then append the shared hydration job
//  4. Executor: run jobs one at a time (clean, install, report) and stop at
//     the first failure
//  5. Aggregator: flatten per-job records between a leading status record
//     and a trailing summary record
//
// # Usage
//
//	h := hydrate.NewHydrator(hydrate.Deps{
//	    Inventory: inv,
//	    Reporter:  reporter,
//	    Printer:   printer,
//	    Shared:    shared,
//	    Logger:    logger,
//	})
//	summary, err := h.Run(ctx, hydrate.Options{Basepath: "src"})
//	for _, rec := range summary.Records {
//	    fmt.Println(rec.Term.Stdout)
//	}
//
// Run always returns a non-nil Summary once planning succeeded, so callers
// can render partial output when an installer fails.
package hydrate
