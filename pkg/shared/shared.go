// Package shared copies cross-component code into components.
//
// After dependencies are installed, src/shared is copied into every enabled
// component and src/views into every component that asks for views. The
// copy lands where the component's runtime resolves it: node_modules/@architect
// for JavaScript, vendor for Python and Ruby. Previous copies are replaced.
package shared

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hydrate/pkg/errors"
	"github.com/matzehuels/hydrate/pkg/hydrate"
	"github.com/matzehuels/hydrate/pkg/runtimes"
	"github.com/matzehuels/hydrate/pkg/runtimes/languages"
)

// Components lists copy destinations. *inventory.Inventory implements it.
type Components interface {
	ComponentPaths(ctx context.Context) ([]string, error)
	ViewPaths(ctx context.Context) ([]string, error)
}

// tree is one shared source directory and the components it is copied to.
type tree struct {
	name    string // Name of the copy inside the target directory
	src     string // Relative to the project root, slash separated
	targets func(context.Context) ([]string, error)
}

// Hydrator implements hydrate.SharedHydrator by copying directories.
type Hydrator struct {
	components Components
	logger     *log.Logger
}

// New creates a shared hydrator over components. A nil logger uses
// log.Default.
func New(components Components, logger *log.Logger) *Hydrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Hydrator{components: components, logger: logger}
}

// Hydrate copies src/shared and src/views. It returns one record per tree
// copied; trees missing from the project are skipped without a record.
func (h *Hydrator) Hydrate(ctx context.Context, p hydrate.SharedParams) ([]hydrate.Record, error) {
	reporter := p.Reporter
	trees := []tree{
		{name: "shared", src: "src/shared", targets: h.components.ComponentPaths},
		{name: "views", src: "src/views", targets: h.components.ViewPaths},
	}

	var records []hydrate.Record
	for _, t := range trees {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		src := filepath.Join(p.Root, filepath.FromSlash(t.src))
		if info, err := os.Stat(src); err != nil || !info.IsDir() {
			h.logger.Debug("no shared tree", "path", t.src)
			continue
		}

		comps, err := t.targets(ctx)
		if err != nil {
			return records, errors.Wrap(errors.ErrCodeInventory, err, "list %s targets", t.name)
		}

		start := time.Now()
		if reporter != nil {
			reporter.Start(fmt.Sprintf("Hydrating app with %s", t.src))
		}
		for _, comp := range comps {
			if err := copyTree(p.Root, src, comp, t.name); err != nil {
				if reporter != nil {
					reporter.Cancel()
				}
				return records, err
			}
		}

		msg := fmt.Sprintf("Hydrated app with %s (%d %s)", t.src, len(comps), plural(len(comps)))
		if reporter != nil {
			msg = reporter.Done(msg)
		}
		h.logger.Debug("copied shared tree", "path", t.src, "components", len(comps), "duration", time.Since(start))
		records = append(records, hydrate.NewRecord(msg))
	}
	return records, nil
}

// copyTree replaces comp's copy of src with a fresh one.
func copyTree(root, src, comp, name string) error {
	compDir := filepath.Join(root, filepath.FromSlash(comp))
	dst := languageOf(compDir).SharedTarget(compDir, name)

	if err := os.RemoveAll(dst); err != nil {
		return errors.Wrap(errors.ErrCodeCleanup, err, "remove %s", dst)
	}
	if err := copyDir(src, dst); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "copy %s into %s", name, comp)
	}
	return nil
}

// languageOf picks the runtime whose manifest is in dir. Components without
// a manifest get vendor-style copies.
func languageOf(dir string) *runtimes.Language {
	for _, lang := range languages.All {
		if _, err := os.Stat(filepath.Join(dir, lang.Manifest)); err == nil {
			return lang
		}
	}
	return &runtimes.Language{SharedDir: "vendor"}
}

func plural(n int) string {
	if n == 1 {
		return "component"
	}
	return "components"
}
