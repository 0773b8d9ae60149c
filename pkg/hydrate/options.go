package hydrate

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/hydrate/pkg/errors"
)

// DefaultBasepath is the conventional source directory scanned for manifests.
const DefaultBasepath = "src"

// Options configures a hydration run.
type Options struct {
	Root     string            // Project root (default: current working directory)
	Basepath string            // Directory to scan, absolute or relative to Root (default: "src")
	Env      map[string]string // Extra environment for every installer
	Shell    string            // Shell for installers; "virtual" selects the embedded shell
	Timeout  time.Duration     // Per-installer timeout; zero disables
	Quiet    bool              // Suppress the "nothing to hydrate" notice and progress output
	Verbose  bool              // Include installer output and the "no dependencies" notice

	// SkipCopyShared drops the trailing shared hydration job (default: false = copy).
	SkipCopyShared bool
	// SkipHydrateShared skips the src/shared and src/views discovery pass
	// (default: false = hydrate). Set for isolated single-component hydration.
	SkipHydrateShared bool
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() (Options, error) {
	opts := o
	if opts.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidPath, err, "determine project root")
		}
		opts.Root = wd
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve project root %s", opts.Root)
	}
	opts.Root = root
	if opts.Basepath == "" {
		opts.Basepath = DefaultBasepath
	}
	return opts, nil
}

// Validate checks options after defaults have been applied.
func (o Options) Validate() error {
	rel, err := filepath.Rel(o.Root, o.basepathAbs())
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "basepath %s", o.Basepath)
	}
	if err := errors.ValidatePath(filepath.ToSlash(rel)); err != nil {
		return fmt.Errorf("basepath %s must be inside %s: %w", o.Basepath, o.Root, err)
	}
	if o.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout cannot be negative: %s", o.Timeout)
	}
	return errors.ValidateEnv(o.Env)
}

// basepathAbs returns Basepath resolved against Root.
func (o Options) basepathAbs() string {
	if filepath.IsAbs(o.Basepath) {
		return filepath.Clean(o.Basepath)
	}
	return filepath.Join(o.Root, o.Basepath)
}

// hydrateBasepath reports whether the basepath is the project root itself,
// in which case a manifest sitting directly at the root is hydrated too.
func (o Options) hydrateBasepath() bool {
	return o.basepathAbs() == filepath.Clean(o.Root)
}
