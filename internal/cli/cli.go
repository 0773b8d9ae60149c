// Package cli implements the hydrate command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/matzehuels/hydrate/internal/config"
	"github.com/matzehuels/hydrate/pkg/buildinfo"
	"github.com/matzehuels/hydrate/pkg/history"
	"github.com/matzehuels/hydrate/pkg/hydrate"
	"github.com/matzehuels/hydrate/pkg/inventory"
	"github.com/matzehuels/hydrate/pkg/printer"
	"github.com/matzehuels/hydrate/pkg/progress"
	"github.com/matzehuels/hydrate/pkg/shared"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = config.AppName

	// progressName prefixes every progress line.
	progressName = "Hydrate"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrHydrationFailed marks a run whose failure has already been reported to
// the user. main exits non-zero without printing it again.
var ErrHydrationFailed = errors.New("hydration failed")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Stdout receives job output and command results; Stderr receives
	// progress lines. Both default to the process streams.
	Stdout io.Writer
	Stderr io.Writer

	// global flags
	configFile string
	cwd        string
	verbose    bool
	quiet      bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Hydrate installs dependencies for every component of a project",
		Long: `Hydrate finds dependency manifests (package.json, requirements.txt, Gemfile)
under a project's source tree, reinstalls each component's dependencies with
the matching package manager, and copies shared code into every component.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case c.verbose:
				c.SetLogLevel(LogDebug)
			case c.quiet:
				c.SetLogLevel(log.WarnLevel)
			}
			c.registerHooks()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "show installer output and debug logs")
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "suppress progress output")
	flags.StringVar(&c.configFile, "config", "", "config file (default: <project>/"+config.FileName+")")
	flags.StringVarP(&c.cwd, "cwd", "C", "", "project root (default: current directory)")

	root.AddCommand(c.installCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// projectRoot returns the directory hydrate operates on.
func (c *CLI) projectRoot() (string, error) {
	if c.cwd != "" {
		return c.cwd, nil
	}
	return os.Getwd()
}

// loadConfig resolves configuration for cmd. keys maps config keys to the
// names of cmd's flags that override them.
func (c *CLI) loadConfig(ctx context.Context, cmd *cobra.Command, keys map[string]string) (*config.Config, error) {
	root, err := c.projectRoot()
	if err != nil {
		return nil, err
	}

	bound := map[string]*pflag.Flag{
		"verbose": cmd.Flag("verbose"),
		"quiet":   cmd.Flag("quiet"),
	}
	for key, name := range keys {
		bound[key] = cmd.Flag(name)
	}

	cfg, path, err := config.Load(ctx, config.LoadOptions{
		Root:       root,
		ConfigFile: c.configFile,
		Flags:      bound,
	})
	if err != nil {
		return nil, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "file", path)
	}
	return cfg, nil
}

// hydrateOptions converts resolved configuration into run options.
func (c *CLI) hydrateOptions(cfg *config.Config) (hydrate.Options, error) {
	root, err := c.projectRoot()
	if err != nil {
		return hydrate.Options{}, err
	}
	return hydrate.Options{
		Root:              root,
		Basepath:          cfg.Basepath,
		Env:               cfg.Env,
		Shell:             cfg.Shell,
		Timeout:           cfg.Timeout,
		Quiet:             cfg.Quiet,
		Verbose:           cfg.Verbose,
		SkipCopyShared:    !cfg.CopyShared,
		SkipHydrateShared: !cfg.HydrateShared,
	}, nil
}

// =============================================================================
// Hydrator Factory
// =============================================================================

// newHydrator wires the hydration engine for CLI use.
func (c *CLI) newHydrator(opts hydrate.Options) (*hydrate.Hydrator, error) {
	inv, err := inventory.LoadDir(opts.Root)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded inventory", "components", len(inv.Components))

	return hydrate.NewHydrator(hydrate.Deps{
		Inventory: inv,
		Reporter: progress.New(progress.Options{
			Name:    progressName,
			Writer:  c.Stderr,
			Quiet:   opts.Quiet,
			Animate: isTerminal(c.Stderr),
		}),
		Printer: printer.New(c.Stdout, opts.Quiet),
		Shared:  shared.New(inv, c.Logger),
		Logger:  c.Logger,
	}), nil
}

// openHistory opens the configured run history store. A store that cannot
// be opened degrades to a NullStore so hydration itself never fails on it.
func (c *CLI) openHistory(ctx context.Context, cfg *config.Config) history.Store {
	store, err := history.Open(ctx, cfg.History.Store())
	if err != nil {
		c.Logger.Warn("run history unavailable", "backend", cfg.History.Backend, "err", err)
		return history.NewNullStore()
	}
	return store
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
