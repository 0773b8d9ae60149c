package cli

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hydrate/internal/config"
	"github.com/matzehuels/hydrate/pkg/errors"
	"github.com/matzehuels/hydrate/pkg/history"
	"github.com/matzehuels/hydrate/pkg/hydrate"
	"github.com/matzehuels/hydrate/pkg/shell"
)

// installFlags holds flags for the install command.
type installFlags struct {
	noShared bool
	isolated bool
	env      map[string]string
}

// installFlagKeys maps config keys to the install flags that override them.
var installFlagKeys = map[string]string{
	"basepath": "basepath",
	"shell":    "shell",
	"timeout":  "timeout",
}

// installCommand creates the install command.
func (c *CLI) installCommand() *cobra.Command {
	flags := installFlags{}

	cmd := &cobra.Command{
		Use:     "install [basepath]",
		Aliases: []string{"i"},
		Short:   "Install dependencies for every component",
		Long: `Install dependencies for every component under the basepath.

Each directory holding a package.json, requirements.txt or Gemfile is cleaned
and reinstalled with its package manager, one at a time. The first failure
stops the run. Afterwards src/shared and src/views are copied into the
registered components.

Components are registered in hydrate.toml:

  [[component]]
  path = "src/http/get-index"
  views = true`,
		Example: `  # Hydrate everything under src/
  hydrate install

  # Hydrate a single component without touching shared code
  hydrate install src/http/get-index --isolated

  # Use the embedded shell and a per-installer timeout
  hydrate install --shell virtual --timeout 5m`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := cmd.Flags().Set("basepath", args[0]); err != nil {
					return err
				}
			}
			return c.runInstall(cmd.Context(), cmd, flags)
		},
	}

	cmd.Flags().String("basepath", hydrate.DefaultBasepath, "directory to scan for manifests")
	cmd.Flags().String("shell", "", `shell for installers ("virtual" for the embedded shell)`)
	cmd.Flags().Duration("timeout", 0, "per-installer timeout (0 disables)")
	cmd.Flags().BoolVar(&flags.noShared, "no-shared", false, "skip copying src/shared and src/views into components")
	cmd.Flags().BoolVar(&flags.isolated, "isolated", false, "hydrate only the basepath, without any shared code")
	cmd.Flags().StringToStringVarP(&flags.env, "env", "e", nil, "extra installer environment (KEY=VALUE)")

	return cmd
}

// runInstall executes the install command.
func (c *CLI) runInstall(ctx context.Context, cmd *cobra.Command, flags installFlags) error {
	cfg, err := c.loadConfig(ctx, cmd, installFlagKeys)
	if err != nil {
		return err
	}
	applyInstallFlags(cfg, flags)
	if err := errors.ValidateEnv(cfg.Env); err != nil {
		return err
	}

	opts, err := c.hydrateOptions(cfg)
	if err != nil {
		return err
	}
	if opts, err = opts.WithDefaults(); err != nil {
		return err
	}
	if opts.Shell == shell.VirtualShell {
		c.Logger.Debug("using embedded shell")
	}

	h, err := c.newHydrator(opts)
	if err != nil {
		return err
	}

	store := c.openHistory(ctx, cfg)
	defer store.Close()

	start := time.Now()
	summary, runErr := h.Run(ctx, opts)
	if summary == nil {
		return runErr
	}

	c.saveRun(ctx, store, cfg, history.NewRun(opts, summary, start, time.Since(start)))

	if runErr != nil {
		if opts.Quiet {
			return runErr
		}
		printError("%s", errors.UserMessage(runErr))
		if !opts.Verbose {
			printDetail("Run with --verbose for installer output")
		}
		return fmt.Errorf("%w: %w", ErrHydrationFailed, runErr)
	}
	return nil
}

// applyInstallFlags folds the inverted shared-code flags and --env into cfg.
func applyInstallFlags(cfg *config.Config, flags installFlags) {
	if flags.noShared {
		cfg.CopyShared = false
	}
	if flags.isolated {
		cfg.CopyShared = false
		cfg.HydrateShared = false
	}
	if len(flags.env) > 0 {
		env := make(map[string]string, len(cfg.Env)+len(flags.env))
		maps.Copy(env, cfg.Env)
		maps.Copy(env, flags.env)
		cfg.Env = env
	}
}

func (c *CLI) saveRun(ctx context.Context, store history.Store, cfg *config.Config, run *history.Run) {
	// A canceled run still gets recorded.
	ctx = context.WithoutCancel(ctx)
	if err := store.Set(ctx, run, cfg.History.TTL); err != nil {
		c.Logger.Warn("failed to save run history", "err", err)
		return
	}
	c.Logger.Debug("saved run", "id", run.ID, "backend", cfg.History.Backend)
}
