package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hydrate/pkg/history"
	"github.com/matzehuels/hydrate/pkg/hydrate"
)

// historyCommand creates the run history command.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the last hydration run of this project",
	}

	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyClearCommand())
	cmd.AddCommand(c.historyPathCommand())

	return cmd
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"last"},
		Short:   "Show the last run's outcome and output",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			run, ok, err := c.lastRun(ctx, cmd)
			if err != nil {
				return err
			}
			if !ok {
				printInfo("No hydration run recorded for this project")
				printNextStep("Run", appName+" install")
				return nil
			}
			c.printRun(run, raw)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print output without colors")

	return cmd
}

// historyClearCommand creates the "history clear" subcommand.
func (c *CLI) historyClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the last run of this project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig(ctx, cmd, nil)
			if err != nil {
				return err
			}
			root, err := c.absRoot()
			if err != nil {
				return err
			}

			store := c.openHistory(ctx, cfg)
			defer store.Close()
			if err := store.Delete(ctx, root); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}

			printSuccess("Cleared run history")
			printDetail("Project: %s", root)
			return nil
		},
	}
}

// historyPathCommand creates the "history path" subcommand.
func (c *CLI) historyPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where run history is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Context(), cmd, nil)
			if err != nil {
				return err
			}
			switch cfg.History.Backend {
			case history.BackendRedis:
				fmt.Fprintln(c.Stdout, cfg.History.RedisURL)
			case history.BackendNone:
				printInfo("Run history is disabled")
			default:
				fmt.Fprintln(c.Stdout, cfg.History.Dir)
			}
			return nil
		},
	}
}

func (c *CLI) lastRun(ctx context.Context, cmd *cobra.Command) (*history.Run, bool, error) {
	cfg, err := c.loadConfig(ctx, cmd, nil)
	if err != nil {
		return nil, false, err
	}
	root, err := c.absRoot()
	if err != nil {
		return nil, false, err
	}

	store := c.openHistory(ctx, cfg)
	defer store.Close()
	return store.Get(ctx, root)
}

// absRoot resolves the project root the way a run does, so history keys match.
func (c *CLI) absRoot() (string, error) {
	root, err := c.projectRoot()
	if err != nil {
		return "", err
	}
	opts, err := hydrate.Options{Root: root}.WithDefaults()
	if err != nil {
		return "", err
	}
	return opts.Root, nil
}

// printRun prints a stored run: a header, then its records in order.
func (c *CLI) printRun(run *history.Run, raw bool) {
	status := StyleSuccess.Render("succeeded")
	if !run.Success {
		status = styleIconError.Render("failed")
		if run.ErrorCode != "" {
			status += StyleDim.Render(" (" + run.ErrorCode + ")")
		}
	}

	printKeyValue("Run", run.ID)
	printKeyValue("Started", run.StartedAt.Local().Format(time.DateTime))
	printKeyValue("Duration", run.Duration.Round(time.Millisecond).String())
	printKeyValue("Basepath", run.Basepath)
	printKeyValue("Paths", fmt.Sprint(run.Paths))
	printKeyValue("Status", status)
	printNewline()

	for _, rec := range run.Records {
		out := rec.Term.Stdout
		if raw {
			out = rec.Raw.Stdout
		}
		fmt.Fprintln(c.Stdout, strings.TrimRight(out, "\n"))
	}
}
