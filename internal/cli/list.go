package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hydrate/pkg/hydrate"
)

// listCommand creates the list command, a dry run of install.
func (c *CLI) listCommand() *cobra.Command {
	flags := installFlags{}

	cmd := &cobra.Command{
		Use:     "list [basepath]",
		Aliases: []string{"ls", "plan"},
		Short:   "Show what install would run, without running it",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := cmd.Flags().Set("basepath", args[0]); err != nil {
					return err
				}
			}
			return c.runList(cmd.Context(), cmd, flags)
		},
	}

	cmd.Flags().String("basepath", hydrate.DefaultBasepath, "directory to scan for manifests")
	cmd.Flags().BoolVar(&flags.noShared, "no-shared", false, "omit the shared code job")
	cmd.Flags().BoolVar(&flags.isolated, "isolated", false, "plan only the basepath, without any shared code")

	return cmd
}

func (c *CLI) runList(ctx context.Context, cmd *cobra.Command, flags installFlags) error {
	cfg, err := c.loadConfig(ctx, cmd, map[string]string{"basepath": "basepath"})
	if err != nil {
		return err
	}
	applyInstallFlags(cfg, flags)

	opts, err := c.hydrateOptions(cfg)
	if err != nil {
		return err
	}
	h, err := c.newHydrator(opts)
	if err != nil {
		return err
	}

	jobs, err := h.Plan(ctx, opts)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		printInfo("Nothing to hydrate in %s", cfg.Basepath)
		return nil
	}

	fmt.Fprintln(c.Stdout, renderJobs(jobs))
	printDetail("%d job(s); run %s to execute", len(jobs), styleCommand.Render(appName+" install"))
	return nil
}

// renderJobs formats planned jobs as a table, in execution order.
func renderJobs(jobs []hydrate.Job) string {
	rows := make([][]string, 0, len(jobs))
	for i, j := range jobs {
		kind, command, cleanup := string(j.Kind), j.Command, j.CleanupDir
		if j.Shared {
			kind, command = "—", "copy src/shared, src/views"
		}
		if cleanup == "" {
			cleanup = "—"
		}
		rows = append(rows, []string{fmt.Sprint(i + 1), j.Label, kind, command, cleanup})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Path", "Runtime", "Command", "Cleans").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0 || col == 4:
				return base.Foreground(colorDim)
			case col == 3:
				return base.Foreground(colorBlue)
			}
			return base
		})

	return t.Render()
}
