// Package printer formats installer output for display.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/hydrate/pkg/errors"
	"github.com/matzehuels/hydrate/pkg/hydrate"
)

var (
	styleIconError = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	styleLabel     = lipgloss.NewStyle().Bold(true)
	styleCommand   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	styleOutput    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleMessage   = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
)

// Printer writes installer output below the progress line of its job.
// Captured output is shown for failures, and for every job in verbose mode.
type Printer struct {
	w     io.Writer
	quiet bool
}

// New creates a Printer writing to w (os.Stdout when nil). A quiet Printer
// still returns records but writes nothing.
func New(w io.Writer, quiet bool) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w, quiet: quiet}
}

// Print formats o, writes the body and returns the record for the job.
// The status line is part of the record but not written again, since the
// progress reporter already displayed it.
func (p *Printer) Print(o hydrate.Outcome) (hydrate.Record, error) {
	body := p.body(o)
	if len(body) > 0 && !p.quiet {
		fmt.Fprintln(p.w, strings.Join(body, "\n"))
	}

	lines := body
	if o.Status != "" {
		lines = append([]string{o.Status}, body...)
	}
	return hydrate.NewRecord(strings.Join(lines, "\n")), o.Err
}

func (p *Printer) body(o hydrate.Outcome) []string {
	var lines []string
	if o.Err != nil {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			styleIconError.Render("✗"),
			styleLabel.Render(o.Label),
			styleCommand.Render(o.Command)))
	}
	if o.Err != nil || o.Verbose {
		lines = append(lines, indent(o.Stdout)...)
		lines = append(lines, indent(o.Stderr)...)
	}
	if o.Err != nil {
		lines = append(lines, "  "+styleMessage.Render(errors.UserMessage(o.Err)))
	}
	return lines
}

// indent splits captured output into dimmed, indented lines.
func indent(s string) []string {
	s = strings.TrimRight(s, "\r\n")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	raw := strings.Split(s, "\n")
	out := make([]string, len(raw))
	for i, line := range raw {
		out[i] = "  " + styleOutput.Render(strings.TrimRight(line, "\r"))
	}
	return out
}
