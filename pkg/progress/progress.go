// Package progress displays hydration progress on a terminal.
//
// A Reporter prints one line per event, prefixed with a name:
//
//	› Hydrate Hydrating dependencies in 2 paths
//	✓ Hydrate Hydrated src/http/get-index
//
// Between Start and Done a spinner animates the pending line when the
// Reporter is attached to a terminal. Every method returns the line it
// formatted, so callers can keep it as a record even in quiet mode.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Options configures a Reporter.
type Options struct {
	Name    string    // Line prefix, e.g. "Hydrate"
	Writer  io.Writer // Destination; nil means os.Stderr
	Quiet   bool      // Format lines without printing them
	Animate bool      // Animate a spinner between Start and Done
}

// Reporter prints progress lines. It is safe for concurrent use, though
// hydration drives it from a single goroutine.
type Reporter struct {
	name    string
	w       io.Writer
	quiet   bool
	animate bool

	mu      sync.Mutex
	spinner *spinner
}

// New creates a Reporter.
func New(opts Options) *Reporter {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{
		name:    opts.Name,
		w:       w,
		quiet:   opts.Quiet,
		animate: opts.Animate,
	}
}

// Status prints an informational line.
func (r *Reporter) Status(msg string) string {
	line := r.format(styleIconInfo.Render(iconInfo), msg)
	r.println(line)
	return line
}

// Start marks msg as in progress. With animation on, the line is drawn by
// a spinner until Done or Cancel; otherwise it is printed once.
func (r *Reporter) Start(msg string) string {
	line := r.format(styleIconPending.Render(iconPending), msg)
	r.stopSpinner()
	if r.quiet {
		return line
	}
	if r.animate {
		s := newSpinner(context.Background(), r.w, &r.mu, r.prefix()+msg)
		r.mu.Lock()
		r.spinner = s
		r.mu.Unlock()
		s.start()
		return line
	}
	r.println(line)
	return line
}

// Done ends the pending line and prints msg as completed.
func (r *Reporter) Done(msg string) string {
	line := r.format(styleIconSuccess.Render(iconSuccess), msg)
	r.stopSpinner()
	r.println(line)
	return line
}

// Cancel ends the pending line without printing anything.
func (r *Reporter) Cancel() {
	r.stopSpinner()
}

func (r *Reporter) stopSpinner() {
	r.mu.Lock()
	s := r.spinner
	r.spinner = nil
	r.mu.Unlock()
	if s != nil {
		s.stop()
	}
}

func (r *Reporter) println(line string) {
	if r.quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, line)
}

func (r *Reporter) prefix() string {
	if r.name == "" {
		return ""
	}
	return r.name + " "
}

func (r *Reporter) format(icon, msg string) string {
	if r.name == "" {
		return icon + " " + msg
	}
	return icon + " " + styleName.Render(r.name) + " " + msg
}
