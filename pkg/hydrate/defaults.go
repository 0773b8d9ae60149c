package hydrate

import (
	"context"
	"strings"
)

// nopReporter displays nothing and echoes messages back.
type nopReporter struct{}

func (nopReporter) Start(msg string) string  { return msg }
func (nopReporter) Done(msg string) string   { return msg }
func (nopReporter) Cancel()                  {}
func (nopReporter) Status(msg string) string { return msg }

// staticInventory is an Inventory over a fixed list of paths.
type staticInventory []string

func (s staticInventory) ComponentPaths(context.Context) ([]string, error) {
	return s, nil
}

// StaticInventory returns an Inventory that always reports paths.
func StaticInventory(paths ...string) Inventory {
	return staticInventory(paths)
}

// plainPrinter is the fallback Printer: status line, then captured output
// on failure or in verbose mode.
type plainPrinter struct{}

func (plainPrinter) Print(o Outcome) (Record, error) {
	var lines []string
	if o.Status != "" {
		lines = append(lines, o.Status)
	}
	if o.Err != nil || o.Verbose {
		for _, s := range []string{o.Stdout, o.Stderr} {
			if s = strings.TrimRight(s, "\n"); s != "" {
				lines = append(lines, s)
			}
		}
	}
	if o.Err != nil {
		lines = append(lines, o.Err.Error())
	}
	return NewRecord(strings.Join(lines, "\n")), o.Err
}
