package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hydrate/pkg/observability"
)

// registerHooks routes hydration and history events to the CLI logger at
// debug level.
func (c *CLI) registerHooks() {
	observability.SetHydrationHooks(&logHydrationHooks{logger: c.Logger})
	observability.SetHistoryHooks(&logHistoryHooks{logger: c.Logger})
}

type logHydrationHooks struct {
	logger *log.Logger
}

func (h *logHydrationHooks) OnRunStart(_ context.Context, root string, jobs int) {
	h.logger.Debug("run started", "root", root, "paths", jobs)
}

func (h *logHydrationHooks) OnRunComplete(_ context.Context, root string, jobs int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("run failed", "root", root, "paths", jobs, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("run complete", "root", root, "paths", jobs, "duration", d.Round(time.Millisecond))
}

func (h *logHydrationHooks) OnJobStart(_ context.Context, label, command string) {
	h.logger.Debug("job started", "label", label, "command", command)
}

func (h *logHydrationHooks) OnCleanup(_ context.Context, dir string, err error) {
	if err != nil {
		h.logger.Debug("cleanup failed", "dir", dir, "err", err)
		return
	}
	h.logger.Debug("cleaned", "dir", dir)
}

func (h *logHydrationHooks) OnJobComplete(_ context.Context, label string, d time.Duration, err error) {
	h.logger.Debug("job complete", "label", label, "duration", d.Round(time.Millisecond), "ok", err == nil)
}

type logHistoryHooks struct {
	logger *log.Logger
}

func (h *logHistoryHooks) OnHistoryHit(_ context.Context, backend string) {
	h.logger.Debug("history hit", "backend", backend)
}

func (h *logHistoryHooks) OnHistoryMiss(_ context.Context, backend string) {
	h.logger.Debug("history miss", "backend", backend)
}

func (h *logHistoryHooks) OnHistorySave(_ context.Context, backend string, size int) {
	h.logger.Debug("history saved", "backend", backend, "bytes", size)
}

var (
	_ observability.HydrationHooks = (*logHydrationHooks)(nil)
	_ observability.HistoryHooks   = (*logHistoryHooks)(nil)
)
