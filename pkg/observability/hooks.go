// Package observability provides hooks for metrics, tracing, and logging.
//
// Hydration and history code emit events through the hooks registered here
// without depending on any observability backend. The CLI registers a
// logging implementation at startup; libraries and tests see no-ops unless
// something else is registered.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHydrationHooks(&myHydrationHooks{})
//	    observability.SetHistoryHooks(&myHistoryHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Hydration().OnJobStart(ctx, label, command)
//	// ... run installer ...
//	observability.Hydration().OnJobComplete(ctx, label, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Hydration Hooks
// =============================================================================

// HydrationHooks receives events from the hydration executor.
type HydrationHooks interface {
	// Run events
	OnRunStart(ctx context.Context, root string, jobs int)
	OnRunComplete(ctx context.Context, root string, jobs int, duration time.Duration, err error)

	// Job events
	OnJobStart(ctx context.Context, label, command string)
	OnCleanup(ctx context.Context, dir string, err error)
	OnJobComplete(ctx context.Context, label string, duration time.Duration, err error)
}

// =============================================================================
// History Hooks
// =============================================================================

// HistoryHooks receives events from run history stores.
type HistoryHooks interface {
	// OnHistoryHit records a successful lookup of a stored run.
	OnHistoryHit(ctx context.Context, backend string)

	// OnHistoryMiss records a lookup with no stored run.
	OnHistoryMiss(ctx context.Context, backend string)

	// OnHistorySave records a stored run summary.
	OnHistorySave(ctx context.Context, backend string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHydrationHooks is a no-op implementation of HydrationHooks.
type NoopHydrationHooks struct{}

func (NoopHydrationHooks) OnRunStart(context.Context, string, int) {}
func (NoopHydrationHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopHydrationHooks) OnJobStart(context.Context, string, string)                  {}
func (NoopHydrationHooks) OnCleanup(context.Context, string, error)                    {}
func (NoopHydrationHooks) OnJobComplete(context.Context, string, time.Duration, error) {}

// NoopHistoryHooks is a no-op implementation of HistoryHooks.
type NoopHistoryHooks struct{}

func (NoopHistoryHooks) OnHistoryHit(context.Context, string)       {}
func (NoopHistoryHooks) OnHistoryMiss(context.Context, string)      {}
func (NoopHistoryHooks) OnHistorySave(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	hydrationHooks HydrationHooks = NoopHydrationHooks{}
	historyHooks   HistoryHooks   = NoopHistoryHooks{}
	hooksMu        sync.RWMutex
)

// SetHydrationHooks registers custom hydration hooks.
// This should be called once at application startup before any runs.
func SetHydrationHooks(h HydrationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		hydrationHooks = h
	}
}

// SetHistoryHooks registers custom history hooks.
func SetHistoryHooks(h HistoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		historyHooks = h
	}
}

// Hydration returns the registered hydration hooks.
func Hydration() HydrationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return hydrationHooks
}

// History returns the registered history hooks.
func History() HistoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return historyHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hydrationHooks = NoopHydrationHooks{}
	historyHooks = NoopHistoryHooks{}
}
