// Package history stores the summary of the last hydration run per project.
//
// Runs are keyed by project root, so `hydrate history show` can show what the
// previous install did (and why it failed) without rerunning it. Three
// backends are available:
//
//   - FileStore: JSON files below the user cache directory (default)
//   - RedisStore: a shared Redis instance, for CI fleets
//   - NullStore: history disabled
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/hydrate/pkg/errors"
	"github.com/matzehuels/hydrate/pkg/hydrate"
)

// Store persists run summaries.
type Store interface {
	// Get returns the last run stored for root. The bool is false on a miss.
	Get(ctx context.Context, root string) (*Run, bool, error)

	// Set stores run under run.Root, replacing any earlier run. A ttl of
	// zero keeps it until replaced.
	Set(ctx context.Context, run *Run, ttl time.Duration) error

	// Delete removes the stored run for root. Deleting a missing run is not
	// an error.
	Delete(ctx context.Context, root string) error

	// Close releases backend resources.
	Close() error
}

// Job is the stored outcome of one executed job.
type Job struct {
	Label   string        `json:"label"`
	Command string        `json:"command,omitempty"`
	State   string        `json:"state"`
	Elapsed time.Duration `json:"elapsed"`
}

// Run is a stored hydration run.
type Run struct {
	ID        string           `json:"id"`
	Root      string           `json:"root"`
	Basepath  string           `json:"basepath"`
	StartedAt time.Time        `json:"started_at"`
	Duration  time.Duration    `json:"duration"`
	Paths     int              `json:"paths"`
	Jobs      []Job            `json:"jobs"`
	Records   []hydrate.Record `json:"records"`
	Success   bool             `json:"success"`
	Error     string           `json:"error,omitempty"`
	ErrorCode string           `json:"error_code,omitempty"`
}

// NewRun builds a Run from a finished summary. opts must carry the resolved
// project root.
func NewRun(opts hydrate.Options, summary *hydrate.Summary, startedAt time.Time, duration time.Duration) *Run {
	run := &Run{
		ID:        uuid.NewString(),
		Root:      opts.Root,
		Basepath:  opts.Basepath,
		StartedAt: startedAt.UTC(),
		Duration:  duration,
		Success:   true,
	}
	if summary == nil {
		return run
	}

	run.Paths = summary.Jobs
	run.Records = summary.Records
	for _, r := range summary.Results {
		run.Jobs = append(run.Jobs, Job{
			Label:   r.Label,
			Command: r.Command,
			State:   r.State.String(),
			Elapsed: r.Elapsed,
		})
	}
	if summary.Err != nil {
		run.Success = false
		run.Error = summary.Err.Error()
		run.ErrorCode = string(errors.GetCode(summary.Err))
	}
	return run
}

// Key returns the storage key for a project root.
func Key(root string) string {
	return "run:" + Hash([]byte(root))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
