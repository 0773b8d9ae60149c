package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/hydrate/pkg/observability"
)

// FileStore keeps runs as JSON files in a directory, one per project.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store in dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// entry wraps a stored run with its expiration.
type entry struct {
	Run       *Run      `json:"run"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves the last run for root.
func (s *FileStore) Get(ctx context.Context, root string) (*Run, bool, error) {
	path := s.path(root)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		observability.History().OnHistoryMiss(ctx, "file")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil || e.Run == nil {
		// Corrupt entry - treat as miss
		_ = os.Remove(path)
		observability.History().OnHistoryMiss(ctx, "file")
		return nil, false, nil
	}

	if !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt) {
		_ = os.Remove(path)
		observability.History().OnHistoryMiss(ctx, "file")
		return nil, false, nil
	}

	observability.History().OnHistoryHit(ctx, "file")
	return e.Run, true, nil
}

// Set stores run, replacing the previous run for the same root.
func (s *FileStore) Set(ctx context.Context, run *Run, ttl time.Duration) error {
	e := entry{Run: run}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := s.path(run.Root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	observability.History().OnHistorySave(ctx, "file", len(data))
	return nil
}

// Delete removes the stored run for root.
func (s *FileStore) Delete(ctx context.Context, root string) error {
	err := os.Remove(s.path(root))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file store.
func (s *FileStore) Close() error {
	return nil
}

// path converts a project root to a file path, fanned out by the first two
// hash characters.
func (s *FileStore) path(root string) string {
	hash := Hash([]byte(root))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

var _ Store = (*FileStore)(nil)
