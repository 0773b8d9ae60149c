package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	hyerrors "github.com/matzehuels/hydrate/pkg/errors"
	"github.com/matzehuels/hydrate/pkg/hydrate"
)

func testRun(root string) *Run {
	summary := &hydrate.Summary{
		Jobs:    1,
		Records: []hydrate.Record{hydrate.NewRecord("Hydrating dependencies in 1 path")},
		Results: []hydrate.Result{{Label: "src/a", Command: "npm ci", State: hydrate.StateSucceeded, Elapsed: time.Second}},
	}
	return NewRun(hydrate.Options{Root: root, Basepath: "src"}, summary, time.Now(), 2*time.Second)
}

func TestNewRun(t *testing.T) {
	run := testRun("/project")
	if run.ID == "" {
		t.Error("ID should be set")
	}
	if !run.Success || run.Error != "" {
		t.Errorf("run = %+v, want success", run)
	}
	if len(run.Jobs) != 1 || run.Jobs[0].State != "succeeded" {
		t.Errorf("Jobs = %+v", run.Jobs)
	}
	if other := testRun("/project"); other.ID == run.ID {
		t.Error("run IDs should be unique")
	}

	failed := NewRun(hydrate.Options{Root: "/project"}, &hydrate.Summary{
		Err: hyerrors.New(hyerrors.ErrCodeCommand, "npm ci in src/a exited with status 1"),
	}, time.Now(), time.Second)
	if failed.Success || failed.ErrorCode != "COMMAND_FAILED" {
		t.Errorf("failed run = %+v, want COMMAND_FAILED", failed)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer s.Close()

	if _, hit, err := s.Get(ctx, "/project"); err != nil || hit {
		t.Fatalf("Get(empty) = hit %v, err %v, want miss", hit, err)
	}

	run := testRun("/project")
	if err := s.Set(ctx, run, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, hit, err := s.Get(ctx, "/project")
	if err != nil || !hit {
		t.Fatalf("Get() = hit %v, err %v, want hit", hit, err)
	}
	if got.ID != run.ID || got.Records[0].Raw.Stdout != "Hydrating dependencies in 1 path" {
		t.Errorf("Get() = %+v, want stored run", got)
	}

	if _, hit, _ := s.Get(ctx, "/other"); hit {
		t.Error("Get(/other) should miss")
	}

	if err := s.Delete(ctx, "/project"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := s.Get(ctx, "/project"); hit {
		t.Error("Get() after Delete should miss")
	}
	if err := s.Delete(ctx, "/project"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestFileStoreExpiration(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	if err := s.Set(ctx, testRun("/project"), time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := s.Get(ctx, "/project"); hit {
		t.Error("expired run should miss")
	}
}

func TestFileStoreCorruptEntry(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	path := s.path("/project")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := s.Get(ctx, "/project"); err != nil || hit {
		t.Errorf("Get(corrupt) = hit %v, err %v, want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Set(ctx, testRun("/project"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	if _, hit, _ := s.Get(ctx, "/project"); hit {
		t.Error("NullStore should not store data")
	}
	if err := s.Delete(ctx, "/project"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		cfg      Config
		wantType string
		wantCode hyerrors.Code
	}{
		{"default file", Config{Dir: t.TempDir()}, "*history.FileStore", ""},
		{"none", Config{Backend: BackendNone}, "*history.NullStore", ""},
		{"file without dir", Config{Backend: BackendFile}, "", hyerrors.ErrCodeInvalidConfig},
		{"redis without url", Config{Backend: BackendRedis}, "", hyerrors.ErrCodeInvalidConfig},
		{"redis bad url", Config{Backend: BackendRedis, RedisURL: "http://localhost"}, "", hyerrors.ErrCodeInvalidConfig},
		{"unknown", Config{Backend: "mongo"}, "", hyerrors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg)
			if tt.wantCode != "" {
				if !hyerrors.Is(err, tt.wantCode) {
					t.Fatalf("Open() error = %v, want %v", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer s.Close()
			if got := typeName(s); got != tt.wantType {
				t.Errorf("Open() = %s, want %s", got, tt.wantType)
			}
		})
	}
}

func TestKey(t *testing.T) {
	if Key("/a") == Key("/b") {
		t.Error("different roots should produce different keys")
	}
	if k := Key("/a"); len(k) != len("run:")+64 {
		t.Errorf("Key() = %q, want run: prefix and SHA-256 hex", k)
	}
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("HYDRATE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("HYDRATE_TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	s, err := NewRedisStore(ctx, url, "hydrate-test:")
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	defer s.Close()

	run := testRun(t.TempDir())
	if err := s.Set(ctx, run, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, hit, err := s.Get(ctx, run.Root)
	if err != nil || !hit || got.ID != run.ID {
		t.Fatalf("Get() = %+v, %v, %v, want stored run", got, hit, err)
	}
	if err := s.Delete(ctx, run.Root); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, err := s.Get(ctx, run.Root); hit || err != nil {
		t.Errorf("Get() after Delete = %v, %v, want miss", hit, err)
	}
}

func typeName(s Store) string {
	switch s.(type) {
	case *FileStore:
		return "*history.FileStore"
	case *NullStore:
		return "*history.NullStore"
	case *RedisStore:
		return "*history.RedisStore"
	}
	return "unknown"
}
