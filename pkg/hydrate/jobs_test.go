package hydrate

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/hydrate/pkg/runtimes"
)

func TestBuildJobs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"src/ci/package.json", "src/ci/package-lock.json", "src/ci/yarn.lock",
		"src/yarn/package.json", "src/yarn/yarn.lock",
		"src/plain/package.json",
		"src/py/requirements.txt",
		"src/rb/Gemfile",
		"package.json",
	)

	manifests := []Manifest{
		{Path: filepath.FromSlash("src/ci/package.json"), Kind: runtimes.KindJavaScript},
		{Path: filepath.FromSlash("src/yarn/package.json"), Kind: runtimes.KindJavaScript},
		{Path: filepath.FromSlash("src/plain/package.json"), Kind: runtimes.KindJavaScript},
		{Path: filepath.FromSlash("src/py/requirements.txt"), Kind: runtimes.KindPython},
		{Path: filepath.FromSlash("src/rb/Gemfile"), Kind: runtimes.KindRuby},
		{Path: "package.json", Kind: runtimes.KindJavaScript},
	}

	tests := []struct {
		label, command, cleanup string
	}{
		{"src/ci", "npm ci", "src/ci/node_modules"},
		{"src/yarn", "yarn", "src/yarn/node_modules"},
		{"src/plain", "npm i", "src/plain/node_modules"},
		{"src/py", "pip3 install -r requirements.txt -t ./vendor", "src/py/vendor"},
		{"src/rb", "bundle install --path vendor/bundle", "src/rb/vendor/bundle"},
		{"project root", "npm i", "node_modules"},
	}

	jobs := BuildJobs(root, manifests, true)
	if len(jobs) != len(tests)+1 {
		t.Fatalf("BuildJobs() returned %d jobs, want %d", len(jobs), len(tests)+1)
	}

	for i, tt := range tests {
		j := jobs[i]
		if filepath.ToSlash(j.Label) != tt.label {
			t.Errorf("jobs[%d].Label = %q, want %q", i, j.Label, tt.label)
		}
		if j.Command != tt.command {
			t.Errorf("jobs[%d].Command = %q, want %q", i, j.Command, tt.command)
		}
		if filepath.ToSlash(j.CleanupDir) != tt.cleanup {
			t.Errorf("jobs[%d].CleanupDir = %q, want %q", i, j.CleanupDir, tt.cleanup)
		}
		if j.Shared {
			t.Errorf("jobs[%d].Shared = true, want false", i)
		}
	}

	last := jobs[len(jobs)-1]
	if !last.Shared || last.Label != SharedLabel || last.Command != "" {
		t.Errorf("last job = %+v, want shared job", last)
	}
	if n := countManifestJobs(jobs); n != len(tests) {
		t.Errorf("countManifestJobs() = %d, want %d", n, len(tests))
	}
}

func TestBuildJobsWithoutShared(t *testing.T) {
	jobs := BuildJobs(t.TempDir(), nil, false)
	if len(jobs) != 0 {
		t.Errorf("BuildJobs(nil, false) = %v, want empty", jobs)
	}

	jobs = BuildJobs(t.TempDir(), nil, true)
	if len(jobs) != 1 || !jobs[0].Shared {
		t.Errorf("BuildJobs(nil, true) = %v, want only the shared job", jobs)
	}
}
