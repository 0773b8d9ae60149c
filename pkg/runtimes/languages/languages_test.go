package languages

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/hydrate/pkg/runtimes"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want runtimes.Kind
	}{
		{"src/http/get-index/package.json", runtimes.KindJavaScript},
		{"src/events/ping/requirements.txt", runtimes.KindPython},
		{"src/queues/work/Gemfile", runtimes.KindRuby},
		{"package.json", runtimes.KindJavaScript},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang := Detect(filepath.FromSlash(tt.path))
			if lang == nil {
				t.Fatalf("Detect(%q) = nil, want %s", tt.path, tt.want)
			}
			if lang.Kind != tt.want {
				t.Errorf("Detect(%q).Kind = %s, want %s", tt.path, lang.Kind, tt.want)
			}
		})
	}

	for _, p := range []string{"Gemfile.lock", "package-lock.json", "requirements-dev.txt", "gemfile"} {
		if lang := Detect(p); lang != nil {
			t.Errorf("Detect(%q) = %s, want nil", p, lang.Kind)
		}
	}
}

func TestInstallCommands(t *testing.T) {
	tests := []struct {
		name  string
		kind  runtimes.Kind
		locks []string
		want  string
	}{
		{"js exact lockfile", runtimes.KindJavaScript, []string{"package-lock.json"}, "npm ci"},
		{"js yarn lockfile", runtimes.KindJavaScript, []string{"yarn.lock"}, "yarn"},
		{"js both lockfiles", runtimes.KindJavaScript, []string{"yarn.lock", "package-lock.json"}, "npm ci"},
		{"js no lockfile", runtimes.KindJavaScript, nil, "npm i"},
		{"python", runtimes.KindPython, nil, "pip3 install -r requirements.txt -t ./vendor"},
		{"python ignores lockfiles", runtimes.KindPython, []string{"package-lock.json"}, "pip3 install -r requirements.txt -t ./vendor"},
		{"ruby", runtimes.KindRuby, []string{"Gemfile.lock"}, "bundle install --path vendor/bundle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			present := make(map[string]bool)
			for _, l := range tt.locks {
				present[l] = true
			}
			got := Find(tt.kind).Command("dir", func(p string) bool {
				return present[filepath.Base(p)]
			})
			if got != tt.want {
				t.Errorf("Command() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanupDirs(t *testing.T) {
	tests := []struct {
		kind runtimes.Kind
		want string
	}{
		{runtimes.KindJavaScript, filepath.Join("a", "node_modules")},
		{runtimes.KindPython, filepath.Join("a", "vendor")},
		{runtimes.KindRuby, filepath.Join("a", "vendor", "bundle")},
	}
	for _, tt := range tests {
		if got := Find(tt.kind).CleanupDir("a"); got != tt.want {
			t.Errorf("%s CleanupDir() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestFindUnknown(t *testing.T) {
	if Find("cobol") != nil {
		t.Error("Find(cobol) should return nil")
	}
}

func TestManifestNamesAndExcludes(t *testing.T) {
	names := ManifestNames()
	if len(names) != 3 {
		t.Fatalf("ManifestNames() = %v, want 3 names", names)
	}

	excludes := ScanExcludes()
	want := map[string]bool{"node_modules": true, "vendor/bundle": true}
	if len(excludes) != len(want) {
		t.Fatalf("ScanExcludes() = %v, want %v", excludes, want)
	}
	for _, e := range excludes {
		if !want[e] {
			t.Errorf("unexpected exclude %q", e)
		}
	}
}
