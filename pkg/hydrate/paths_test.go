package hydrate

import (
	"path/filepath"
	"testing"
)

func TestIsSharedPath(t *testing.T) {
	tests := []struct {
		rel  string
		want bool
	}{
		{"src/shared", true},
		{"src/shared/package.json", true},
		{filepath.FromSlash("src/views/Gemfile"), true},
		{"src/shared-utils/package.json", false},
		{"src/http/shared", false},
		{"src", false},
	}

	for _, tt := range tests {
		if got := isSharedPath(tt.rel); got != tt.want {
			t.Errorf("isSharedPath(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestIsCachePath(t *testing.T) {
	tests := []struct {
		rel  string
		want bool
	}{
		{"node_modules", true},
		{"src/a/node_modules", true},
		{"src/a/my_node_modules", false},
		{"src/a/vendor/bundle", true},
		{"src/a/vendor", false},
		{"src/a/myvendor/bundle", false},
	}

	for _, tt := range tests {
		if got := isCachePath(tt.rel); got != tt.want {
			t.Errorf("isCachePath(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestIsManifest(t *testing.T) {
	tests := []struct {
		rel  string
		want bool
	}{
		{"package.json", true},
		{"src/http/get-index/package.json", true},
		{filepath.FromSlash("src/events/ingest/requirements.txt"), true},
		{"src/queues/work/Gemfile", true},
		{"src/queues/work/Gemfile.lock", false},
		{"src/d/Pipfile", false},
	}

	for _, tt := range tests {
		if got := isManifest(tt.rel); got != tt.want {
			t.Errorf("isManifest(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := label("."); got != "project root" {
		t.Errorf("label(.) = %q, want %q", got, "project root")
	}
	if got := label("src/http/get-index"); got != "src/http/get-index" {
		t.Errorf("label() = %q, want %q", got, "src/http/get-index")
	}
}

func TestNormalizePath(t *testing.T) {
	want := filepath.FromSlash("src/http/get-index")
	for _, in := range []string{"src/http/get-index", "src/http/get-index/", "./src/http//get-index"} {
		if got := normalizePath(in); got != want {
			t.Errorf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
