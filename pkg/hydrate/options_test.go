package hydrate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOptionsWithDefaults(t *testing.T) {
	opts, err := Options{}.WithDefaults()
	if err != nil {
		t.Fatalf("WithDefaults() error = %v", err)
	}
	wd, _ := os.Getwd()
	if opts.Root != wd {
		t.Errorf("Root = %q, want %q", opts.Root, wd)
	}
	if opts.Basepath != DefaultBasepath {
		t.Errorf("Basepath = %q, want %q", opts.Basepath, DefaultBasepath)
	}
	if opts.SkipCopyShared || opts.SkipHydrateShared {
		t.Error("shared hydration should be enabled by default")
	}
}

func TestOptionsHydrateBasepath(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		basepath string
		want     bool
	}{
		{"src", false},
		{".", true},
		{root, true},
		{filepath.Join(root, "src"), false},
	}

	for _, tt := range tests {
		opts, err := Options{Root: root, Basepath: tt.basepath}.WithDefaults()
		if err != nil {
			t.Fatalf("WithDefaults() error = %v", err)
		}
		if got := opts.hydrateBasepath(); got != tt.want {
			t.Errorf("hydrateBasepath(%q) = %v, want %v", tt.basepath, got, tt.want)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{Root: root, Basepath: "src"}, false},
		{"absolute inside root", Options{Root: root, Basepath: filepath.Join(root, "lib")}, false},
		{"project root", Options{Root: root, Basepath: "."}, false},
		{"escapes root", Options{Root: root, Basepath: "../other"}, true},
		{"absolute outside root", Options{Root: root, Basepath: filepath.Dir(root)}, true},
		{"negative timeout", Options{Root: root, Basepath: "src", Timeout: -1}, true},
		{"invalid env", Options{Root: root, Basepath: "src", Env: map[string]string{"1X": "y"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
