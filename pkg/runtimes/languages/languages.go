// Package languages provides the complete list of hydratable ecosystems.
//
// This package exists to break import cycles: the individual language packages
// (javascript, python, ruby) import pkg/runtimes, so pkg/runtimes cannot
// import them back. Consumers that need the full list import this package.
//
// Usage:
//
//	import "github.com/matzehuels/hydrate/pkg/runtimes/languages"
//
//	if lang := languages.Detect("src/http/get-index/package.json"); lang != nil {
//	    fmt.Println(lang.Kind)
//	}
package languages

import (
	"path/filepath"

	"github.com/matzehuels/hydrate/pkg/runtimes"
	"github.com/matzehuels/hydrate/pkg/runtimes/javascript"
	"github.com/matzehuels/hydrate/pkg/runtimes/python"
	"github.com/matzehuels/hydrate/pkg/runtimes/ruby"
)

// All is the canonical list of supported ecosystems, in detection order.
var All = []*runtimes.Language{
	javascript.Language,
	python.Language,
	ruby.Language,
}

// Find returns the Language with the given kind, or nil if not found.
func Find(kind runtimes.Kind) *runtimes.Language {
	for _, l := range All {
		if l.Kind == kind {
			return l
		}
	}
	return nil
}

// Detect returns the Language whose manifest filename matches the base name
// of path, or nil.
func Detect(path string) *runtimes.Language {
	name := filepath.Base(path)
	for _, l := range All {
		if l.Supports(name) {
			return l
		}
	}
	return nil
}

// ManifestNames returns the recognized manifest filenames.
func ManifestNames() []string {
	names := make([]string, len(All))
	for i, l := range All {
		names[i] = l.Manifest
	}
	return names
}

// ScanExcludes returns the cache directory suffixes that discovery skips.
func ScanExcludes() []string {
	var out []string
	for _, l := range All {
		if l.ScanExclude != "" {
			out = append(out, l.ScanExclude)
		}
	}
	return out
}
