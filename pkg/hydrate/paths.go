package hydrate

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/hydrate/pkg/runtimes/languages"
)

// sharedDirs are the project-root-relative trees hydrated once per run.
var sharedDirs = []string{"src/shared", "src/views"}

var (
	// manifestPattern matches any recognized manifest, at any depth.
	manifestPattern = "**/{" + strings.Join(languages.ManifestNames(), ",") + "}"

	// sharedPatterns match the shared trees and everything below them.
	sharedPatterns = globTrees(sharedDirs)

	// cachePatterns match installed-dependency directories at any depth.
	cachePatterns = globSuffixes(languages.ScanExcludes())
)

func globTrees(dirs []string) []string {
	out := make([]string, 0, 2*len(dirs))
	for _, d := range dirs {
		out = append(out, d, d+"/**")
	}
	return out
}

func globSuffixes(suffixes []string) []string {
	out := make([]string, len(suffixes))
	for i, s := range suffixes {
		out[i] = "**/" + s
	}
	return out
}

// matchAny reports whether the slash form of rel matches one of patterns.
func matchAny(patterns []string, rel string) bool {
	name := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}

// isSharedPath reports whether rel is inside src/shared or src/views.
func isSharedPath(rel string) bool {
	return matchAny(sharedPatterns, rel)
}

// isCachePath reports whether rel is an installed-dependency directory such
// as node_modules or vendor/bundle.
func isCachePath(rel string) bool {
	return matchAny(cachePatterns, rel)
}

// isManifest reports whether rel names a recognized manifest file.
func isManifest(rel string) bool {
	return matchAny([]string{manifestPattern}, rel)
}

// normalizePath converts p to the host separator and cleans it. Every path
// that leaves this package goes through here.
func normalizePath(p string) string {
	return filepath.Clean(filepath.FromSlash(p))
}

// relativeTo makes path relative to root and normalizes it.
func relativeTo(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return normalizePath(rel), nil
}

// label is the human name for a job directory.
func label(dir string) string {
	if dir == "." || dir == "" {
		return "project root"
	}
	return dir
}
