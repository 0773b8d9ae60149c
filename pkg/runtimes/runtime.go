// Package runtimes describes the dependency ecosystems hydrate knows how to
// install: which manifest file declares dependencies, where the installed
// dependencies live, and which package manager command installs them.
//
// Individual ecosystems live in subpackages (javascript, python, ruby), each
// exporting a Language value. The languages package collects them.
package runtimes

import (
	"os"
	"path/filepath"
)

// Kind identifies a runtime ecosystem.
type Kind string

const (
	KindJavaScript Kind = "javascript"
	KindPython     Kind = "python"
	KindRuby       Kind = "ruby"
)

// Installer is one candidate install command. It applies when Lockfile is
// empty or when Lockfile exists in the manifest's directory.
type Installer struct {
	Lockfile string
	Command  string
}

// Language describes how one ecosystem is hydrated.
type Language struct {
	Kind Kind
	// Manifest is the exact filename that declares dependencies.
	Manifest string
	// CacheDir is the installed-dependency directory, relative to the
	// manifest's directory, using forward slashes.
	CacheDir string
	// ScanExclude is a slash-separated path suffix that marks previously
	// installed output. Directories matching it are never scanned for
	// manifests. Empty means nothing is excluded.
	ScanExclude string
	// SharedDir is where shared code trees are copied inside a component,
	// relative to the component directory, using forward slashes.
	SharedDir string
	// Installers are tried in order; the first applicable one wins.
	Installers []Installer
}

// Supports reports whether filename is this language's manifest.
func (l *Language) Supports(filename string) bool {
	return filename == l.Manifest
}

// CleanupDir returns the directory purged before installing into dir.
func (l *Language) CleanupDir(dir string) string {
	return filepath.Join(dir, filepath.FromSlash(l.CacheDir))
}

// SharedTarget returns the directory that receives the shared tree named
// tree (e.g. "shared" or "views") inside componentDir.
func (l *Language) SharedTarget(componentDir, tree string) string {
	return filepath.Join(componentDir, filepath.FromSlash(l.SharedDir), tree)
}

// Command resolves the install command for a manifest in dir. exists is
// called with lockfile paths joined onto dir; nil means os.Stat.
func (l *Language) Command(dir string, exists func(path string) bool) string {
	if exists == nil {
		exists = fileExists
	}
	for _, in := range l.Installers {
		if in.Lockfile == "" || exists(filepath.Join(dir, in.Lockfile)) {
			return in.Command
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
