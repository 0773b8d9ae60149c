// Package ruby defines hydration for Ruby components.
package ruby

import "github.com/matzehuels/hydrate/pkg/runtimes"

// Language installs a Gemfile's bundle into vendor/bundle.
var Language = &runtimes.Language{
	Kind:        runtimes.KindRuby,
	Manifest:    "Gemfile",
	CacheDir:    "vendor/bundle",
	ScanExclude: "vendor/bundle",
	SharedDir:   "vendor",
	Installers: []runtimes.Installer{
		{Command: "bundle install --path vendor/bundle"},
	},
}
