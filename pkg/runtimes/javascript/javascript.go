// Package javascript defines hydration for Node.js components.
//
// A package.json is installed with npm ci when a package-lock.json is
// present, with yarn when only a yarn.lock is present, and with npm i
// otherwise. Installed modules live in node_modules.
package javascript

import "github.com/matzehuels/hydrate/pkg/runtimes"

// Language provides Node.js hydration via npm or yarn.
var Language = &runtimes.Language{
	Kind:        runtimes.KindJavaScript,
	Manifest:    "package.json",
	CacheDir:    "node_modules",
	ScanExclude: "node_modules",
	SharedDir:   "node_modules/@architect",
	Installers: []runtimes.Installer{
		{Lockfile: "package-lock.json", Command: "npm ci"},
		{Lockfile: "yarn.lock", Command: "yarn"},
		{Command: "npm i"},
	},
}
