// Package python defines hydration for Python components.
package python

import "github.com/matzehuels/hydrate/pkg/runtimes"

// Language installs requirements.txt into a local vendor directory with pip3.
var Language = &runtimes.Language{
	Kind:      runtimes.KindPython,
	Manifest:  "requirements.txt",
	CacheDir:  "vendor",
	SharedDir: "vendor",
	Installers: []runtimes.Installer{
		{Command: "pip3 install -r requirements.txt -t ./vendor"},
	},
}
