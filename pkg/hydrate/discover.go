package hydrate

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/hydrate/pkg/errors"
	"github.com/matzehuels/hydrate/pkg/runtimes/languages"
)

// Discover returns every manifest below basepath, followed (when
// includeShared is set) by every manifest below root/src/shared and
// root/src/views.
//
// The basepath pass skips the shared trees so they are only found by the
// second pass. Both passes skip installed-dependency directories such as
// node_modules and vendor/bundle, so hydrated output is never rediscovered.
// Returned paths are relative to root. A missing directory yields no
// manifests rather than an error.
func Discover(root, basepath string, includeShared bool) ([]Manifest, error) {
	if !filepath.IsAbs(basepath) {
		basepath = filepath.Join(root, basepath)
	}

	manifests, err := scan(root, basepath, true)
	if err != nil {
		return nil, err
	}

	if includeShared {
		for _, d := range sharedDirs {
			found, err := scan(root, filepath.Join(root, normalizePath(d)), false)
			if err != nil {
				return nil, err
			}
			manifests = append(manifests, found...)
		}
	}
	return manifests, nil
}

// scan walks start in lexical order collecting manifests. With skipShared
// set, anything inside the shared trees is left out, including start itself.
func scan(root, start string, skipShared bool) ([]Manifest, error) {
	var out []Manifest

	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == start && os.IsNotExist(err) {
				return fs.SkipAll
			}
			return err
		}

		rel, err := relativeTo(root, path)
		if err != nil {
			return err
		}

		if skipShared && isSharedPath(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != start && isCachePath(rel) {
				return fs.SkipDir
			}
			return nil
		}

		if !isManifest(rel) {
			return nil
		}
		lang := languages.Detect(path)
		if lang == nil {
			return nil
		}
		out = append(out, Manifest{
			Path: rel,
			Kind: lang.Kind,
			Dir:  filepath.Dir(rel),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "scan %s", start)
	}
	return out, nil
}
