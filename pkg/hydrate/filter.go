package hydrate

import "path/filepath"

// Filter keeps the manifests that belong to an active component, to shared
// code, or (when hydrateBasepath is set) to the project root itself. Order is
// preserved.
func Filter(manifests []Manifest, components []string, hydrateBasepath bool) []Manifest {
	kept, _ := Partition(manifests, components, hydrateBasepath)
	return kept
}

// Partition splits manifests into those Filter keeps and those it drops.
// Dropping is policy, not an error: a tree routinely holds manifests of
// disabled or unregistered components.
func Partition(manifests []Manifest, components []string, hydrateBasepath bool) (kept, dropped []Manifest) {
	active := make(map[string]bool, len(components))
	for _, c := range components {
		active[normalizePath(c)] = true
	}

	for _, m := range manifests {
		if keep(m, active, hydrateBasepath) {
			kept = append(kept, m)
		} else {
			dropped = append(dropped, m)
		}
	}
	return kept, dropped
}

func keep(m Manifest, active map[string]bool, hydrateBasepath bool) bool {
	dir := filepath.Dir(m.Path)
	if hydrateBasepath && dir == "." {
		return true
	}
	if isSharedPath(m.Path) {
		return true
	}
	return active[dir]
}
