package hydrate

import (
	"path/filepath"

	"github.com/matzehuels/hydrate/pkg/runtimes"
	"github.com/matzehuels/hydrate/pkg/runtimes/languages"
)

// SharedLabel is the label of the trailing shared hydration job.
const SharedLabel = "shared"

// Job is one unit of install work.
type Job struct {
	Label      string        // Display name: the directory, or "project root"
	Dir        string        // Working directory, relative to the project root
	Kind       runtimes.Kind // Empty for the shared job
	CleanupDir string        // Removed before installing, relative to the project root
	Command    string        // Install command, resolved from lockfile presence
	Manifest   string        // Manifest path, relative to the project root
	Shared     bool          // Delegates to the SharedHydrator instead of running a command
}

// BuildJobs turns manifests into jobs in the same order, then appends the
// shared hydration job when copyShared is set. Lockfiles are looked up under
// root at build time.
func BuildJobs(root string, manifests []Manifest, copyShared bool) []Job {
	jobs := make([]Job, 0, len(manifests)+1)
	for _, m := range manifests {
		lang := languages.Find(m.Kind)
		if lang == nil {
			continue
		}
		dir := filepath.Dir(m.Path)
		jobs = append(jobs, Job{
			Label:      label(dir),
			Dir:        dir,
			Kind:       lang.Kind,
			CleanupDir: lang.CleanupDir(dir),
			Command:    lang.Command(filepath.Join(root, dir), nil),
			Manifest:   m.Path,
		})
	}
	if copyShared {
		jobs = append(jobs, Job{Label: SharedLabel, Shared: true})
	}
	return jobs
}

// countManifestJobs returns the number of jobs that install a manifest.
func countManifestJobs(jobs []Job) int {
	n := 0
	for _, j := range jobs {
		if !j.Shared {
			n++
		}
	}
	return n
}
