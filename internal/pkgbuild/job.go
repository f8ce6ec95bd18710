package pkgbuild

import "github.com/pkgerio/pkger/internal/pkgrecipe"

// Task is one unit of work the Job Supervisor fans out to an
// Orchestrator: a recipe built against one of its declared images, for
// one target format.
//
// Simple is true when Image names one of this system's own
// auto-generated default images (per §4.3's table) rather than a
// Dockerfile the recipe author curated under the images directory —
// the distinction the Image Builder needs to decide whether "latest" is
// pulled from a registry or built from a local Dockerfile.
type Task struct {
	Recipe    *pkgrecipe.Recipe
	RecipeDir string // host directory the recipe was loaded from, for relative patch paths
	Image     string
	Target    pkgrecipe.BuildTarget
	Simple    bool
	OsHint    *pkgrecipe.Os // from the recipe's Image entry; when set it replaces the probed OS (the probe still runs)
}

// Result is what one Task produced: either an artifact path or an error,
// never both.
type Result struct {
	Task         Task
	ArtifactPath string
	Err          error
}
