// Package pkgpackage is the Packager (C11): five per-target assembly
// procedures that stage a build's out-dir tree, render and upload the
// distro's manifest, invoke the distro-native build tool, optionally
// sign the result, and download it to the host.
package pkgpackage

import (
	"github.com/pkgerio/pkger/internal/pkgrecipe"
	"github.com/pkgerio/pkger/internal/pkgruntime"
	"github.com/pkgerio/pkger/internal/pkgsign"
)

// Input carries everything a per-target Build needs: the container to
// run distro tooling in, the recipe and resolved dependency set, the
// image identity the build ran against, and where finished artifacts
// land on the host.
type Input struct {
	Container       *pkgruntime.Container
	Recipe          *pkgrecipe.Recipe
	Image           string
	Os              pkgrecipe.Os
	ContainerOutDir string
	Deps            []string
	Key             *pkgsign.Key // nil disables signing
	HostOutputDir   string       // <output-dir>/<image-name>
}
