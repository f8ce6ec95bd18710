package pkgrecipe

import (
	"sort"
	"strings"
)

// commonDepsKey is the distinguished Dependencies key whose set applies to
// every image.
const commonDepsKey = "all"

// Dependencies maps an image name to the set of packages it needs, with
// "all" denoting packages common to every image. Joined keys
// ("centos8+fedora34") are expanded into each listed image's own set at
// construction time by [NewDependencies]; a Dependencies value built any
// other way must already be in expanded form.
type Dependencies map[string]map[string]bool

// NewDependencies builds a Dependencies map from recipe YAML's raw
// key→list-of-packages form, expanding any "+"-joined keys into their
// constituent image names.
func NewDependencies(raw map[string][]string) Dependencies {
	deps := make(Dependencies, len(raw))
	for key, pkgs := range raw {
		for _, image := range strings.Split(key, "+") {
			image = strings.TrimSpace(image)
			if image == "" {
				continue
			}
			set := deps[image]
			if set == nil {
				set = make(map[string]bool, len(pkgs))
				deps[image] = set
			}
			for _, p := range pkgs {
				set[p] = true
			}
		}
	}
	return deps
}

// Resolve returns the union of the common ("all") set and the set
// declared for image, sorted for deterministic rendering.
func (d Dependencies) Resolve(image string) []string {
	merged := make(map[string]bool)
	for p := range d[commonDepsKey] {
		merged[p] = true
	}
	for p := range d[image] {
		merged[p] = true
	}

	out := make([]string, 0, len(merged))
	for p := range merged {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// DependsOn reports whether image (directly, or via the common set)
// declares pkg as a dependency.
func (d Dependencies) DependsOn(image, pkg string) bool {
	if d[commonDepsKey][pkg] {
		return true
	}
	return d[image][pkg]
}

// SimpleImageName returns the name of this system's own auto-generated
// default image for a target, used by the resolver's second Resolve call
// against the target's canonical image name (e.g. "pkger-deb").
func SimpleImageName(target BuildTarget) string {
	switch target {
	case Rpm:
		return "pkger-rpm"
	case Deb:
		return "pkger-deb"
	case Pkg:
		return "pkger-pkg"
	case Gzip:
		return "pkger-gzip"
	case Apk:
		return "pkger-apk"
	default:
		return ""
	}
}

// defaultDeps returns the always-installed packages for target, per C5's
// default table, augmented for GPG signing and source-shape triggers.
func defaultDeps(target BuildTarget, r *Recipe, gpgEnabled bool) []string {
	deps := []string{"tar"}

	switch target {
	case Rpm:
		deps = append(deps, "rpm-build", "util-linux")
		if gpgEnabled {
			deps = append(deps, "gnupg2", "rpm-sign")
		}
	case Deb:
		deps = append(deps, "dpkg")
		if gpgEnabled {
			deps = append(deps, "gnupg2", "dpkg-sig")
		}
	case Gzip:
		deps = append(deps, "gzip")
	case Pkg:
		deps = append(deps, "base-devel")
	case Apk:
		deps = append(deps, "alpine-sdk", "sudo", "bash")
	}

	if r.Metadata.SkipDefaultDeps {
		return dedupe(deps)
	}

	if strings.HasPrefix(r.Metadata.Source, "http") {
		deps = append(deps, "curl")
	}
	if strings.HasSuffix(r.Metadata.Source, ".zip") {
		deps = append(deps, "zip")
	}
	if len(r.Metadata.Patches) > 0 {
		deps = append(deps, "patch")
	}

	return dedupe(deps)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ResolveDeps is the Dependency Resolver (C5): the final install set for a
// build is defaults(target) ∪ recipe.build_depends.resolve(image) ∪
// recipe.build_depends.resolve(simple-image-name-for-target).
func ResolveDeps(r *Recipe, image string, target BuildTarget, gpgEnabled bool) []string {
	merged := make(map[string]bool)

	for _, d := range defaultDeps(target, r, gpgEnabled) {
		merged[d] = true
	}
	for _, d := range r.Metadata.BuildDepends.Resolve(image) {
		merged[d] = true
	}
	if simple := SimpleImageName(target); simple != "" {
		for _, d := range r.Metadata.BuildDepends.Resolve(simple) {
			merged[d] = true
		}
	}

	out := make([]string, 0, len(merged))
	for d := range merged {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
