package pkgrecipe

// BuildTarget is a package output format.
type BuildTarget string

const (
	Rpm  BuildTarget = "rpm"
	Deb  BuildTarget = "deb"
	Pkg  BuildTarget = "pkg"
	Apk  BuildTarget = "apk"
	Gzip BuildTarget = "gzip"
)

// Os identifies a running image's distribution and version, as determined
// by the OS Prober (C7) or declared as a hint on an Image entry.
type Os struct {
	Distribution string
	Version      string
}

// Image is one build target for a recipe: an image name, the package
// format to produce from it, and an optional OS hint that, when set,
// replaces the OS the prober detects (the probe still runs).
type Image struct {
	Name   string
	Target BuildTarget
	Os     *Os
}

// GitSource describes a recipe's git-hosted source.
type GitSource struct {
	URL    string
	Branch string // defaults to "master"
}

// Command is one step of a configure/build/install script.
type Command struct {
	Cmd     string
	Images  []string // only run when the build image is one of these
	Version []string // parsed from "versions"; the Script Runner does not filter steps on it
	Rpm     bool
	Deb     bool
	Pkg     bool
	Gzip    bool
	Apk     bool
}

// HasTargetFilter reports whether any per-target flag was set, in which
// case image filters are overridden (an explicit target opt-in keeps the
// step regardless of image filter, per the Script Runner's rule).
func (c Command) HasTargetFilter() bool {
	return c.Rpm || c.Deb || c.Pkg || c.Gzip || c.Apk
}

// RunsOn reports whether the command should execute for the given target.
func (c Command) RunsOn(target BuildTarget) bool {
	if !c.HasTargetFilter() {
		return true
	}
	switch target {
	case Rpm:
		return c.Rpm
	case Deb:
		return c.Deb
	case Pkg:
		return c.Pkg
	case Gzip:
		return c.Gzip
	case Apk:
		return c.Apk
	default:
		return false
	}
}

// RunsOnImage reports whether the command should execute against the
// given image, honoring the image-filter-overridden-by-target-filter rule:
// an empty image list always matches, and a non-empty list without any
// target filter restricts to the listed images.
func (c Command) RunsOnImage(image string) bool {
	if len(c.Images) == 0 || c.HasTargetFilter() {
		return true
	}
	for _, img := range c.Images {
		if img == image {
			return true
		}
	}
	return false
}

// Patch describes one patch to apply after source ingestion.
type Patch struct {
	Patch  string // http URL, absolute host path, or recipe-relative path
	Strip  int    // -p<strip> level, defaults to 1
	Images []string
}

// Patches is the full set of patches declared by a recipe, already
// filtered down from the YAML's `{all:[...], <image>:[...]}` shorthand to
// a flat list each carrying its own image filter.
type Patches []Patch

// ForImage returns the patches that apply to the given image.
func (p Patches) ForImage(image string) Patches {
	var out Patches
	for _, patch := range p {
		if len(patch.Images) == 0 {
			out = append(out, patch)
			continue
		}
		for _, img := range patch.Images {
			if img == image {
				out = append(out, patch)
				break
			}
		}
	}
	return out
}

// Script is an ordered sequence of commands with its own working
// directory and shell override.
type Script struct {
	Steps      []Command
	WorkingDir string
	Shell      string // defaults to "/bin/sh"
}

// DebOverrides carries DEB-specific manifest fields.
type DebOverrides struct {
	Priority    string
	PreDepends  []string
	Replaces    []string
	Recommends  []string
	Suggests    []string
	Breaks      []string
	Enhances    []string
	PreInst     string
	PostInst    string
	PreRm       string
	PostRm      string
}

// RpmOverrides carries RPM-specific manifest fields.
type RpmOverrides struct {
	Vendor   string
	Icon     string
	Summary  string
	PreInst  string
	PostInst string
	PreUn    string
	PostUn   string
	Config   []string
}

// PkgOverrides carries Arch PKGBUILD-specific manifest fields.
type PkgOverrides struct {
	Install     string
	Backup      []string
	OptDepends  []string
}

// ApkOverrides carries Alpine APKBUILD-specific manifest fields.
type ApkOverrides struct {
	Install  string
	Triggers []string
}

// Metadata is the recipe's descriptive and per-target-override block.
type Metadata struct {
	Name             string
	Version          string
	Release          string // defaults to "0"
	Epoch            string
	Description      string
	License          string
	Maintainer       string
	URL              string
	Group            string
	Arch             Arch
	Source           string
	Git              *GitSource
	ExcludePaths     []string
	Patches          Patches
	SkipDefaultDeps  bool
	AllImages        bool
	Images           []Image
	BuildDepends     Dependencies
	Depends          Dependencies
	Conflicts        Dependencies
	Provides         Dependencies

	Deb DebOverrides
	Rpm RpmOverrides
	Pkg PkgOverrides
	Apk ApkOverrides
}

// Recipe is a fully validated, in-memory recipe.
type Recipe struct {
	Metadata  Metadata
	Env       map[string]string
	Configure *Script
	Build     *Script
	Install   *Script
}

// RecipeTarget is the cache key a build is identified by: the tuple
// (recipe, image, target, OS). Equality includes all four fields.
type RecipeTarget struct {
	Recipe string
	Image  string
	Target BuildTarget
	Os     string // "" in a task's own key; the Image Builder sets ":cached" on the entry tracking the cached image
}
