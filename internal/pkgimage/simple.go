package pkgimage

import "github.com/pkgerio/pkger/internal/pkgrecipe"

// SimpleImage is a target's auto-generated default base image: the
// upstream image pulled as its "latest" base, the canonical name this
// system tracks it under, and the OS it is expected to carry. Os is not
// consulted during a build: the OS Prober still probes the image.
type SimpleImage struct {
	BaseImage string
	Name      string
	Os        pkgrecipe.Os
}

// simpleImages is the fixed table of default images, one per target.
var simpleImages = map[pkgrecipe.BuildTarget]SimpleImage{
	pkgrecipe.Rpm: {
		BaseImage: "rockylinux/rockylinux:latest",
		Name:      pkgrecipe.SimpleImageName(pkgrecipe.Rpm),
		Os:        pkgrecipe.Os{Distribution: "rocky", Version: "9"},
	},
	pkgrecipe.Deb: {
		BaseImage: "debian:latest",
		Name:      pkgrecipe.SimpleImageName(pkgrecipe.Deb),
		Os:        pkgrecipe.Os{Distribution: "debian", Version: "12"},
	},
	pkgrecipe.Pkg: {
		BaseImage: "archlinux:latest",
		Name:      pkgrecipe.SimpleImageName(pkgrecipe.Pkg),
		Os:        pkgrecipe.Os{Distribution: "arch", Version: ""},
	},
	pkgrecipe.Gzip: {
		BaseImage: "debian:latest",
		Name:      pkgrecipe.SimpleImageName(pkgrecipe.Gzip),
		Os:        pkgrecipe.Os{Distribution: "debian", Version: "12"},
	},
	pkgrecipe.Apk: {
		BaseImage: "alpine:latest",
		Name:      pkgrecipe.SimpleImageName(pkgrecipe.Apk),
		Os:        pkgrecipe.Os{Distribution: "alpine", Version: "3"},
	},
}

// Simple looks up the default image for a target.
func Simple(target pkgrecipe.BuildTarget) (SimpleImage, bool) {
	img, ok := simpleImages[target]
	return img, ok
}

// AllSimple returns every target's default image, for `pkger list
// images` to enumerate alongside the user-curated ones.
func AllSimple() map[pkgrecipe.BuildTarget]SimpleImage {
	out := make(map[pkgrecipe.BuildTarget]SimpleImage, len(simpleImages))
	for k, v := range simpleImages {
		out[k] = v
	}
	return out
}
