// Package pkgmanifest renders the four per-format manifests (RPM spec,
// DEB control, PKGBUILD, APKBUILD) a Packager uploads before invoking
// the distro-native build tool. These are pure text emitters with no
// algorithmic content; the package exists only to satisfy the contract
// each Packager depends on.
package pkgmanifest
