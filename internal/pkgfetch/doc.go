// Package pkgfetch is the Source Fetcher (C9): it gets a recipe's source
// tree into a build container by whichever of the three shapes the
// recipe declares (git, HTTP, or a local filesystem path), then unpacks
// whatever lands in the container's tmp directory into its build
// directory. It also applies the recipe's declared patches once the
// source is in place.
package pkgfetch
