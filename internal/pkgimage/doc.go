// Package pkgimage combines the OS Prober (C7) and Image Builder (C8): it
// turns a recipe's image name into a ready-to-exec container carrying
// every resolved build dependency, reusing the content-addressed
// "latest"/"cached" tag pair recorded in [pkgstate.ImagesState] whenever
// the recipe's dependency set hasn't moved.
package pkgimage
