package pacman

import (
	"testing"

	"github.com/pkgerio/pkger/internal/pkgpackage"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
)

func TestPackageName(t *testing.T) {
	in := &pkgpackage.Input{Recipe: &pkgrecipe.Recipe{Metadata: pkgrecipe.Metadata{
		Name: "hello", Version: "1.0.0", Release: "1", Arch: pkgrecipe.ArchX8664,
	}}}

	if got, want := PackageName(in), "hello-1.0.0-1-x86_64"; got != want {
		t.Errorf("PackageName = %q, want %q", got, want)
	}
}
