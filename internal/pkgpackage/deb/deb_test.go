package deb

import (
	"testing"

	"github.com/pkgerio/pkger/internal/pkgpackage"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
)

func TestPackageName(t *testing.T) {
	in := &pkgpackage.Input{Recipe: &pkgrecipe.Recipe{Metadata: pkgrecipe.Metadata{
		Name: "hello", Version: "1.0.0", Arch: pkgrecipe.ArchX8664,
	}}}

	if got, want := PackageName(in, false), "hello-1.0.0.amd64"; got != want {
		t.Errorf("PackageName(false) = %q, want %q", got, want)
	}
	if got, want := PackageName(in, true), "hello-1.0.0.amd64.deb"; got != want {
		t.Errorf("PackageName(true) = %q, want %q", got, want)
	}
}
