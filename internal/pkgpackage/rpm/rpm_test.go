package rpm

import (
	"testing"

	"github.com/pkgerio/pkger/internal/pkgpackage"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
)

func TestPackageName(t *testing.T) {
	in := &pkgpackage.Input{Recipe: &pkgrecipe.Recipe{Metadata: pkgrecipe.Metadata{
		Name: "hello", Version: "1.0.0", Release: "1", Arch: pkgrecipe.ArchX8664,
	}}}

	if got, want := PackageName(in, false), "hello-1.0.0-1.x86_64"; got != want {
		t.Errorf("PackageName(false) = %q, want %q", got, want)
	}
	if got, want := PackageName(in, true), "hello-1.0.0-1.x86_64.rpm"; got != want {
		t.Errorf("PackageName(true) = %q, want %q", got, want)
	}
}
