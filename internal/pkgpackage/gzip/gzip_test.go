package gzip

import (
	"testing"

	"github.com/pkgerio/pkger/internal/pkgpackage"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
)

func TestPackageName(t *testing.T) {
	in := &pkgpackage.Input{Recipe: &pkgrecipe.Recipe{Metadata: pkgrecipe.Metadata{
		Name: "hello", Version: "1.0.0",
	}}}

	if got, want := PackageName(in), "hello-1.0.0.tar.gz"; got != want {
		t.Errorf("PackageName = %q, want %q", got, want)
	}
}
