package pkgimage

import (
	"testing"

	"github.com/pkgerio/pkger/internal/pkgrecipe"
)

func TestSimpleLooksUpEveryTarget(t *testing.T) {
	for _, target := range []pkgrecipe.BuildTarget{pkgrecipe.Rpm, pkgrecipe.Deb, pkgrecipe.Pkg, pkgrecipe.Gzip, pkgrecipe.Apk} {
		img, ok := Simple(target)
		if !ok {
			t.Fatalf("Simple(%v) not found", target)
		}
		if img.Name != pkgrecipe.SimpleImageName(target) {
			t.Fatalf("Simple(%v).Name = %q, want %q", target, img.Name, pkgrecipe.SimpleImageName(target))
		}
		if img.BaseImage == "" {
			t.Fatalf("Simple(%v).BaseImage is empty", target)
		}
	}
}

func TestSimpleUnknownTarget(t *testing.T) {
	if _, ok := Simple(pkgrecipe.BuildTarget("unknown")); ok {
		t.Fatal("Simple(unknown) should report not found")
	}
}

func TestAllSimpleReturnsACopy(t *testing.T) {
	all := AllSimple()
	if len(all) != len(simpleImages) {
		t.Fatalf("AllSimple returned %d entries, want %d", len(all), len(simpleImages))
	}

	delete(all, pkgrecipe.Rpm)
	if _, ok := simpleImages[pkgrecipe.Rpm]; !ok {
		t.Fatal("mutating the map returned by AllSimple should not affect the package table")
	}
}
