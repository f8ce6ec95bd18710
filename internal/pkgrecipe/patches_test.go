package pkgrecipe

import "testing"

func TestPatchesForImageFiltersByImage(t *testing.T) {
	patches := Patches{
		{Patch: "common.patch"},
		{Patch: "debian-only.patch", Images: []string{"debian12"}},
		{Patch: "centos-only.patch", Images: []string{"centos8"}},
	}

	got := patches.ForImage("debian12")
	if len(got) != 2 {
		t.Fatalf("got %d patches for debian12, want 2: %+v", len(got), got)
	}

	names := map[string]bool{}
	for _, p := range got {
		names[p.Patch] = true
	}
	if !names["common.patch"] || !names["debian-only.patch"] {
		t.Fatalf("ForImage(debian12) = %+v, missing expected patches", got)
	}
	if names["centos-only.patch"] {
		t.Fatal("ForImage(debian12) should not include a centos-only patch")
	}
}

func TestPatchesForImageEmptySet(t *testing.T) {
	var patches Patches
	if got := patches.ForImage("debian12"); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}
