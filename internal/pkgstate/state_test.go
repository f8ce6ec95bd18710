package pkgstate

import (
	"path/filepath"
	"testing"

	"github.com/pkgerio/pkger/internal/pkgrecipe"
)

func TestLoadMissingFileYieldsEmptyState(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.gob"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Dirty() {
		t.Fatal("freshly loaded missing state should not be dirty")
	}
	if _, ok := s.Get(pkgrecipe.RecipeTarget{Recipe: "hello"}); ok {
		t.Fatal("empty state should have no entries")
	}
}

func TestUpdateGetSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.gob")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	key := pkgrecipe.RecipeTarget{Recipe: "hello", Image: "debian12", Target: pkgrecipe.Deb}
	want := ImageState{ID: "sha256:abc", Image: "debian12", Tag: "cached", Deps: []string{"tar", "curl"}}
	s.Update(key, want)

	if !s.Dirty() {
		t.Fatal("state should be dirty after Update")
	}
	got, ok := s.Get(key)
	if !ok {
		t.Fatal("expected entry after Update")
	}
	if got.ID != want.ID || got.Tag != want.Tag {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}

	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Dirty() {
		t.Fatal("state should not be dirty after Save")
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, ok = reloaded.Get(key)
	if !ok {
		t.Fatal("expected entry after reload")
	}
	if got.ID != want.ID || !got.DepsEqual(want.Deps) {
		t.Fatalf("reloaded = %+v, want %+v", got, want)
	}
}

func TestDiscardRemovesEntryAndMarksDirty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "state.gob"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	key := pkgrecipe.RecipeTarget{Recipe: "hello"}
	s.Update(key, ImageState{ID: "sha256:abc"})

	s2, err := Load(filepath.Join(t.TempDir(), "other.gob"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s2.Dirty() {
		t.Fatal("unrelated fresh state should not be dirty")
	}

	s.Discard(key)
	if _, ok := s.Get(key); ok {
		t.Fatal("entry should be gone after Discard")
	}
	if !s.Dirty() {
		t.Fatal("state should be dirty after Discard")
	}
}

func TestImageStateDepsEqual(t *testing.T) {
	s := ImageState{Deps: []string{"tar", "curl"}}

	if !s.DepsEqual([]string{"curl", "tar"}) {
		t.Fatal("DepsEqual should ignore ordering")
	}
	if s.DepsEqual([]string{"curl"}) {
		t.Fatal("DepsEqual should require an exact set match")
	}
	if s.DepsEqual([]string{"curl", "tar", "gpg"}) {
		t.Fatal("DepsEqual should reject a superset")
	}
}
