package pkgstate

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pkgerio/pkger/internal/pkgerr"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
)

var ErrState = fmt.Errorf("image state error")

// ImageState is a persisted descriptor of a prepared image.
type ImageState struct {
	ID        string // content-addressed image digest
	Image     string
	Tag       string // "latest" or "cached"
	Os        pkgrecipe.Os
	Timestamp time.Time
	Deps      []string // the resolved dep set that produced this image
	Simple    bool     // default image vs. user-curated
}

// DepsEqual reports whether the given resolved set exactly matches the
// set this state was built with; the cache hit rule in C8 requires set
// equality, not mere containment.
func (s ImageState) DepsEqual(deps []string) bool {
	if len(s.Deps) != len(deps) {
		return false
	}
	have := make(map[string]bool, len(s.Deps))
	for _, d := range s.Deps {
		have[d] = true
	}
	for _, d := range deps {
		if !have[d] {
			return false
		}
	}
	return true
}

// ImagesState is the in-memory, mutex-guarded map the Job Supervisor and
// every Build Orchestrator share. It is loaded once at startup, mutated
// under its write lock at image-build completion, and saved once at
// supervisor shutdown if dirty.
type ImagesState struct {
	mu    sync.RWMutex
	path  string
	dirty bool
	m     map[pkgrecipe.RecipeTarget]ImageState
}

// Load reads the persisted state file at path. A missing file is not an
// error; it yields an empty state, per the external-interfaces contract.
func Load(path string) (*ImagesState, error) {
	s := &ImagesState{path: path, m: make(map[pkgrecipe.RecipeTarget]ImageState)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, pkgerr.Wrap(ErrState, err)
	}
	if len(data) == 0 {
		return s, nil
	}

	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s.m); err != nil {
		return nil, pkgerr.Wrap(ErrState, err)
	}
	return s, nil
}

// Get looks up the cached state for a RecipeTarget.
func (s *ImagesState) Get(key pkgrecipe.RecipeTarget) (ImageState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

// Update stores state for key and marks the map dirty, serializing
// concurrent updates for the same key (last writer wins), per the
// ordering guarantee in the concurrency model.
func (s *ImagesState) Update(key pkgrecipe.RecipeTarget, state ImageState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = state
	s.dirty = true
}

// Discard removes a stale entry, e.g. when the runtime can no longer
// inspect the image the ImageState claims exists.
func (s *ImagesState) Discard(key pkgrecipe.RecipeTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; ok {
		delete(s.m, key)
		s.dirty = true
	}
}

// Dirty reports whether the map has unsaved changes.
func (s *ImagesState) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Save serializes the map and writes it to its backing path, clearing the
// dirty flag on success.
func (s *ImagesState) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(s.m); err != nil {
		return pkgerr.Wrap(ErrState, err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return pkgerr.Wrap(ErrState, err)
	}

	s.dirty = false
	return nil
}
