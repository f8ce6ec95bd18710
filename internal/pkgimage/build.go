package pkgimage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkgerio/pkger/internal/pkgarchive"
	"github.com/pkgerio/pkger/internal/pkgerr"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
	"github.com/pkgerio/pkger/internal/pkgruntime"
	"github.com/pkgerio/pkger/internal/pkgstate"
)

// Builder produces or reuses tagged images per the two-phase protocol
// in §4.2: a "latest" tag built from the image's own Dockerfile, and a
// "cached" tag layering the resolved dependency set on top of it.
type Builder struct {
	rt    *pkgruntime.Runtime
	state *pkgstate.ImagesState
}

// NewBuilder returns an Image Builder bound to rt and the shared
// ImagesState the Job Supervisor loaded at startup.
func NewBuilder(rt *pkgruntime.Runtime, state *pkgstate.ImagesState) *Builder {
	return &Builder{rt: rt, state: state}
}

// Prepared is the outcome of building or reusing an image: the tagged
// "cached" image id ready to run build steps in, and the OS it was
// probed (or hinted) to be.
type Prepared struct {
	ImageID string
	Os      pkgrecipe.Os
}

// Source is where an image's "latest" tag comes from: a Dockerfile
// directory for user-curated images, or an upstream reference to pull
// and re-tag for this system's own default images.
type Source struct {
	DockerfileDir string
	PullRef       string
}

// Prepare resolves key to a ready-to-use "cached" image, building
// "latest" and "cached" as needed.
func (b *Builder) Prepare(ctx context.Context, key pkgrecipe.RecipeTarget, src Source, deps []string, simple bool, gpgEnabled bool) (Prepared, error) {
	latestID, os, err := b.buildLatest(ctx, key, src, deps, simple)
	if err != nil {
		return Prepared{}, err
	}

	cachedID, err := b.buildCached(ctx, key, latestID, os, deps, simple)
	if err != nil {
		return Prepared{}, err
	}

	return Prepared{ImageID: cachedID, Os: os}, nil
}

// buildLatest returns the "latest"-tagged image id, reusing the cached
// ImageState when its dep set matches, the runtime confirms the image
// still exists, and (for user-curated images) no source file has
// changed since the recorded timestamp.
func (b *Builder) buildLatest(ctx context.Context, key pkgrecipe.RecipeTarget, src Source, deps []string, simple bool) (string, pkgrecipe.Os, error) {
	reusable := false
	if cached, ok := b.state.Get(key); ok && cached.Tag == "latest" && cached.DepsEqual(deps) {
		reusable = true
		if !simple && src.DockerfileDir != "" {
			stale, err := sourceModifiedSince(src.DockerfileDir, cached.Timestamp)
			if err != nil {
				return "", pkgrecipe.Os{}, err
			}
			reusable = !stale
		}
		if reusable {
			exists, err := b.imageExists(ctx, cached.ID)
			if err != nil {
				return "", pkgrecipe.Os{}, err
			}
			if exists {
				return cached.ID, cached.Os, nil
			}
			reusable = false
		}
		if !reusable {
			b.state.Discard(key)
		}
	}

	tag := key.Image + ":latest"
	imageID, err := b.materializeLatest(ctx, src, tag)
	if err != nil {
		return "", pkgrecipe.Os{}, err
	}

	container, err := b.rt.CreateContainer(ctx, pkgruntime.CreateOptions{Image: tag, Command: []string{"sleep", "infinity"}})
	if err != nil {
		return "", pkgrecipe.Os{}, err
	}
	defer container.Remove(ctx)
	if err := container.Start(ctx); err != nil {
		return "", pkgrecipe.Os{}, err
	}

	probedOs, err := ProbeOs(ctx, container)
	if err != nil {
		return "", pkgrecipe.Os{}, err
	}

	b.state.Update(key, pkgstate.ImageState{
		ID:        imageID,
		Image:     key.Image,
		Tag:       "latest",
		Os:        probedOs,
		Timestamp: now(),
		Deps:      deps,
		Simple:    simple,
	})

	return imageID, probedOs, nil
}

// buildCached writes the synthesized Dockerfile described in §4.2 and
// builds "<image>:cached" from it.
func (b *Builder) buildCached(ctx context.Context, key pkgrecipe.RecipeTarget, latestID string, os pkgrecipe.Os, deps []string, simple bool) (string, error) {
	cacheKey := pkgrecipe.RecipeTarget{Recipe: key.Recipe, Image: key.Image, Target: key.Target, Os: key.Os + ":cached"}
	if cached, ok := b.state.Get(cacheKey); ok && cached.DepsEqual(deps) {
		if exists, err := b.imageExists(ctx, cached.ID); err != nil {
			return "", err
		} else if exists {
			return cached.ID, nil
		}
		b.state.Discard(cacheKey)
	}

	pm := os.PackageManager()
	sorted := append([]string(nil), deps...)
	sort.Strings(sorted)

	var sb strings.Builder
	fmt.Fprintf(&sb, "FROM %s:latest\n", key.Image)
	sb.WriteString("ENV DEBIAN_FRONTEND noninteractive\n")
	if pm.ShouldCleanCache() {
		fmt.Fprintf(&sb, "RUN %s\n", strings.Join(pm.CleanCacheArgs(), " "))
	}
	fmt.Fprintf(&sb, "RUN %s\n", strings.Join(pm.UpdateReposArgs(), " "))
	fmt.Fprintf(&sb, "RUN %s\n", strings.Join(pm.InstallArgs(sorted), " "))

	archive, err := pkgarchive.BuildTar([]pkgarchive.Entry{{Name: "Dockerfile", Data: []byte(sb.String())}})
	if err != nil {
		return "", err
	}

	tag := key.Image + ":cached"
	imageID, err := b.rt.BuildImage(ctx, archive, pkgruntime.BuildOptions{Tags: []string{tag}}, nil)
	if err != nil {
		return "", err
	}

	b.state.Update(cacheKey, pkgstate.ImageState{
		ID:        imageID,
		Image:     key.Image,
		Tag:       "cached",
		Os:        os,
		Timestamp: now(),
		Deps:      deps,
		Simple:    simple,
	})

	return imageID, nil
}

// materializeLatest either builds the Dockerfile in src.DockerfileDir or
// pulls src.PullRef from its registry, tagging the result as tag.
func (b *Builder) materializeLatest(ctx context.Context, src Source, tag string) (string, error) {
	if src.DockerfileDir != "" {
		archive, err := pkgarchive.BuildTarFromPath(src.DockerfileDir, "")
		if err != nil {
			return "", err
		}
		return b.rt.BuildImage(ctx, archive, pkgruntime.BuildOptions{Tags: []string{tag}}, nil)
	}

	if err := b.rt.PullImage(ctx, src.PullRef); err != nil {
		return "", err
	}
	if err := b.rt.TagImage(ctx, src.PullRef, tag); err != nil {
		return "", err
	}
	return b.rt.InspectImageID(ctx, tag)
}

func (b *Builder) imageExists(ctx context.Context, id string) (bool, error) {
	return b.rt.ImageExists(ctx, id)
}

// sourceModifiedSince walks dir and reports whether any file's mtime is
// after since, invalidating a user-curated image's "latest" cache hit.
func sourceModifiedSince(dir string, since time.Time) (bool, error) {
	modified := false
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if modified || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(since) {
			modified = true
		}
		return nil
	})
	if err != nil {
		return false, pkgerr.Wrap(ErrProbe, err)
	}
	return modified, nil
}

// now is a seam over time.Now so tests can substitute a fixed clock.
var now = time.Now
