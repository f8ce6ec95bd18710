package pkgruntime

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/docker/docker/api/types/build"
	"github.com/opencontainers/go-digest"
	"github.com/pkgerio/pkger/internal/pkgerr"
)

// BuildChunk is one line of the engine's streamed build output, mirroring
// the upstream build API's "stream"/"aux" framing: most lines only carry
// human-readable progress text, the final one carries the built image's
// content-addressed id under aux.ID.
type BuildChunk struct {
	Stream string `json:"stream,omitempty"`
	Error  string `json:"error,omitempty"`
	Aux    *struct {
		ID string `json:"ID"`
	} `json:"aux,omitempty"`
}

// BuildOptions configures an image build from a Dockerfile packed inside
// a tar build context.
type BuildOptions struct {
	Tags       []string
	Dockerfile string // path of the Dockerfile within the tar context, default "Dockerfile"
	NoCache    bool
}

// BuildImage streams a Dockerfile build from contextTar and invokes onChunk
// for every decoded line of engine output. It returns the built image's
// id, read off the aux chunk the engine emits once the build finishes.
func (rt *Runtime) BuildImage(ctx context.Context, contextTar []byte, opts BuildOptions, onChunk func(BuildChunk)) (string, error) {
	dockerfile := opts.Dockerfile
	if dockerfile == "" {
		dockerfile = "Dockerfile"
	}

	resp, err := rt.cli.ImageBuild(ctx, bytes.NewReader(contextTar), build.ImageBuildOptions{
		Tags:       opts.Tags,
		Dockerfile: dockerfile,
		NoCache:    opts.NoCache,
		Remove:     true,
	})
	if err != nil {
		return "", pkgerr.Wrap(ErrRuntime, err)
	}
	defer resp.Body.Close()

	var imageID string
	dec := json.NewDecoder(resp.Body)
	for {
		var chunk BuildChunk
		err := dec.Decode(&chunk)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", pkgerr.Wrap(ErrRuntime, err)
		}
		if chunk.Error != "" {
			return "", pkgerr.Wrapf(ErrRuntime, "image build: %s", chunk.Error)
		}
		if chunk.Aux != nil && chunk.Aux.ID != "" {
			imageID = chunk.Aux.ID
		}
		if onChunk != nil {
			onChunk(chunk)
		}
	}

	if imageID == "" {
		return "", pkgerr.Wrapf(ErrRuntime, "image build finished without reporting an image id")
	}
	if _, err := digest.Parse(imageID); err != nil {
		return "", pkgerr.Wrapf(ErrRuntime, "image build reported a malformed id %q: %v", imageID, err)
	}
	return imageID, nil
}
