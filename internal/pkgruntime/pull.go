package pkgruntime

import (
	"context"
	"io"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/pkgerio/pkger/internal/pkgerr"
)

// PullImage pulls ref from its registry, draining the progress stream
// without interpreting it.
func (rt *Runtime) PullImage(ctx context.Context, ref string) error {
	rc, err := rt.cli.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return pkgerr.Wrap(ErrRuntime, err)
	}
	defer rc.Close()

	if _, err := io.Copy(io.Discard, rc); err != nil {
		return pkgerr.Wrap(ErrRuntime, err)
	}
	return nil
}

// TagImage tags source (an image id or reference) as target.
func (rt *Runtime) TagImage(ctx context.Context, source, target string) error {
	if err := rt.cli.ImageTag(ctx, source, target); err != nil {
		return pkgerr.Wrap(ErrRuntime, err)
	}
	return nil
}

// InspectImageID resolves a reference to its content-addressed image id.
func (rt *Runtime) InspectImageID(ctx context.Context, ref string) (string, error) {
	info, err := rt.cli.ImageInspect(ctx, ref)
	if err != nil {
		return "", pkgerr.Wrap(ErrRuntime, err)
	}
	return info.ID, nil
}

// ImageExists reports whether ref (an image id or reference) still
// resolves on the runtime's back-end.
func (rt *Runtime) ImageExists(ctx context.Context, ref string) (bool, error) {
	_, err := rt.cli.ImageInspect(ctx, ref)
	if err != nil {
		if client.IsErrNotFound(err) {
			return false, nil
		}
		return false, pkgerr.Wrap(ErrRuntime, err)
	}
	return true, nil
}
