package pkgruntime

import (
	"bytes"
	"context"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/pkgerio/pkger/internal/pkgarchive"
	"github.com/pkgerio/pkger/internal/pkgerr"
)

// uploadArchiveName is the name the intermediate TAR takes inside the
// container while it is extracted, per §4.1's upload protocol.
const uploadArchiveName = "pkger-upload.tar"

// Upload is a single (relative-path, bytes) pair destined for a container
// directory.
type Upload struct {
	Path string
	Data []byte
	Mode int64
}

// CopyTo assembles files into a TAR in memory, copies the TAR itself into
// dstDir, then execs `tar -xvf <name> && rm -f <name>` so the contents
// land extracted at dstDir without relying on the engine's own
// copy-and-untar behavior.
func (c *Container) CopyTo(ctx context.Context, dstDir string, files []Upload) error {
	entries := make([]pkgarchive.Entry, len(files))
	for i, f := range files {
		entries[i] = pkgarchive.Entry{Name: f.Path, Data: f.Data, Mode: f.Mode}
	}
	inner, err := pkgarchive.BuildTar(entries)
	if err != nil {
		return err
	}

	outer, err := pkgarchive.BuildTar([]pkgarchive.Entry{{Name: uploadArchiveName, Data: inner, Mode: 0644}})
	if err != nil {
		return err
	}

	if err := c.cli.CopyToContainer(ctx, c.id, dstDir, bytes.NewReader(outer), container.CopyToContainerOptions{}); err != nil {
		return pkgerr.Wrap(ErrRuntime, err)
	}

	_, err = c.CheckedExec(ctx, ExecOptions{
		Cmd:        "tar -xvf " + uploadArchiveName + " && rm -f " + uploadArchiveName,
		WorkingDir: dstDir,
	})
	return err
}

// CopyFileTo uploads a single host file or directory tree under dstDir,
// named entryName inside the archive.
func (c *Container) CopyFileTo(ctx context.Context, hostPath, dstDir, entryName string) error {
	archive, err := pkgarchive.BuildTarFromPath(hostPath, entryName)
	if err != nil {
		return err
	}

	outer, err := pkgarchive.BuildTar([]pkgarchive.Entry{{Name: uploadArchiveName, Data: archive, Mode: 0644}})
	if err != nil {
		return err
	}

	if err := c.cli.CopyToContainer(ctx, c.id, dstDir, bytes.NewReader(outer), container.CopyToContainerOptions{}); err != nil {
		return pkgerr.Wrap(ErrRuntime, err)
	}

	_, err = c.CheckedExec(ctx, ExecOptions{
		Cmd:        "tar -xvf " + uploadArchiveName + " && rm -f " + uploadArchiveName,
		WorkingDir: dstDir,
	})
	return err
}

// CopyFromTar copies srcPath out of the container as a raw tar stream,
// for callers that want to unpack it themselves.
func (c *Container) CopyFromTar(ctx context.Context, srcPath string) (io.ReadCloser, error) {
	rc, _, err := c.cli.CopyFromContainer(ctx, c.id, srcPath)
	if err != nil {
		return nil, pkgerr.Wrap(ErrRuntime, err)
	}
	return rc, nil
}

// CopyFrom copies srcPath out of the container and unpacks it under
// hostDir.
func (c *Container) CopyFrom(ctx context.Context, srcPath, hostDir string) error {
	rc, err := c.CopyFromTar(ctx, srcPath)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := pkgarchive.Unpack(rc, hostDir); err != nil {
		return err
	}
	return nil
}
