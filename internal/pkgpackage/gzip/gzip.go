// Package gzip implements the plain-tarball packaging procedure
// described in §4.7: the build's out-dir tree, downloaded and
// repackaged as a single tar.gz on the host.
package gzip

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkgerio/pkger/internal/pkgarchive"
	"github.com/pkgerio/pkger/internal/pkgerr"
	"github.com/pkgerio/pkger/internal/pkgpackage"
)

// ErrPackage wraps every failure in the GZIP assembly procedure.
var ErrPackage = fmt.Errorf("gzip package build error")

// PackageName returns this build's tar.gz file name.
func PackageName(in *pkgpackage.Input) string {
	md := &in.Recipe.Metadata
	return fmt.Sprintf("%s-%s.tar.gz", md.Name, md.Version)
}

// Build downloads the container's out dir, repackages the stream as
// tar.gz, and saves it under in.HostOutputDir.
func Build(ctx context.Context, in *pkgpackage.Input) (string, error) {
	archiveName := PackageName(in)

	rc, err := in.Container.CopyFromTar(ctx, in.ContainerOutDir)
	if err != nil {
		return "", pkgerr.Wrap(ErrPackage, err)
	}
	defer rc.Close()

	tarBytes, err := io.ReadAll(rc)
	if err != nil {
		return "", pkgerr.Wrap(ErrPackage, err)
	}

	gz, err := pkgarchive.Gzip(tarBytes)
	if err != nil {
		return "", pkgerr.Wrap(ErrPackage, err)
	}

	if err := os.MkdirAll(in.HostOutputDir, 0755); err != nil {
		return "", pkgerr.Wrap(ErrPackage, err)
	}

	dest := filepath.Join(in.HostOutputDir, archiveName)
	if err := os.WriteFile(dest, gz, 0644); err != nil {
		return "", pkgerr.Wrap(ErrPackage, err)
	}

	return dest, nil
}
