// Package deb renders and invokes the DEB packaging procedure described
// in §4.7.
package deb

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/pkgerio/pkger/internal/pkgerr"
	"github.com/pkgerio/pkger/internal/pkgmanifest"
	"github.com/pkgerio/pkger/internal/pkgpackage"
	"github.com/pkgerio/pkger/internal/pkgruntime"
)

// ErrPackage wraps every failure in the DEB assembly procedure.
var ErrPackage = fmt.Errorf("deb package build error")

// PackageName returns this build's DEB file base name, with or without
// the .deb extension.
func PackageName(in *pkgpackage.Input, withExt bool) string {
	md := &in.Recipe.Metadata
	name := fmt.Sprintf("%s-%s.%s", md.Name, md.Version, md.Arch.DebName())
	if withExt {
		name += ".deb"
	}
	return name
}

// Build runs the DEB assembly procedure and downloads the resulting
// package to in.HostOutputDir.
func Build(ctx context.Context, in *pkgpackage.Input) (string, error) {
	c := in.Container
	md := &in.Recipe.Metadata
	pkgName := PackageName(in, false)

	debbldDir := "/root/debbuild"
	tmpDir := debbldDir + "/tmp"
	baseDir := debbldDir + "/" + pkgName
	debDir := baseDir + "/DEBIAN"

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: "mkdir -p " + debDir + " " + tmpDir}); err != nil {
		return "", wrap(err)
	}

	sizeOut, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: "du -s .", WorkingDir: in.ContainerOutDir})
	if err != nil {
		return "", wrap(err)
	}
	size := ""
	if fields := strings.Fields(sizeOut.Stdout); len(fields) > 0 {
		size = fields[0]
	}

	control := pkgmanifest.Control(in.Recipe, in.Image, size)
	if err := c.CopyTo(ctx, debDir, []pkgruntime.Upload{{Path: "control", Data: []byte(control)}}); err != nil {
		return "", wrap(err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd:        fmt.Sprintf("cp -rv . %s", baseDir),
		WorkingDir: in.ContainerOutDir,
	}); err != nil {
		return "", wrap(err)
	}

	major, _ := strconv.Atoi(in.Os.Version)
	buildOpts := "--build"
	if major >= 10 {
		buildOpts = "--build --root-owner-group"
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd: fmt.Sprintf("dpkg-deb %s %s", buildOpts, baseDir),
	}); err != nil {
		return "", wrap(err)
	}

	debName := pkgName + ".deb"
	pkgPath := path.Join(debbldDir, debName)

	if in.Key != nil {
		keyPath, err := in.Key.Upload(ctx, c, tmpDir)
		if err != nil {
			return "", err
		}
		if err := in.Key.Import(ctx, c, keyPath); err != nil {
			return "", err
		}
		if err := in.Key.SignDeb(ctx, c, pkgPath); err != nil {
			return "", err
		}
	}

	if err := c.CopyFrom(ctx, pkgPath, in.HostOutputDir); err != nil {
		return "", wrap(err)
	}

	return path.Join(in.HostOutputDir, debName), nil
}

func wrap(err error) error {
	return pkgerr.Wrapf(ErrPackage, "deb build: %v", err)
}
