// Package pacman renders and invokes the Arch Linux PKGBUILD packaging
// procedure described in §4.7.
package pacman

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/pkgerio/pkger/internal/pkgerr"
	"github.com/pkgerio/pkger/internal/pkgmanifest"
	"github.com/pkgerio/pkger/internal/pkgpackage"
	"github.com/pkgerio/pkger/internal/pkgruntime"
)

// ErrPackage wraps every failure in the PKG assembly procedure.
var ErrPackage = fmt.Errorf("pkg package build error")

const buildUser = "builduser"

// PackageName returns this build's pkg.tar.zst file base name, without
// extension.
func PackageName(in *pkgpackage.Input) string {
	md := &in.Recipe.Metadata
	return fmt.Sprintf("%s-%s-%s-%s", md.Name, md.Version, md.Release, md.Arch.PkgName())
}

// Build runs the Arch PKGBUILD assembly procedure and downloads the
// resulting package to in.HostOutputDir.
func Build(ctx context.Context, in *pkgpackage.Input) (string, error) {
	c := in.Container
	md := &in.Recipe.Metadata
	name := fmt.Sprintf("%s-%s", md.Name, md.Version)
	pkgName := PackageName(in)

	tmpDir := "/tmp/" + pkgName
	srcDir := tmpDir + "/src"
	bldDir := tmpDir + "/bld"
	sourceTarName := name + ".tar.gz"
	sourceTarPath := bldDir + "/" + sourceTarName

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: "mkdir -p " + strings.Join([]string{tmpDir, bldDir, srcDir}, " ")}); err != nil {
		return "", wrap(err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd:        fmt.Sprintf("cp -rv . %s", srcDir),
		WorkingDir: in.ContainerOutDir,
	}); err != nil {
		return "", wrap(err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd:        fmt.Sprintf("tar -zcvf %s .", sourceTarPath),
		WorkingDir: srcDir,
	}); err != nil {
		return "", wrap(err)
	}

	sum, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: fmt.Sprintf("md5sum %s", sourceTarPath)})
	if err != nil {
		return "", wrap(err)
	}
	checksum := ""
	if fields := strings.Fields(sum.Stdout); len(fields) > 0 {
		checksum = fields[0]
	}

	pkgbuild := pkgmanifest.PKGBUILD(in.Recipe, in.Image, []string{sourceTarPath}, []string{checksum})
	if err := c.CopyTo(ctx, bldDir, []pkgruntime.Upload{{Path: "PKGBUILD", Data: []byte(pkgbuild)}}); err != nil {
		return "", wrap(err)
	}

	for _, cmd := range []string{
		fmt.Sprintf("useradd -m %s", buildUser),
		fmt.Sprintf("passwd -d %s", buildUser),
	} {
		if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: cmd}); err != nil {
			return "", wrap(err)
		}
	}
	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd:        fmt.Sprintf("chown -Rv %[1]s:%[1]s .", buildUser),
		WorkingDir: bldDir,
	}); err != nil {
		return "", wrap(err)
	}
	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: "chmod 644 PKGBUILD", WorkingDir: bldDir}); err != nil {
		return "", wrap(err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: "makepkg", WorkingDir: bldDir, User: buildUser}); err != nil {
		return "", wrap(err)
	}

	pkg := pkgName + ".pkg.tar.zst"
	pkgPath := path.Join(bldDir, pkg)

	if err := c.CopyFrom(ctx, pkgPath, in.HostOutputDir); err != nil {
		return "", wrap(err)
	}

	return path.Join(in.HostOutputDir, pkg), nil
}

func wrap(err error) error {
	return pkgerr.Wrapf(ErrPackage, "pkg build: %v", err)
}
