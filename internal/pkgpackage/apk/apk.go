// Package apk renders and invokes the Alpine APKBUILD packaging
// procedure described in §4.7.
package apk

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

// ErrPackage wraps every failure in the APK assembly procedure.
var ErrPackage = fmt.Errorf("apk package build error")

const buildUser = "builduser"

// PackageName returns this build's apk file base name, with or without
// extension.
func PackageName(in *pkgpackage.Input, withExt bool) string {
	md := &in.Recipe.Metadata
	name := fmt.Sprintf("%s-%s-r%s", md.Name, md.Version, md.Release)
	if withExt {
		name += ".apk"
	}
	return name
}

// Build runs the APK assembly procedure and downloads the resulting
// package to in.HostOutputDir.
func Build(ctx context.Context, in *pkgpackage.Input) (string, error) {
	c := in.Container
	md := &in.Recipe.Metadata
	pkgName := PackageName(in, false)

	tmpDir := "/tmp/" + pkgName
	srcDir := tmpDir + "/src"
	bldDir := tmpDir + "/bld"
	sourceTarName := pkgName + ".tar.gz"
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

	apkbuild := pkgmanifest.APKBUILD(in.Recipe, in.Image, []string{sourceTarName}, bldDir)
	if err := c.CopyTo(ctx, bldDir, []pkgruntime.Upload{{Path: "APKBUILD", Data: []byte(apkbuild)}}); err != nil {
		return "", wrap(err)
	}

	for _, cmd := range []string{
		fmt.Sprintf("adduser -D %s", buildUser),
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
	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: "chmod 644 APKBUILD", WorkingDir: bldDir}); err != nil {
		return "", wrap(err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: "abuild-keygen -an", User: buildUser}); err != nil {
		return "", wrap(err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: "abuild checksum", WorkingDir: bldDir, User: buildUser}); err != nil {
		return "", wrap(err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: "abuild", WorkingDir: bldDir, User: buildUser}); err != nil {
		return "", wrap(err)
	}

	apkFile := pkgName + ".apk"
	apkPath := fmt.Sprintf("/home/%s/packages/%s/%s/%s", buildUser, pkgName, md.Arch.ApkName(), apkFile)

	if err := c.CopyFrom(ctx, apkPath, in.HostOutputDir); err != nil {
		return "", wrap(err)
	}

	return path.Join(in.HostOutputDir, apkFile), nil
}

func wrap(err error) error {
	return pkgerr.Wrapf(ErrPackage, "apk build: %v", err)
}
