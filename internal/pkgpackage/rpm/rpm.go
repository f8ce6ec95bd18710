// Package rpm renders and invokes the RPM packaging procedure described
// in §4.7, grounded on the original rpmbuild job's directory layout and
// command sequence.
package rpm

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

// ErrPackage wraps every failure in the RPM assembly procedure.
var ErrPackage = fmt.Errorf("rpm package build error")

// PackageName returns this build's RPM file base name, with or without
// the .rpm extension.
func PackageName(in *pkgpackage.Input, withExt bool) string {
	md := &in.Recipe.Metadata
	name := fmt.Sprintf("%s-%s-%s.%s", md.Name, md.Version, md.Release, md.Arch.RpmName())
	if withExt {
		name += ".rpm"
	}
	return name
}

// Build runs the RPM assembly procedure and downloads the resulting
// package to in.HostOutputDir.
func Build(ctx context.Context, in *pkgpackage.Input) (string, error) {
	c := in.Container
	md := &in.Recipe.Metadata
	arch := md.Arch.RpmName()
	pkgName := PackageName(in, false)
	sourceTar := pkgName + ".tar.gz"

	base := "/root/rpmbuild"
	specs := base + "/SPECS"
	sources := base + "/SOURCES"
	rpms := base + "/RPMS"
	rpmsArch := rpms + "/" + arch
	srpms := base + "/SRPMS"
	tmpBuildroot := "/tmp/" + pkgName
	sourceTarPath := sources + "/" + sourceTar

	_, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd: mkdirsCmd(specs, sources, rpms, rpmsArch, srpms),
	})
	if err != nil {
		return "", wrap(err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd: fmt.Sprintf("cp -rv %s %s", in.ContainerOutDir, tmpBuildroot),
	}); err != nil {
		return "", wrap(err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd:        fmt.Sprintf("tar -zcvf %s .", sourceTarPath),
		WorkingDir: tmpBuildroot,
	}); err != nil {
		return "", wrap(err)
	}

	found, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd:        `find . -type f -o -type l -name "*"`,
		WorkingDir: in.ContainerOutDir,
	})
	if err != nil {
		return "", wrap(err)
	}
	var files []string
	for _, line := range strings.Split(found.Stdout, "\n") {
		if line == "" {
			continue
		}
		files = append(files, strings.TrimPrefix(line, "."))
	}

	spec := pkgmanifest.Spec(in.Recipe, sourceTar, files, in.Image)
	specFile := md.Name + ".spec"
	err = c.CopyTo(ctx, specs, []pkgruntime.Upload{{Path: specFile, Data: []byte(spec)}})
	if err != nil {
		return "", wrap(err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd: fmt.Sprintf("setarch %s rpmbuild -ba --target %s %s", arch, arch, path.Join(specs, specFile)),
	}); err != nil {
		return "", wrap(err)
	}

	srpmName := fmt.Sprintf("%s-%s-%s.src.rpm", md.Name, md.Version, md.Release)
	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd: fmt.Sprintf("cp %s %s", path.Join(srpms, srpmName), rpmsArch),
	}); err != nil {
		return "", wrap(err)
	}

	pkgPath := path.Join(rpmsArch, pkgName+".rpm")
	if in.Key != nil {
		tmpDir := "/tmp"
		keyPath, err := in.Key.Upload(ctx, c, tmpDir)
		if err != nil {
			return "", err
		}
		if err := in.Key.Import(ctx, c, keyPath); err != nil {
			return "", err
		}
		if err := in.Key.SignRPM(ctx, c, tmpDir, pkgPath); err != nil {
			return "", err
		}
	}

	if err := c.CopyFrom(ctx, rpmsArch, in.HostOutputDir); err != nil {
		return "", wrap(err)
	}

	return path.Join(in.HostOutputDir, pkgName+".rpm"), nil
}

func mkdirsCmd(dirs ...string) string {
	return "mkdir -p " + strings.Join(dirs, " ")
}

func wrap(err error) error {
	return pkgerr.Wrapf(ErrPackage, "rpm build: %v", err)
}
