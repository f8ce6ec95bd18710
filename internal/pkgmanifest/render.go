package pkgmanifest

import (
	"fmt"
	"strings"

	"github.com/pkgerio/pkger/internal/pkgrecipe"
)

// Spec renders an RPM .spec file. sourceTar is the archived source's file
// name, files the enumerated paths under the build root, image the
// target image name (used to resolve per-image build/runtime deps).
func Spec(r *pkgrecipe.Recipe, sourceTar string, files []string, image string) string {
	md := &r.Metadata
	var sb strings.Builder

	fmt.Fprintf(&sb, "Name: %s\n", md.Name)
	fmt.Fprintf(&sb, "Version: %s\n", md.Version)
	fmt.Fprintf(&sb, "Release: %s\n", md.Release)
	if md.Epoch != "" {
		fmt.Fprintf(&sb, "Epoch: %s\n", md.Epoch)
	}
	fmt.Fprintf(&sb, "Summary: %s\n", firstLine(md.Description))
	fmt.Fprintf(&sb, "License: %s\n", md.License)
	if md.Rpm.Vendor != "" {
		fmt.Fprintf(&sb, "Vendor: %s\n", md.Rpm.Vendor)
	}
	if md.Group != "" {
		fmt.Fprintf(&sb, "Group: %s\n", md.Group)
	}
	if md.URL != "" {
		fmt.Fprintf(&sb, "URL: %s\n", md.URL)
	}
	fmt.Fprintf(&sb, "Source0: %s\n", sourceTar)
	fmt.Fprintf(&sb, "BuildArch: %s\n", md.Arch.RpmName())

	if deps := md.Depends.Resolve(image); len(deps) > 0 {
		fmt.Fprintf(&sb, "Requires: %s\n", strings.Join(deps, ", "))
	}
	if conflicts := md.Conflicts.Resolve(image); len(conflicts) > 0 {
		fmt.Fprintf(&sb, "Conflicts: %s\n", strings.Join(conflicts, ", "))
	}
	if provides := md.Provides.Resolve(image); len(provides) > 0 {
		fmt.Fprintf(&sb, "Provides: %s\n", strings.Join(provides, ", "))
	}

	sb.WriteString("\n%description\n")
	sb.WriteString(md.Description)
	sb.WriteString("\n")

	sb.WriteString("\n%install\n")
	fmt.Fprintf(&sb, "tar xvf %%{SOURCE0} -C %%{buildroot}\n")

	sb.WriteString("\n%files\n")
	for _, f := range files {
		fmt.Fprintf(&sb, "%s\n", f)
	}

	for name, script := range map[string]string{
		"pre": md.Rpm.PreInst, "post": md.Rpm.PostInst,
		"preun": md.Rpm.PreUn, "postun": md.Rpm.PostUn,
	} {
		if script != "" {
			fmt.Fprintf(&sb, "\n%%%s\n%s\n", name, script)
		}
	}
	for _, c := range md.Rpm.Config {
		fmt.Fprintf(&sb, "\n%%config %s\n", c)
	}

	return sb.String()
}

// Control renders a DEB control file. installedSize is the du-reported
// size of the staged out directory, in KB, or empty when unknown.
func Control(r *pkgrecipe.Recipe, image, installedSize string) string {
	md := &r.Metadata
	var sb strings.Builder

	fmt.Fprintf(&sb, "Package: %s\n", strings.ReplaceAll(md.Name, "_", "-"))
	fmt.Fprintf(&sb, "Version: %s\n", md.Version)
	fmt.Fprintf(&sb, "Architecture: %s\n", md.Arch.DebName())
	if md.Maintainer != "" {
		fmt.Fprintf(&sb, "Maintainer: %s\n", md.Maintainer)
	}
	if installedSize != "" {
		fmt.Fprintf(&sb, "Installed-Size: %s\n", installedSize)
	}
	if md.Deb.Priority != "" {
		fmt.Fprintf(&sb, "Priority: %s\n", md.Deb.Priority)
	}

	if deps := md.Depends.Resolve(image); len(deps) > 0 {
		fmt.Fprintf(&sb, "Depends: %s\n", strings.Join(deps, ", "))
	}
	if len(md.Deb.PreDepends) > 0 {
		fmt.Fprintf(&sb, "Pre-Depends: %s\n", strings.Join(md.Deb.PreDepends, ", "))
	}
	if len(md.Deb.Recommends) > 0 {
		fmt.Fprintf(&sb, "Recommends: %s\n", strings.Join(md.Deb.Recommends, ", "))
	}
	if len(md.Deb.Suggests) > 0 {
		fmt.Fprintf(&sb, "Suggests: %s\n", strings.Join(md.Deb.Suggests, ", "))
	}
	if len(md.Deb.Breaks) > 0 {
		fmt.Fprintf(&sb, "Breaks: %s\n", strings.Join(md.Deb.Breaks, ", "))
	}
	if len(md.Deb.Enhances) > 0 {
		fmt.Fprintf(&sb, "Enhances: %s\n", strings.Join(md.Deb.Enhances, ", "))
	}
	if len(md.Deb.Replaces) > 0 {
		fmt.Fprintf(&sb, "Replaces: %s\n", strings.Join(md.Deb.Replaces, ", "))
	}
	if conflicts := md.Conflicts.Resolve(image); len(conflicts) > 0 {
		fmt.Fprintf(&sb, "Conflicts: %s\n", strings.Join(conflicts, ", "))
	}
	if provides := md.Provides.Resolve(image); len(provides) > 0 {
		fmt.Fprintf(&sb, "Provides: %s\n", strings.Join(provides, ", "))
	}
	if md.URL != "" {
		fmt.Fprintf(&sb, "Homepage: %s\n", md.URL)
	}
	fmt.Fprintf(&sb, "Description: %s\n", firstLine(md.Description))
	for _, line := range strings.Split(md.Description, "\n")[1:] {
		if strings.TrimSpace(line) == "" {
			sb.WriteString(" .\n")
			continue
		}
		fmt.Fprintf(&sb, " %s\n", line)
	}

	return sb.String()
}

// PKGBUILD renders an Arch Linux PKGBUILD. sources and checksums are
// parallel lists of the staged source archive paths and their md5sums.
func PKGBUILD(r *pkgrecipe.Recipe, image string, sources, checksums []string) string {
	md := &r.Metadata
	var sb strings.Builder

	fmt.Fprintf(&sb, "pkgname=%s\n", md.Name)
	fmt.Fprintf(&sb, "pkgver=%s\n", md.Version)
	fmt.Fprintf(&sb, "pkgrel=%s\n", md.Release)
	fmt.Fprintf(&sb, "pkgdesc=%q\n", md.Description)
	fmt.Fprintf(&sb, "arch=('%s')\n", md.Arch.PkgName())
	if md.URL != "" {
		fmt.Fprintf(&sb, "url=%q\n", md.URL)
	}
	if md.License != "" {
		fmt.Fprintf(&sb, "license=('%s')\n", md.License)
	}

	if deps := md.Depends.Resolve(image); len(deps) > 0 {
		fmt.Fprintf(&sb, "depends=(%s)\n", quoteJoin(deps))
	}
	if len(md.Pkg.OptDepends) > 0 {
		fmt.Fprintf(&sb, "optdepends=(%s)\n", quoteJoin(md.Pkg.OptDepends))
	}
	if conflicts := md.Conflicts.Resolve(image); len(conflicts) > 0 {
		fmt.Fprintf(&sb, "conflicts=(%s)\n", quoteJoin(conflicts))
	}
	if provides := md.Provides.Resolve(image); len(provides) > 0 {
		fmt.Fprintf(&sb, "provides=(%s)\n", quoteJoin(provides))
	}
	if len(md.Pkg.Backup) > 0 {
		fmt.Fprintf(&sb, "backup=(%s)\n", quoteJoin(md.Pkg.Backup))
	}
	if md.Pkg.Install != "" {
		fmt.Fprintf(&sb, "install=%s\n", md.Pkg.Install)
	}

	fmt.Fprintf(&sb, "source=(%s)\n", quoteJoin(sources))
	fmt.Fprintf(&sb, "md5sums=(%s)\n", quoteJoin(checksums))

	sb.WriteString("\npackage() {\n  cp -r ../src/* \"$pkgdir\"\n}\n")

	return sb.String()
}

// APKBUILD renders an Alpine APKBUILD.
func APKBUILD(r *pkgrecipe.Recipe, image string, sources []string, buildDir string) string {
	md := &r.Metadata
	var sb strings.Builder

	fmt.Fprintf(&sb, "pkgname=%s\n", md.Name)
	fmt.Fprintf(&sb, "pkgver=%s\n", md.Version)
	fmt.Fprintf(&sb, "pkgrel=%s\n", md.Release)
	fmt.Fprintf(&sb, "pkgdesc=%q\n", md.Description)
	if md.URL != "" {
		fmt.Fprintf(&sb, "url=%q\n", md.URL)
	}
	fmt.Fprintf(&sb, "arch=\"%s\"\n", md.Arch.ApkName())
	if md.License != "" {
		fmt.Fprintf(&sb, "license=%q\n", md.License)
	}

	if deps := md.Depends.Resolve(image); len(deps) > 0 {
		fmt.Fprintf(&sb, "depends=\"%s\"\n", strings.Join(deps, " "))
	}
	if md.Apk.Install != "" {
		fmt.Fprintf(&sb, "install=%q\n", md.Apk.Install)
	}
	if len(md.Apk.Triggers) > 0 {
		fmt.Fprintf(&sb, "triggers=\"%s\"\n", strings.Join(md.Apk.Triggers, " "))
	}

	fmt.Fprintf(&sb, "source=\"%s\"\n", strings.Join(sources, " "))
	fmt.Fprintf(&sb, "builddir=%q\n", buildDir)

	sb.WriteString("\npackage() {\n  cp -r \"$srcdir\"/* \"$pkgdir\"\n}\n")

	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "'" + it + "'"
	}
	return strings.Join(quoted, " ")
}
