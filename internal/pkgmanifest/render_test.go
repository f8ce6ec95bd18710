package pkgmanifest

import (
	"strings"
	"testing"

	"github.com/pkgerio/pkger/internal/pkgrecipe"
)

func testRecipe() *pkgrecipe.Recipe {
	return &pkgrecipe.Recipe{
		Metadata: pkgrecipe.Metadata{
			Name:        "hello",
			Version:     "1.0.0",
			Release:     "1",
			Description: "A test package.\nSecond line.",
			License:     "MIT",
			Arch:        pkgrecipe.ArchX8664,
			Depends: pkgrecipe.NewDependencies(map[string][]string{
				"all": {"libc"},
			}),
		},
	}
}

func TestSpecIncludesCoreFields(t *testing.T) {
	r := testRecipe()
	out := Spec(r, "hello-1.0.0.tar.gz", []string{"/usr/bin/hello"}, "debian12")

	for _, want := range []string{
		"Name: hello",
		"Version: 1.0.0",
		"Release: 1",
		"BuildArch: x86_64",
		"Source0: hello-1.0.0.tar.gz",
		"Requires: libc",
		"/usr/bin/hello",
		"%description",
		"A test package.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Spec output missing %q\n---\n%s", want, out)
		}
	}
}

func TestControlIncludesCoreFields(t *testing.T) {
	r := testRecipe()
	out := Control(r, "debian12", "1024")

	for _, want := range []string{
		"Package: hello",
		"Version: 1.0.0",
		"Architecture: amd64",
		"Installed-Size: 1024",
		"Depends: libc",
		"Description: A test package.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Control output missing %q\n---\n%s", want, out)
		}
	}
}

func TestPKGBUILDIncludesCoreFields(t *testing.T) {
	r := testRecipe()
	out := PKGBUILD(r, "arch", []string{"hello-1.0.0.tar.gz"}, []string{"abc123"})

	for _, want := range []string{
		"pkgname=hello",
		"pkgver=1.0.0",
		"arch=('x86_64')",
		"depends=('libc')",
		"source=('hello-1.0.0.tar.gz')",
		"md5sums=('abc123')",
		"package() {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PKGBUILD output missing %q\n---\n%s", want, out)
		}
	}
}

func TestAPKBUILDIncludesCoreFields(t *testing.T) {
	r := testRecipe()
	out := APKBUILD(r, "alpine", []string{"hello-1.0.0.tar.gz"}, "hello-1.0.0")

	for _, want := range []string{
		"pkgname=hello",
		`arch="x86_64"`,
		`depends="libc"`,
		`builddir="hello-1.0.0"`,
		"package() {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("APKBUILD output missing %q\n---\n%s", want, out)
		}
	}
}

func TestControlReplacesUnderscoresWithDashesInPackageName(t *testing.T) {
	r := testRecipe()
	r.Metadata.Name = "my_tool"
	out := Control(r, "debian12", "")

	if !strings.Contains(out, "Package: my-tool\n") {
		t.Errorf("Control output should render Package: my-tool, got:\n%s", out)
	}
	if strings.Contains(out, "Package: my_tool") {
		t.Errorf("Control output should not contain an underscored Package field, got:\n%s", out)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one\ntwo"); got != "one" {
		t.Fatalf("firstLine = %q, want %q", got, "one")
	}
	if got := firstLine("solo"); got != "solo" {
		t.Fatalf("firstLine = %q, want %q", got, "solo")
	}
}
