package pkgrecipe

import "testing"

func TestParseRequiresNameAndVersion(t *testing.T) {
	if _, err := Parse([]byte(`metadata: {}`)); err == nil {
		t.Fatal("expected an error for a recipe missing name/version")
	}
}

func TestParseMinimalRecipeDefaultsReleaseToZero(t *testing.T) {
	r, err := Parse([]byte(`
metadata:
  name: hello
  version: 1.0.0
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Metadata.Release != "0" {
		t.Fatalf("Release = %q, want %q", r.Metadata.Release, "0")
	}
}

func TestParseGitShorthandString(t *testing.T) {
	r, err := Parse([]byte(`
metadata:
  name: hello
  version: 1.0.0
  git: https://example.com/hello.git
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Metadata.Git == nil {
		t.Fatal("expected a git source")
	}
	if r.Metadata.Git.URL != "https://example.com/hello.git" {
		t.Fatalf("Git.URL = %q", r.Metadata.Git.URL)
	}
	if r.Metadata.Git.Branch != "master" {
		t.Fatalf("Git.Branch = %q, want default %q", r.Metadata.Git.Branch, "master")
	}
}

func TestParseGitMappingFormWithBranch(t *testing.T) {
	r, err := Parse([]byte(`
metadata:
  name: hello
  version: 1.0.0
  git:
    url: https://example.com/hello.git
    branch: develop
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Metadata.Git.Branch != "develop" {
		t.Fatalf("Git.Branch = %q, want %q", r.Metadata.Git.Branch, "develop")
	}
}

func TestParseImagesShorthandAndMapping(t *testing.T) {
	r, err := Parse([]byte(`
metadata:
  name: hello
  version: 1.0.0
  images:
    - debian12
    - name: centos8
      target: rpm
      os: centos
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(r.Metadata.Images) != 2 {
		t.Fatalf("got %d images, want 2", len(r.Metadata.Images))
	}
	if r.Metadata.Images[0].Name != "debian12" || r.Metadata.Images[0].Target != Deb {
		t.Fatalf("shorthand image = %+v, want name=debian12 target=deb", r.Metadata.Images[0])
	}
	if r.Metadata.Images[1].Name != "centos8" || r.Metadata.Images[1].Target != Rpm {
		t.Fatalf("mapping image = %+v", r.Metadata.Images[1])
	}
	if r.Metadata.Images[1].Os == nil || r.Metadata.Images[1].Os.Distribution != "centos" {
		t.Fatalf("mapping image os hint = %+v", r.Metadata.Images[1].Os)
	}
}

func TestParsePatchesListAndMapForms(t *testing.T) {
	r, err := Parse([]byte(`
metadata:
  name: hello
  version: 1.0.0
  patches:
    debian12:
      - fix.patch
      - patch: extra.patch
        strip: 2
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(r.Metadata.Patches) != 2 {
		t.Fatalf("got %d patches, want 2", len(r.Metadata.Patches))
	}
	if r.Metadata.Patches[0].Patch != "fix.patch" || r.Metadata.Patches[0].Strip != 1 {
		t.Fatalf("first patch = %+v", r.Metadata.Patches[0])
	}
	if r.Metadata.Patches[1].Patch != "extra.patch" || r.Metadata.Patches[1].Strip != 2 {
		t.Fatalf("second patch = %+v", r.Metadata.Patches[1])
	}
	for _, p := range r.Metadata.Patches {
		if len(p.Images) != 1 || p.Images[0] != "debian12" {
			t.Fatalf("patch images = %v, want [debian12]", p.Images)
		}
	}
}

func TestParseDependsFlatListAppliesToAll(t *testing.T) {
	r, err := Parse([]byte(`
metadata:
  name: hello
  version: 1.0.0
  depends:
    - libc
    - libssl
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !r.Metadata.Depends.DependsOn("anything", "libc") {
		t.Fatal("flat dependency list should apply to every image")
	}
}

func TestParseScriptStepsShorthandAndMapping(t *testing.T) {
	r, err := Parse([]byte(`
metadata:
  name: hello
  version: 1.0.0
build:
  working_dir: /pkger/build/src
  steps:
    - make
    - cmd: make install
      rpm: true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Build == nil || len(r.Build.Steps) != 2 {
		t.Fatalf("Build = %+v", r.Build)
	}
	if r.Build.Steps[0].Cmd != "make" {
		t.Fatalf("first step = %+v", r.Build.Steps[0])
	}
	if r.Build.Steps[1].Cmd != "make install" || !r.Build.Steps[1].Rpm {
		t.Fatalf("second step = %+v", r.Build.Steps[1])
	}
}
