package pkgrecipe

import "testing"

func TestNewDependenciesExpandsJoinedKeys(t *testing.T) {
	deps := NewDependencies(map[string][]string{
		"centos8+fedora34": {"openssl-devel"},
		"all":              {"tar"},
	})

	if !deps.DependsOn("centos8", "openssl-devel") {
		t.Fatal("centos8 should depend on openssl-devel")
	}
	if !deps.DependsOn("fedora34", "openssl-devel") {
		t.Fatal("fedora34 should depend on openssl-devel")
	}
	if !deps.DependsOn("anything", "tar") {
		t.Fatal("the common set should apply to every image")
	}
}

func TestDependenciesResolveUnionsCommonAndImage(t *testing.T) {
	deps := NewDependencies(map[string][]string{
		"all":    {"tar", "curl"},
		"debian": {"dpkg"},
	})

	resolved := deps.Resolve("debian")
	want := []string{"curl", "dpkg", "tar"}
	assertStringSlice(t, resolved, want)

	resolved = deps.Resolve("arch")
	assertStringSlice(t, resolved, []string{"curl", "tar"})
}

func TestResolveDepsMergesDefaultsRecipeAndSimpleImage(t *testing.T) {
	r := &Recipe{
		Metadata: Metadata{
			Source: "https://example.com/src.tar.gz",
			BuildDepends: NewDependencies(map[string][]string{
				"my-image":            {"foo"},
				SimpleImageName(Deb): {"bar"},
			}),
		},
	}

	got := ResolveDeps(r, "my-image", Deb, false)

	for _, want := range []string{"tar", "dpkg", "curl", "foo", "bar"} {
		found := false
		for _, d := range got {
			if d == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("ResolveDeps(%v) missing %q", got, want)
		}
	}
}

func TestResolveDepsGpgAddsSigningTools(t *testing.T) {
	r := &Recipe{Metadata: Metadata{SkipDefaultDeps: true}}

	withoutGpg := ResolveDeps(r, "my-image", Rpm, false)
	withGpg := ResolveDeps(r, "my-image", Rpm, true)

	if len(withGpg) <= len(withoutGpg) {
		t.Fatalf("gpg-enabled deps (%v) should be a superset of %v", withGpg, withoutGpg)
	}
}

func TestResolveDepsSkipDefaultDepsSkipsSourceTriggers(t *testing.T) {
	r := &Recipe{Metadata: Metadata{
		Source:          "https://example.com/src.zip",
		SkipDefaultDeps: true,
	}}

	got := ResolveDeps(r, "my-image", Gzip, false)
	for _, d := range got {
		if d == "curl" || d == "zip" {
			t.Fatalf("skip_default_deps should suppress source-triggered deps, got %v", got)
		}
	}
}

func assertStringSlice(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
