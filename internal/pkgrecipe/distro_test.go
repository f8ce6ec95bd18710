package pkgrecipe

import "testing"

func TestMatchDistro(t *testing.T) {
	cases := map[string]Distro{
		"debian":             DistroDebian,
		"Ubuntu":             DistroUbuntu,
		"arch":               DistroArch,
		"centos":             DistroCentOS,
		"fedora":             DistroFedora,
		"rhel":               DistroRedHat,
		"Red Hat Enterprise": DistroRedHat,
		"rocky":              DistroRocky,
		"alpine":             DistroAlpine,
		"solaris":            DistroUnknown,
	}
	for in, want := range cases {
		if got := MatchDistro(in); got != want {
			t.Errorf("MatchDistro(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOsPackageManagerByDistroAndVersion(t *testing.T) {
	cases := []struct {
		os   Os
		want PackageManager
	}{
		{Os{Distribution: "debian", Version: "12"}, PMApt},
		{Os{Distribution: "arch"}, PMPacman},
		{Os{Distribution: "alpine", Version: "3.19"}, PMApk},
		{Os{Distribution: "fedora", Version: "34"}, PMDnf},
		{Os{Distribution: "fedora", Version: "20"}, PMYum},
		{Os{Distribution: "centos", Version: "8"}, PMDnf},
		{Os{Distribution: "centos", Version: "7"}, PMYum},
	}
	for _, c := range cases {
		if got := c.os.PackageManager(); got != c.want {
			t.Errorf("PackageManager(%+v) = %v, want %v", c.os, got, c.want)
		}
	}
}

func TestPackageManagerInstallArgs(t *testing.T) {
	got := PMApt.InstallArgs([]string{"curl", "tar"})
	want := []string{"apt-get", "install", "-y", "curl", "tar"}
	if len(got) != len(want) {
		t.Fatalf("InstallArgs = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("InstallArgs = %v, want %v", got, want)
		}
	}
}

func TestPackageManagerShouldCleanCache(t *testing.T) {
	if PMApk.ShouldCleanCache() {
		t.Fatal("apk should not need a cache clean")
	}
	if PMNone.ShouldCleanCache() {
		t.Fatal("no package manager should not need a cache clean")
	}
	if !PMApt.ShouldCleanCache() {
		t.Fatal("apt should need a cache clean")
	}
}
