package pkgimage

import "testing"

func TestUnquoteStripsQuotesAndSpace(t *testing.T) {
	cases := map[string]string{
		`"debian"`:  "debian",
		`'debian'`:  "debian",
		`  debian `: "debian",
		`debian`:    "debian",
	}
	for in, want := range cases {
		if got := unquote(in); got != want {
			t.Errorf("unquote(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestVersionRegexExtractsLeadingVersion(t *testing.T) {
	cases := map[string]string{
		"Debian GNU/Linux 12 (bookworm)": "12",
		"Fedora release 34 (Thirty Four)": "34",
		"Rocky Linux release 8.9 (Green Obsidian)": "8.9",
		"Arch Linux":                               "",
	}
	for in, want := range cases {
		if got := versionRe.FindString(in); got != want {
			t.Errorf("versionRe.FindString(%q) = %q, want %q", in, got, want)
		}
	}
}
