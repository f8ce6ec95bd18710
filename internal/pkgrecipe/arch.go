package pkgrecipe

import "strings"

type archKind int

const (
	archAll archKind = iota
	archX8664
	archX86
	archArm
	archArmv6h
	archArmv7h
	archArm64
	archOther
)

// Arch is the recipe's declared target architecture: a closed set of
// known CPU families plus an escape hatch for anything else, each
// carrying its own per-package-format name.
type Arch struct {
	kind  archKind
	other string
}

var (
	ArchAll    = Arch{kind: archAll}
	ArchX8664  = Arch{kind: archX8664}
	ArchX86    = Arch{kind: archX86}
	ArchArm    = Arch{kind: archArm}
	ArchArmv6h = Arch{kind: archArmv6h}
	ArchArmv7h = Arch{kind: archArmv7h}
	ArchArm64  = Arch{kind: archArm64}
)

// ArchOther wraps an architecture string the recipe model does not model
// explicitly; its name is passed through verbatim for every target.
func ArchOther(name string) Arch {
	return Arch{kind: archOther, other: name}
}

// ParseArch accepts the recipe YAML's `arch` string and normalizes common
// aliases (amd64/x86_64, arm64/aarch64, noarch/any/all) onto the closed
// set of known architectures.
func ParseArch(s string) Arch {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "noarch", "any", "all":
		return ArchAll
	case "amd64", "x86_64", "x86-64":
		return ArchX8664
	case "x86", "i386", "i686":
		return ArchX86
	case "arm":
		return ArchArm
	case "armv6h", "armv6l", "armhf":
		return ArchArmv6h
	case "armv7h", "armv7l":
		return ArchArmv7h
	case "arm64", "aarch64":
		return ArchArm64
	default:
		return ArchOther(s)
	}
}

// DebName returns the architecture's Debian package-field spelling.
func (a Arch) DebName() string {
	switch a.kind {
	case archAll:
		return "all"
	case archX8664:
		return "amd64"
	case archX86:
		return "i386"
	case archArm:
		return "armel"
	case archArmv6h:
		return "armhf"
	case archArmv7h:
		return "armhf"
	case archArm64:
		return "arm64"
	default:
		return a.other
	}
}

// RpmName returns the architecture's RPM %{_target_cpu} spelling.
func (a Arch) RpmName() string {
	switch a.kind {
	case archAll:
		return "noarch"
	case archX8664:
		return "x86_64"
	case archX86:
		return "i386"
	case archArm:
		return "armel"
	case archArmv6h:
		return "armv6hl"
	case archArmv7h:
		return "armv7hl"
	case archArm64:
		return "aarch64"
	default:
		return a.other
	}
}

// PkgName returns the architecture's Arch Linux PKGBUILD arch= spelling.
func (a Arch) PkgName() string {
	switch a.kind {
	case archAll:
		return "any"
	case archX8664:
		return "x86_64"
	case archX86:
		return "i386"
	case archArm:
		return "arm"
	case archArmv6h:
		return "armv6h"
	case archArmv7h:
		return "armv7h"
	case archArm64:
		return "aarch64"
	default:
		return a.other
	}
}

// ApkName returns the architecture's Alpine APKBUILD arch= spelling.
func (a Arch) ApkName() string {
	switch a.kind {
	case archAll:
		return "all"
	case archX8664:
		return "x86_64"
	case archX86:
		return "x86"
	case archArm:
		return "armhf"
	case archArmv6h:
		return "armhf"
	case archArmv7h:
		return "armv7"
	case archArm64:
		return "aarch64"
	default:
		return a.other
	}
}

// NameFor returns the architecture's spelling for the given target.
func (a Arch) NameFor(target BuildTarget) string {
	switch target {
	case Rpm:
		return a.RpmName()
	case Deb:
		return a.DebName()
	case Pkg:
		return a.PkgName()
	case Apk:
		return a.ApkName()
	default:
		return a.DebName()
	}
}
