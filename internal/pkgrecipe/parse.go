package pkgrecipe

import (
	"fmt"

	"github.com/pkgerio/pkger/internal/pkgerr"
	"gopkg.in/yaml.v3"
)

var ErrConfig = fmt.Errorf("recipe config error")

// rawMetadata mirrors the recipe YAML's metadata block, tolerating the
// shorthand forms the schema allows (a bare string for `git`, a flat list
// or an `{all:[...], <image>:[...]}` map for dependency/patch fields, a
// bare string or object for each image entry).
type rawMetadata struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Release         string        `yaml:"release"`
	Epoch           string        `yaml:"epoch"`
	Description     string        `yaml:"description"`
	License         string        `yaml:"license"`
	Maintainer      string        `yaml:"maintainer"`
	URL             string        `yaml:"url"`
	Group           string        `yaml:"group"`
	Arch            string        `yaml:"arch"`
	Source          string        `yaml:"source"`
	Git             yaml.Node     `yaml:"git"`
	Exclude         []string      `yaml:"exclude"`
	Patches         yaml.Node     `yaml:"patches"`
	SkipDefaultDeps bool          `yaml:"skip_default_deps"`
	AllImages       bool          `yaml:"all_images"`
	Images          []yaml.Node   `yaml:"images"`
	BuildDepends    yaml.Node     `yaml:"build_depends"`
	Depends         yaml.Node     `yaml:"depends"`
	Conflicts       yaml.Node     `yaml:"conflicts"`
	Provides        yaml.Node     `yaml:"provides"`

	Deb rawDebOverrides `yaml:"deb"`
	Rpm rawRpmOverrides `yaml:"rpm"`
	Pkg rawPkgOverrides `yaml:"pkg"`
	Apk rawApkOverrides `yaml:"apk"`
}

type rawDebOverrides struct {
	Priority   string   `yaml:"priority"`
	PreDepends []string `yaml:"pre_depends"`
	Replaces   []string `yaml:"replaces"`
	Recommends []string `yaml:"recommends"`
	Suggests   []string `yaml:"suggests"`
	Breaks     []string `yaml:"breaks"`
	Enhances   []string `yaml:"enhances"`
	PreInst    string   `yaml:"preinst"`
	PostInst   string   `yaml:"postinst"`
	PreRm      string   `yaml:"prerm"`
	PostRm     string   `yaml:"postrm"`
}

type rawRpmOverrides struct {
	Vendor   string   `yaml:"vendor"`
	Icon     string   `yaml:"icon"`
	Summary  string   `yaml:"summary"`
	PreInst  string   `yaml:"pre"`
	PostInst string   `yaml:"post"`
	PreUn    string   `yaml:"preun"`
	PostUn   string   `yaml:"postun"`
	Config   []string `yaml:"config"`
}

type rawPkgOverrides struct {
	Install    string   `yaml:"install"`
	Backup     []string `yaml:"backup"`
	OptDepends []string `yaml:"optdepends"`
}

type rawApkOverrides struct {
	Install  string   `yaml:"install"`
	Triggers []string `yaml:"triggers"`
}

type rawCommand struct {
	Cmd     string   `yaml:"cmd"`
	Images  []string `yaml:"images"`
	Version []string `yaml:"versions"`
	Rpm     bool     `yaml:"rpm"`
	Deb     bool     `yaml:"deb"`
	Pkg     bool     `yaml:"pkg"`
	Gzip    bool     `yaml:"gzip"`
	Apk     bool     `yaml:"apk"`
}

type rawScript struct {
	Steps      []yaml.Node `yaml:"steps"`
	WorkingDir string      `yaml:"working_dir"`
	Shell      string      `yaml:"shell"`
}

type rawFile struct {
	Metadata  rawMetadata `yaml:"metadata"`
	Env       map[string]string `yaml:"env"`
	Configure *rawScript  `yaml:"configure"`
	Build     *rawScript  `yaml:"build"`
	Install   *rawScript  `yaml:"install"`
}

// Parse decodes recipe YAML bytes into a validated [Recipe]. Loading the
// bytes from `<recipes-dir>/<name>/recipe.y(a)ml` is the CLI's concern
// (§6); Parse only ever sees bytes already read by the caller.
func Parse(data []byte) (*Recipe, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, pkgerr.Wrap(ErrConfig, err)
	}

	if raw.Metadata.Name == "" || raw.Metadata.Version == "" {
		return nil, pkgerr.Wrapf(ErrConfig, "recipe metadata requires name and version")
	}

	r := &Recipe{
		Env: raw.Env,
	}

	md := &r.Metadata
	md.Name = raw.Metadata.Name
	md.Version = raw.Metadata.Version
	md.Release = raw.Metadata.Release
	if md.Release == "" {
		md.Release = "0"
	}
	md.Epoch = raw.Metadata.Epoch
	md.Description = raw.Metadata.Description
	md.License = raw.Metadata.License
	md.Maintainer = raw.Metadata.Maintainer
	md.URL = raw.Metadata.URL
	md.Group = raw.Metadata.Group
	md.Arch = ParseArch(raw.Metadata.Arch)
	md.Source = raw.Metadata.Source
	md.ExcludePaths = raw.Metadata.Exclude
	md.SkipDefaultDeps = raw.Metadata.SkipDefaultDeps
	md.AllImages = raw.Metadata.AllImages

	md.Deb = DebOverrides(raw.Metadata.Deb)
	md.Rpm = RpmOverrides(raw.Metadata.Rpm)
	md.Pkg = PkgOverrides(raw.Metadata.Pkg)
	md.Apk = ApkOverrides(raw.Metadata.Apk)

	if err := parseGit(&raw.Metadata.Git, md); err != nil {
		return nil, err
	}

	images, err := parseImages(raw.Metadata.Images)
	if err != nil {
		return nil, err
	}
	md.Images = images

	md.Patches, err = parsePatches(&raw.Metadata.Patches)
	if err != nil {
		return nil, err
	}

	md.BuildDepends, err = parseDeps(&raw.Metadata.BuildDepends)
	if err != nil {
		return nil, err
	}
	md.Depends, err = parseDeps(&raw.Metadata.Depends)
	if err != nil {
		return nil, err
	}
	md.Conflicts, err = parseDeps(&raw.Metadata.Conflicts)
	if err != nil {
		return nil, err
	}
	md.Provides, err = parseDeps(&raw.Metadata.Provides)
	if err != nil {
		return nil, err
	}

	r.Configure, err = parseScript(raw.Configure)
	if err != nil {
		return nil, err
	}
	r.Build, err = parseScript(raw.Build)
	if err != nil {
		return nil, err
	}
	r.Install, err = parseScript(raw.Install)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func parseGit(n *yaml.Node, md *Metadata) error {
	if n.IsZero() {
		return nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		md.Git = &GitSource{URL: n.Value, Branch: "master"}
	case yaml.MappingNode:
		var g struct {
			URL    string `yaml:"url"`
			Branch string `yaml:"branch"`
		}
		if err := n.Decode(&g); err != nil {
			return pkgerr.Wrap(ErrConfig, err)
		}
		if g.Branch == "" {
			g.Branch = "master"
		}
		md.Git = &GitSource{URL: g.URL, Branch: g.Branch}
	}
	return nil
}

func parseImages(nodes []yaml.Node) ([]Image, error) {
	images := make([]Image, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		var img Image
		switch n.Kind {
		case yaml.ScalarNode:
			img = Image{Name: n.Value, Target: Deb}
		case yaml.MappingNode:
			var raw struct {
				Name   string `yaml:"name"`
				Target string `yaml:"target"`
				Os     string `yaml:"os"`
			}
			if err := n.Decode(&raw); err != nil {
				return nil, pkgerr.Wrap(ErrConfig, err)
			}
			img = Image{Name: raw.Name, Target: BuildTarget(raw.Target)}
			if raw.Os != "" {
				img.Os = &Os{Distribution: raw.Os}
			}
		default:
			return nil, pkgerr.Wrapf(ErrConfig, "images: unexpected node kind")
		}
		images = append(images, img)
	}
	return images, nil
}

func parsePatches(n *yaml.Node) (Patches, error) {
	if n.IsZero() {
		return nil, nil
	}

	var out Patches

	appendOne := func(pn *yaml.Node, images []string) error {
		switch pn.Kind {
		case yaml.ScalarNode:
			out = append(out, Patch{Patch: pn.Value, Strip: 1, Images: images})
		case yaml.MappingNode:
			var raw struct {
				Patch  string   `yaml:"patch"`
				Strip  int      `yaml:"strip"`
				Images []string `yaml:"images"`
			}
			if err := pn.Decode(&raw); err != nil {
				return pkgerr.Wrap(ErrConfig, err)
			}
			if raw.Strip == 0 {
				raw.Strip = 1
			}
			if len(images) > 0 && len(raw.Images) == 0 {
				raw.Images = images
			}
			out = append(out, Patch{Patch: raw.Patch, Strip: raw.Strip, Images: raw.Images})
		default:
			return pkgerr.Wrapf(ErrConfig, "patches: unexpected node kind")
		}
		return nil
	}

	switch n.Kind {
	case yaml.SequenceNode:
		for i := range n.Content {
			if err := appendOne(n.Content[i], nil); err != nil {
				return nil, err
			}
		}
	case yaml.MappingNode:
		for i := 0; i < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val := n.Content[i+1]
			var images []string
			if key != commonDepsKey {
				images = []string{key}
			}
			if val.Kind != yaml.SequenceNode {
				return nil, pkgerr.Wrapf(ErrConfig, "patches.%s: expected a list", key)
			}
			for j := range val.Content {
				if err := appendOne(val.Content[j], images); err != nil {
					return nil, err
				}
			}
		}
	default:
		return nil, pkgerr.Wrapf(ErrConfig, "patches: unexpected node kind")
	}

	return out, nil
}

// parseDeps accepts either a flat list (applies to "all") or the
// `{all:[...], <image>:[...]}` map form, expanding "+"-joined keys.
func parseDeps(n *yaml.Node) (Dependencies, error) {
	if n.IsZero() {
		return Dependencies{}, nil
	}

	raw := make(map[string][]string)

	switch n.Kind {
	case yaml.SequenceNode:
		var flat []string
		if err := n.Decode(&flat); err != nil {
			return nil, pkgerr.Wrap(ErrConfig, err)
		}
		raw[commonDepsKey] = flat
	case yaml.MappingNode:
		if err := n.Decode(&raw); err != nil {
			return nil, pkgerr.Wrap(ErrConfig, err)
		}
	default:
		return nil, pkgerr.Wrapf(ErrConfig, "dependency field: unexpected node kind")
	}

	return NewDependencies(raw), nil
}

func parseScript(raw *rawScript) (*Script, error) {
	if raw == nil {
		return nil, nil
	}

	s := &Script{WorkingDir: raw.WorkingDir, Shell: raw.Shell}
	for i := range raw.Steps {
		n := &raw.Steps[i]
		var cmd Command
		switch n.Kind {
		case yaml.ScalarNode:
			cmd = Command{Cmd: n.Value}
		case yaml.MappingNode:
			var rc rawCommand
			if err := n.Decode(&rc); err != nil {
				return nil, pkgerr.Wrap(ErrConfig, err)
			}
			cmd = Command(rc)
		default:
			return nil, pkgerr.Wrapf(ErrConfig, "script step: unexpected node kind")
		}
		s.Steps = append(s.Steps, cmd)
	}
	return s, nil
}
