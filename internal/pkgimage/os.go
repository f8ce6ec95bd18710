package pkgimage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkgerio/pkger/internal/pkgerr"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
	"github.com/pkgerio/pkger/internal/pkgruntime"
)

var ErrProbe = errors.New("os probe error")

var versionRe = regexp.MustCompile(`[0-9][0-9.\-]*`)

// ProbeOs runs the three-probe cascade against a running container,
// returning on first success: /etc/os-release, then /etc/issue, then
// /etc/redhat-release. The distribution is matched case-insensitively
// against the known set; no match is a hard error.
func ProbeOs(ctx context.Context, c *pkgruntime.Container) (pkgrecipe.Os, error) {
	if os, ok, err := probeOsRelease(ctx, c); err != nil {
		return pkgrecipe.Os{}, err
	} else if ok {
		return os, nil
	}

	if os, ok, err := probeIssue(ctx, c); err != nil {
		return pkgrecipe.Os{}, err
	} else if ok {
		return os, nil
	}

	if os, ok, err := probeRedhatRelease(ctx, c); err != nil {
		return pkgrecipe.Os{}, err
	} else if ok {
		return os, nil
	}

	return pkgrecipe.Os{}, pkgerr.Wrapf(ErrProbe, "exhausted all probes without identifying an OS")
}

func probeOsRelease(ctx context.Context, c *pkgruntime.Container) (pkgrecipe.Os, bool, error) {
	out, ok := catQuiet(ctx, c, "/etc/os-release")
	if !ok {
		return pkgrecipe.Os{}, false, nil
	}

	var id, version string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "ID="):
			id = unquote(strings.TrimPrefix(line, "ID="))
		case strings.HasPrefix(line, "VERSION_ID="):
			version = unquote(strings.TrimPrefix(line, "VERSION_ID="))
		}
	}

	if pkgrecipe.MatchDistro(id) == pkgrecipe.DistroUnknown {
		return pkgrecipe.Os{}, false, nil
	}
	return pkgrecipe.Os{Distribution: id, Version: version}, true, nil
}

func probeIssue(ctx context.Context, c *pkgruntime.Container) (pkgrecipe.Os, bool, error) {
	out, ok := catQuiet(ctx, c, "/etc/issue")
	if !ok {
		return pkgrecipe.Os{}, false, nil
	}

	fields := strings.Fields(out)
	if len(fields) == 0 {
		return pkgrecipe.Os{}, false, nil
	}

	id := fields[0]
	if pkgrecipe.MatchDistro(id) == pkgrecipe.DistroUnknown {
		return pkgrecipe.Os{}, false, nil
	}

	version := versionRe.FindString(out)
	return pkgrecipe.Os{Distribution: id, Version: version}, true, nil
}

func probeRedhatRelease(ctx context.Context, c *pkgruntime.Container) (pkgrecipe.Os, bool, error) {
	out, ok := catQuiet(ctx, c, "/etc/redhat-release")
	if !ok {
		return pkgrecipe.Os{}, false, nil
	}

	fields := strings.Fields(out)
	if len(fields) == 0 {
		return pkgrecipe.Os{}, false, nil
	}

	id := fields[0]
	if pkgrecipe.MatchDistro(id) == pkgrecipe.DistroUnknown {
		return pkgrecipe.Os{}, false, nil
	}

	version := versionRe.FindString(out)
	return pkgrecipe.Os{Distribution: id, Version: version}, true, nil
}

// catQuiet runs `cat path` and reports success only when the exec itself
// ran and exited zero; a missing file or nonzero exit cascades to the
// next probe rather than failing the whole prober.
func catQuiet(ctx context.Context, c *pkgruntime.Container, path string) (string, bool) {
	result, err := c.Exec(ctx, pkgruntime.ExecOptions{Cmd: fmt.Sprintf("cat %s", path)})
	if err != nil || result.ExitCode != 0 {
		return "", false
	}
	return result.Stdout, true
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, `"'`)
}
