package platformservice

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/redjax/sysreadout/internal/readout"
	"github.com/redjax/sysreadout/internal/utils/kvfile"
)

// descriptor parses a KEY=VALUE descriptor file below the root.
func (r fsRoot) descriptor(elem ...string) (kvfile.Record, error) {
	res, err := kvfile.ParseFile(r.path(elem...))
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

// osReleaseDistribution reads PRETTY_NAME, falling back to NAME + VERSION_ID.
func (r fsRoot) osReleaseDistribution(elem ...string) readout.Adapter[string] {
	return readout.Source(r.path(elem...), func() (string, error) {
		rec, err := r.descriptor(elem...)
		if err != nil {
			return "", err
		}
		return distributionFromOSRelease(rec)
	})
}

func distributionFromOSRelease(rec kvfile.Record) (string, error) {
	if pretty := rec.Value("PRETTY_NAME"); pretty != "" {
		return pretty, nil
	}

	name := rec.Value("NAME")
	if name == "" {
		if id := rec.Value("ID"); id != "" {
			name = prettyName(id)
		}
	}
	if name == "" {
		return "", readout.Unavailable("os-release has no PRETTY_NAME, NAME or ID")
	}

	if v := rec.Value("VERSION_ID"); v != "" {
		return name + " " + v, nil
	}
	return name, nil
}

// lsbReleaseDistribution reads DISTRIB_DESCRIPTION from /etc/lsb-release.
func (r fsRoot) lsbReleaseDistribution() readout.Adapter[string] {
	return readout.Source(r.path("etc", "lsb-release"), func() (string, error) {
		rec, err := r.descriptor("etc", "lsb-release")
		if err != nil {
			return "", err
		}

		if d := rec.Value("DISTRIB_DESCRIPTION"); d != "" {
			return d, nil
		}
		if id := rec.Value("DISTRIB_ID"); id != "" {
			return strings.TrimSpace(id + " " + rec.Value("DISTRIB_RELEASE")), nil
		}
		return "", readout.Unavailable("lsb-release has no DISTRIB_DESCRIPTION or DISTRIB_ID")
	})
}

// prettyName title-cases identifiers such as "arch" or "opensuse-tumbleweed".
func prettyName(id string) string {
	id = strings.ReplaceAll(strings.TrimSpace(id), "-", " ")
	return cases.Title(language.English).String(id)
}

// prettyDesktop normalises XDG desktop names. Colon separated lists such as
// "ubuntu:GNOME" report the last entry.
func prettyDesktop(s string) (string, error) {
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", readout.Unavailable("empty desktop name")
	}

	switch strings.ToLower(s) {
	case "gnome":
		return "GNOME", nil
	case "kde", "plasma":
		return "KDE Plasma", nil
	case "lxde":
		return "LXDE", nil
	case "lxqt":
		return "LXQt", nil
	case "xfce":
		return "Xfce", nil
	case "mate":
		return "MATE", nil
	case "x-cinnamon", "cinnamon":
		return "Cinnamon", nil
	}
	return prettyName(s), nil
}
