package domain

import (
	"log/slog"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

// DetectVersion returns the first release, in declaration order, whose
// version fingerprint occurs in the image. A miss is not an error.
func DetectVersion(img *Image, registry *Registry) (m.Release, bool) {
	for _, release := range registry.Releases() {
		if offset, ok := img.FindFirst(release.Version, 0); ok {
			slog.Debug("Detected release", "release", release.Label, "offset", offset)
			return release, true
		}
	}

	slog.Debug("No release fingerprint matched", "size", img.Len())

	return m.Release{}, false
}

// DetectTheme reports the active theme of an image of the given release,
// probing themes in m.ThemePriority order.
func DetectTheme(img *Image, registry *Registry, release m.Release) m.ThemeKind {
	kind, _ := locateTheme(img, registry.Fingerprints(release))
	return kind
}

func locateTheme(img *Image, fingerprints map[m.ThemeKind]m.ThemeFingerprint) (m.ThemeKind, int) {
	for _, kind := range m.ThemePriority {
		fp, ok := fingerprints[kind]
		if !ok {
			continue
		}

		if offset, found := img.FindFirst(fp.Pattern, 0); found {
			return kind, offset
		}
	}

	return m.ThemeNone, -1
}
