package domain

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

// Signature is the declaration of one release: its version fingerprint and
// the byte pattern of every theme it supports.
type Signature struct {
	Label   string
	Version []byte
	Themes  map[m.ThemeKind][]byte
}

// Registry is the read-only catalog of known releases.
type Registry struct {
	releases []m.Release
	themes   map[string]map[m.ThemeKind]m.ThemeFingerprint
}

// NewRegistry builds a registry from signatures in declaration order and
// validates it.
func NewRegistry(signatures ...Signature) (*Registry, error) {
	r := &Registry{
		releases: make([]m.Release, 0, len(signatures)),
		themes:   make(map[string]map[m.ThemeKind]m.ThemeFingerprint, len(signatures)),
	}

	for _, sig := range signatures {
		if _, dup := r.themes[sig.Label]; dup {
			return nil, fmt.Errorf("%w: duplicate release %q", ErrInvalidRegistry, sig.Label)
		}

		r.releases = append(r.releases, m.Release{
			Label:   sig.Label,
			Version: bytes.Clone(sig.Version),
		})

		fingerprints := make(map[m.ThemeKind]m.ThemeFingerprint, len(sig.Themes))
		for kind, pattern := range sig.Themes {
			fingerprints[kind] = m.ThemeFingerprint{
				Pattern:     bytes.Clone(pattern),
				Replacement: bytes.Clone(pattern),
			}
		}

		r.themes[sig.Label] = fingerprints
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Releases returns the releases in declaration order.
func (r *Registry) Releases() []m.Release {
	out := make([]m.Release, len(r.releases))
	for i, release := range r.releases {
		out[i] = cloneRelease(release)
	}

	return out
}

// Fingerprints returns the theme fingerprints registered for release. A
// missing entry means the theme is unsupported for that release.
func (r *Registry) Fingerprints(release m.Release) map[m.ThemeKind]m.ThemeFingerprint {
	src := r.themes[release.Label]
	out := make(map[m.ThemeKind]m.ThemeFingerprint, len(src))

	for kind, fp := range src {
		out[kind] = m.ThemeFingerprint{
			Pattern:     bytes.Clone(fp.Pattern),
			Replacement: bytes.Clone(fp.Replacement),
		}
	}

	return out
}

// Lookup resolves a release by its label.
func (r *Registry) Lookup(label string) (m.Release, bool) {
	for _, release := range r.releases {
		if release.Label == label {
			return cloneRelease(release), true
		}
	}

	return m.Release{}, false
}

func cloneRelease(release m.Release) m.Release {
	return m.Release{Label: release.Label, Version: bytes.Clone(release.Version)}
}

// Themes returns the themes supported by release in detection priority order.
func (r *Registry) Themes(release m.Release) []m.ThemeKind {
	var kinds []m.ThemeKind

	for _, kind := range m.ThemePriority {
		if _, ok := r.themes[release.Label][kind]; ok {
			kinds = append(kinds, kind)
		}
	}

	return kinds
}

// Validate checks the invariants detection and patching rely on.
//
// Version fingerprints must not contain one another: detection is
// first-match-wins, so an overlap would make the outcome depend on
// declaration order. Within a release all theme patterns must share one
// length so any theme can be swapped for any other in place.
func (r *Registry) Validate() error {
	for i, release := range r.releases {
		if release.Label == "" {
			return fmt.Errorf("%w: release #%d has no label", ErrInvalidRegistry, i)
		}

		if len(release.Version) == 0 {
			return fmt.Errorf("%w: release %q has an empty version fingerprint", ErrInvalidRegistry, release.Label)
		}

		for _, other := range r.releases[i+1:] {
			if bytes.Contains(release.Version, other.Version) || bytes.Contains(other.Version, release.Version) {
				return fmt.Errorf("%w: version fingerprints of %q and %q overlap", ErrInvalidRegistry, release.Label, other.Label)
			}
		}

		if err := validateThemes(release, r.themes[release.Label]); err != nil {
			return err
		}
	}

	return nil
}

func validateThemes(release m.Release, fingerprints map[m.ThemeKind]m.ThemeFingerprint) error {
	width := -1

	kinds := make([]m.ThemeKind, 0, len(fingerprints))
	for kind := range fingerprints {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		fp := fingerprints[kind]

		if kind == m.ThemeNone {
			return fmt.Errorf("%w: release %q registers a fingerprint for theme none", ErrInvalidRegistry, release.Label)
		}

		if len(fp.Pattern) == 0 {
			return fmt.Errorf("%w: release %q has an empty %s pattern", ErrInvalidRegistry, release.Label, kind)
		}

		if len(fp.Replacement) != len(fp.Pattern) {
			return fmt.Errorf("%w: release %q %s replacement is %d bytes, pattern is %d",
				ErrInvalidRegistry, release.Label, kind, len(fp.Replacement), len(fp.Pattern))
		}

		if width >= 0 && len(fp.Pattern) != width {
			return fmt.Errorf("%w: release %q theme patterns differ in length", ErrInvalidRegistry, release.Label)
		}

		width = len(fp.Pattern)

		for _, otherKind := range kinds {
			if otherKind != kind && bytes.Equal(fp.Pattern, fingerprints[otherKind].Pattern) {
				return fmt.Errorf("%w: release %q uses the same pattern for %s and %s",
					ErrInvalidRegistry, release.Label, kind, otherKind)
			}
		}
	}

	return nil
}

// ParsePattern converts space separated hex bytes ("75 15 33 C0") into a
// byte pattern.
func ParsePattern(pattern string) ([]byte, error) {
	fields := strings.Fields(pattern)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty pattern")
	}

	out := make([]byte, 0, len(fields))

	for _, field := range fields {
		if len(field) != 2 {
			return nil, fmt.Errorf("invalid byte %q in pattern", field)
		}

		b, err := hex.DecodeString(field)
		if err != nil {
			return nil, fmt.Errorf("invalid byte %q in pattern: %w", field, err)
		}

		out = append(out, b[0])
	}

	return out, nil
}

// FormatPattern renders a byte pattern the way ParsePattern reads it.
func FormatPattern(pattern []byte) string {
	var b strings.Builder

	for i, c := range pattern {
		if i > 0 {
			b.WriteByte(' ')
		}

		fmt.Fprintf(&b, "%02X", c)
	}

	return b.String()
}
