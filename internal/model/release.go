package model

import (
	"fmt"
	"strings"
)

// ThemeKind identifies an editor skin compiled into the executable.
type ThemeKind int

const (
	// ThemeNone means no known theme fingerprint matched.
	ThemeNone ThemeKind = iota
	// ThemeLight is the stock light skin.
	ThemeLight
	// ThemeDark is the dark (pro) skin.
	ThemeDark
)

// ThemePriority is the order in which theme fingerprints are tried.
var ThemePriority = []ThemeKind{ThemeDark, ThemeLight}

func (t ThemeKind) String() string {
	switch t {
	case ThemeNone:
		return "none"
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return fmt.Sprintf("ThemeKind(%d)", int(t))
	}
}

// ParseThemeKind converts user input into a patchable ThemeKind.
func ParseThemeKind(value string) (ThemeKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}

	return ThemeNone, fmt.Errorf("unknown theme %q (expected light or dark)", value)
}

// Release identifies one build of the editor by a version fingerprint.
type Release struct {
	Label   string
	Version []byte
}

// IsZero reports whether r is the empty release.
func (r Release) IsZero() bool {
	return r.Label == "" && len(r.Version) == 0
}

func (r Release) String() string {
	return r.Label
}

// ThemeFingerprint is the byte pattern that marks a theme inside a release.
// Pattern and Replacement always have the same length.
type ThemeFingerprint struct {
	Pattern     []byte
	Replacement []byte
}

// SessionState is the lifecycle position of a patcher session.
type SessionState int

const (
	// StateUnbound means no image is loaded.
	StateUnbound SessionState = iota
	// StateLoaded means an image is loaded but its release is unknown.
	StateLoaded
	// StateVersionKnown means the release has been resolved.
	StateVersionKnown
	// StateReady means the active theme has been detected.
	StateReady
)

func (s SessionState) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateLoaded:
		return "loaded"
	case StateVersionKnown:
		return "version-known"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}
