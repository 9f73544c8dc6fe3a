package domain

import (
	"fmt"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

// builtinSignatures lists the editor releases darkskin knows out of the box.
// The version fingerprint is the full version string embedded in the editor
// executable; the theme patterns cover the skin check whose conditional jump
// decides between the light and the dark skin.
var builtinSignatures = []struct {
	label string
	light string
	dark  string
}{
	{"2018.4.36f1", "84 C0 75 08 33 C0 48 83 C4 20 5B C3 8B 03", "84 C0 74 08 33 C0 48 83 C4 20 5B C3 8B 03"},
	{"2019.2.21f1", "75 11 33 C0 EB 13 90 90 B8 01 00 00 00", "74 11 33 C0 EB 13 90 90 B8 01 00 00 00"},
	{"2019.4.40f1", "75 15 33 C0 EB 13 90 B8 02 00 00 00", "74 15 33 C0 EB 13 90 B8 02 00 00 00"},
	{"2020.3.48f1", "75 04 33 C0 EB 02 8B 07 48 8B 4C 24", "74 04 33 C0 EB 02 8B 07 48 8B 4C 24"},
	{"2021.3.33f1", "75 03 41 8B 06 48 8B 4C 24 40 48 33 CC", "74 03 41 8B 06 48 8B 4C 24 40 48 33 CC"},
	{"2022.3.14f1", "75 04 33 C0 EB 02 8B 06 48 8B 5C 24 30", "74 04 33 C0 EB 02 8B 06 48 8B 5C 24 30"},
}

// BuiltinSignatures returns the compiled-in release signatures.
func BuiltinSignatures() ([]Signature, error) {
	out := make([]Signature, 0, len(builtinSignatures))

	for _, entry := range builtinSignatures {
		light, err := ParsePattern(entry.light)
		if err != nil {
			return nil, fmt.Errorf("%w: release %q light: %w", ErrInvalidRegistry, entry.label, err)
		}

		dark, err := ParsePattern(entry.dark)
		if err != nil {
			return nil, fmt.Errorf("%w: release %q dark: %w", ErrInvalidRegistry, entry.label, err)
		}

		out = append(out, Signature{
			Label:   entry.label,
			Version: []byte(entry.label),
			Themes: map[m.ThemeKind][]byte{
				m.ThemeLight: light,
				m.ThemeDark:  dark,
			},
		})
	}

	return out, nil
}

// NewBuiltinRegistry builds the registry from the compiled-in signatures,
// with extra signatures declared ahead of them.
func NewBuiltinRegistry(extra ...Signature) (*Registry, error) {
	builtin, err := BuiltinSignatures()
	if err != nil {
		return nil, err
	}

	signatures := make([]Signature, 0, len(extra)+len(builtin))
	signatures = append(signatures, extra...)
	signatures = append(signatures, builtin...)

	return NewRegistry(signatures...)
}
