package domain

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

// signatureFile is the YAML layout of a user supplied signature file.
type signatureFile struct {
	Releases []signatureNode `yaml:"releases"`
}

type signatureNode struct {
	Label   string            `yaml:"label"`
	Version string            `yaml:"version"`
	Themes  map[string]string `yaml:"themes"`
}

// ParseSignatures decodes a YAML signature file. Unknown fields are
// rejected so typos in theme or field names surface immediately.
func ParseSignatures(data []byte) ([]Signature, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file signatureFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegistry, err)
	}

	signatures := make([]Signature, 0, len(file.Releases))

	for i, node := range file.Releases {
		if node.Label == "" {
			return nil, fmt.Errorf("%w: release #%d has no label", ErrInvalidRegistry, i)
		}

		version, err := ParsePattern(node.Version)
		if err != nil {
			return nil, fmt.Errorf("%w: release %q version: %w", ErrInvalidRegistry, node.Label, err)
		}

		themes := make(map[m.ThemeKind][]byte, len(node.Themes))

		for name, pattern := range node.Themes {
			kind, err := m.ParseThemeKind(name)
			if err != nil {
				return nil, fmt.Errorf("%w: release %q: %w", ErrInvalidRegistry, node.Label, err)
			}

			parsed, err := ParsePattern(pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: release %q %s: %w", ErrInvalidRegistry, node.Label, kind, err)
			}

			themes[kind] = parsed
		}

		signatures = append(signatures, Signature{
			Label:   node.Label,
			Version: version,
			Themes:  themes,
		})
	}

	return signatures, nil
}
