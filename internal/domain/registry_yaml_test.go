package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

func TestParseSignatures(t *testing.T) {
	data := []byte(`
releases:
  - label: "2023.2.20f1"
    version: "32 30 32 33 2E 32 2E 32 30 66 31"
    themes:
      light: "75 05 33 C0"
      dark: "74 05 33 C0"
  - label: custom
    version: "AA BB CC"
    themes:
      Dark: "74 01"
`)

	signatures, err := ParseSignatures(data)
	require.NoError(t, err)
	require.Len(t, signatures, 2)

	assert.Equal(t, "2023.2.20f1", signatures[0].Label)
	assert.Equal(t, []byte("2023.2.20f1"), signatures[0].Version)
	assert.Equal(t, []byte{0x75, 0x05, 0x33, 0xC0}, signatures[0].Themes[m.ThemeLight])
	assert.Equal(t, []byte{0x74, 0x05, 0x33, 0xC0}, signatures[0].Themes[m.ThemeDark])

	assert.Equal(t, map[m.ThemeKind][]byte{m.ThemeDark: {0x74, 0x01}}, signatures[1].Themes)

	registry, err := NewBuiltinRegistry(signatures...)
	require.NoError(t, err)
	assert.Equal(t, "2023.2.20f1", registry.Releases()[0].Label)
}

func TestParseSignatures_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "releases: [\n"},
		{"unknown field", "releases:\n  - label: a\n    version: \"01\"\n    extra: 1\n"},
		{"missing label", "releases:\n  - version: \"01\"\n"},
		{"bad version", "releases:\n  - label: a\n    version: \"XY\"\n"},
		{"unknown theme", "releases:\n  - label: a\n    version: \"01\"\n    themes:\n      blue: \"01\"\n"},
		{"bad theme pattern", "releases:\n  - label: a\n    version: \"01\"\n    themes:\n      dark: \"0\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSignatures([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRegistry)
		})
	}
}
