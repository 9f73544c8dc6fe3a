package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

// buildImage lays out filler, the version string, more filler and the
// fingerprint of theme for the given builtin release.
func buildImage(t *testing.T, registry *Registry, label string, theme m.ThemeKind) []byte {
	t.Helper()

	release, ok := registry.Lookup(label)
	require.True(t, ok, "release %s not registered", label)

	var buf bytes.Buffer

	buf.Write(bytes.Repeat([]byte{0xCC}, 64))
	buf.Write(release.Version)
	buf.Write(bytes.Repeat([]byte{0x90}, 48))

	if theme != m.ThemeNone {
		fp, ok := registry.Fingerprints(release)[theme]
		require.True(t, ok, "release %s has no %s theme", label, theme)
		buf.Write(fp.Pattern)
	}

	buf.Write(bytes.Repeat([]byte{0x00}, 32))

	return buf.Bytes()
}

func builtinRegistry(t *testing.T) *Registry {
	t.Helper()

	registry, err := NewBuiltinRegistry()
	require.NoError(t, err)

	return registry
}

func mustPattern(t *testing.T, pattern string) []byte {
	t.Helper()

	out, err := ParsePattern(pattern)
	require.NoError(t, err)

	return out
}
