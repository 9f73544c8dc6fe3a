package domain

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"darkskin.dev/pkg/darkskin/internal/adapter"
	adaptermocks "darkskin.dev/pkg/darkskin/internal/adapter/mocks"
	m "darkskin.dev/pkg/darkskin/internal/model"
)

func writeImage(t *testing.T, data []byte) m.Path {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Unity.exe")
	require.NoError(t, os.WriteFile(path, data, 0o755))

	return m.Path(path)
}

func readyPatcher(t *testing.T, p *Patcher, path m.Path) {
	t.Helper()

	ctx := context.Background()

	require.NoError(t, p.Bind(ctx, path))
	_, ok, err := p.DetectVersion()
	require.NoError(t, err)
	require.True(t, ok)
	_, err = p.DetectTheme()
	require.NoError(t, err)
	require.Equal(t, m.StateReady, p.State())
}

func TestPatcher_LightToDarkOnDisk(t *testing.T) {
	ctx := context.Background()
	registry := builtinRegistry(t)

	original := buildImage(t, registry, "2019.4.40f1", m.ThemeLight)
	path := writeImage(t, original)

	p := NewPatcher(adapter.NewLocalImageStore(), registry)
	assert.Equal(t, m.StateUnbound, p.State())

	require.NoError(t, p.Bind(ctx, path))
	assert.Equal(t, m.StateLoaded, p.State())
	assert.Equal(t, path, p.Path())

	release, ok, err := p.DetectVersion()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2019.4.40f1", release.Label)
	assert.Equal(t, m.StateVersionKnown, p.State())

	theme, err := p.DetectTheme()
	require.NoError(t, err)
	assert.Equal(t, m.ThemeLight, theme)
	assert.Equal(t, m.StateReady, p.State())

	result, err := p.ApplyPatch(ctx, m.ThemeDark)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.True(t, result.Saved)
	assert.Equal(t, m.ThemeDark, p.Theme())
	assert.Equal(t, m.StateReady, p.State())

	onDisk, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.Len(t, onDisk, len(original))
	assert.NotEqual(t, original, onDisk)

	info, err := os.Stat(string(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	reloaded := NewPatcher(adapter.NewLocalImageStore(), registry)
	readyPatcher(t, reloaded, path)
	assert.Equal(t, m.ThemeDark, reloaded.Theme())

	_, err = os.Stat(string(path) + adapter.BackupSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestPatcher_BackupBeforeWrite(t *testing.T) {
	ctx := context.Background()
	registry := builtinRegistry(t)

	original := buildImage(t, registry, "2022.3.14f1", m.ThemeDark)
	path := writeImage(t, original)

	p := NewPatcher(adapter.NewLocalImageStore(), registry, WithBackup(true))
	readyPatcher(t, p, path)

	_, err := p.ApplyPatch(ctx, m.ThemeLight)
	require.NoError(t, err)

	backup, err := os.ReadFile(string(path) + adapter.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, original, backup)

	_, err = p.ApplyPatch(ctx, m.ThemeDark)
	require.NoError(t, err)

	backup, err = os.ReadFile(string(path) + adapter.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, original, backup, "existing backup is kept")
}

func TestPatcher_PreconditionViolations(t *testing.T) {
	ctx := context.Background()
	registry := builtinRegistry(t)
	path := writeImage(t, buildImage(t, registry, "2019.4.40f1", m.ThemeLight))

	p := NewPatcher(adapter.NewLocalImageStore(), registry)

	_, _, err := p.DetectVersion()
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, m.StateUnbound, p.State())

	_, err = p.SelectRelease("2019.4.40f1")
	require.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, p.Bind(ctx, path))

	_, err = p.DetectTheme()
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, m.StateLoaded, p.State())

	_, err = p.ApplyPatch(ctx, m.ThemeDark)
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = p.PlanPatch(m.ThemeDark)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, m.StateLoaded, p.State())

	_, _, err = p.DetectVersion()
	require.NoError(t, err)

	_, _, err = p.DetectVersion()
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, m.StateVersionKnown, p.State())
}

func TestPatcher_BindFailureLeavesUnbound(t *testing.T) {
	ctx := context.Background()
	registry := builtinRegistry(t)

	p := NewPatcher(adapter.NewLocalImageStore(), registry)
	readyPatcher(t, p, writeImage(t, buildImage(t, registry, "2019.4.40f1", m.ThemeLight)))

	err := p.Bind(ctx, m.Path(filepath.Join(t.TempDir(), "missing.exe")))
	require.ErrorIs(t, err, ErrIO)
	assert.Equal(t, m.StateUnbound, p.State())
	assert.Empty(t, p.Path())
	assert.True(t, p.Release().IsZero())
	assert.Equal(t, m.ThemeNone, p.Theme())

	_, err = p.ApplyPatch(ctx, m.ThemeDark)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestPatcher_BindTooLarge(t *testing.T) {
	ctx := context.Background()
	registry := builtinRegistry(t)
	path := writeImage(t, buildImage(t, registry, "2019.4.40f1", m.ThemeLight))

	p := NewPatcher(adapter.NewLocalImageStore(), registry, WithMaxImageSize(8))

	err := p.Bind(ctx, path)
	require.ErrorIs(t, err, ErrImageTooLarge)
	assert.Equal(t, m.StateUnbound, p.State())
}

func TestPatcher_UnsupportedVersionStaysLoaded(t *testing.T) {
	ctx := context.Background()
	registry := builtinRegistry(t)
	path := writeImage(t, []byte("some other program"))

	p := NewPatcher(adapter.NewLocalImageStore(), registry)
	require.NoError(t, p.Bind(ctx, path))

	release, ok, err := p.DetectVersion()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, release.IsZero())
	assert.Equal(t, m.StateLoaded, p.State())
}

func TestPatcher_SelectRelease(t *testing.T) {
	ctx := context.Background()
	registry := builtinRegistry(t)

	release, _ := registry.Lookup("2020.3.48f1")
	pattern := registry.Fingerprints(release)[m.ThemeLight].Pattern
	path := writeImage(t, append([]byte("no version string here "), pattern...))

	p := NewPatcher(adapter.NewLocalImageStore(), registry)
	require.NoError(t, p.Bind(ctx, path))

	_, err := p.SelectRelease("1999.1.0f1")
	require.ErrorIs(t, err, ErrUnknownRelease)
	assert.Equal(t, m.StateLoaded, p.State())

	selected, err := p.SelectRelease("2020.3.48f1")
	require.NoError(t, err)
	assert.Equal(t, release, selected)
	assert.Equal(t, m.StateVersionKnown, p.State())

	theme, err := p.DetectTheme()
	require.NoError(t, err)
	assert.Equal(t, m.ThemeLight, theme)

	_, err = p.SelectRelease("2020.3.48f1")
	require.NoError(t, err)
	assert.Equal(t, m.StateVersionKnown, p.State())
	assert.Equal(t, m.ThemeNone, p.Theme())
}

func TestPatcher_NoOpDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	registry := builtinRegistry(t)
	data := buildImage(t, registry, "2019.4.40f1", m.ThemeLight)

	store := adaptermocks.NewMockImageStore(t)
	store.On("ReadFile", mock.Anything, m.Path("Unity.exe"), DefaultMaxImageSize).Return(data, nil)

	p := NewPatcher(store, registry, WithBackup(true))
	readyPatcher(t, p, "Unity.exe")

	result, err := p.ApplyPatch(ctx, m.ThemeLight)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.False(t, result.Saved)

	store.AssertNotCalled(t, "Backup", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "WriteFileAtomic", mock.Anything, mock.Anything, mock.Anything)
}

func TestPatcher_SaveFailureRevertsImage(t *testing.T) {
	ctx := context.Background()
	registry := builtinRegistry(t)
	data := buildImage(t, registry, "2019.4.40f1", m.ThemeLight)

	store := adaptermocks.NewMockImageStore(t)
	store.On("ReadFile", mock.Anything, m.Path("Unity.exe"), DefaultMaxImageSize).Return(bytes.Clone(data), nil)
	store.On("WriteFileAtomic", mock.Anything, m.Path("Unity.exe"), mock.Anything).Return(errors.New("read-only file system"))

	p := NewPatcher(store, registry)
	readyPatcher(t, p, "Unity.exe")

	_, err := p.ApplyPatch(ctx, m.ThemeDark)
	require.ErrorIs(t, err, ErrIO)
	assert.Equal(t, m.ThemeLight, p.Theme())
	assert.Equal(t, m.StateReady, p.State())

	plan, err := p.PlanPatch(m.ThemeDark)
	require.NoError(t, err)
	assert.Equal(t, m.ThemeLight, plan.From)
	assert.True(t, plan.Changed)
}

func TestPatcher_BackupFailureSkipsWrite(t *testing.T) {
	ctx := context.Background()
	registry := builtinRegistry(t)
	data := buildImage(t, registry, "2019.4.40f1", m.ThemeLight)

	store := adaptermocks.NewMockImageStore(t)
	store.On("ReadFile", mock.Anything, m.Path("Unity.exe"), DefaultMaxImageSize).Return(data, nil)
	store.On("Backup", mock.Anything, m.Path("Unity.exe")).Return(false, errors.New("permission denied"))

	p := NewPatcher(store, registry, WithBackup(true))
	readyPatcher(t, p, "Unity.exe")

	_, err := p.ApplyPatch(ctx, m.ThemeDark)
	require.ErrorIs(t, err, ErrIO)
	assert.Equal(t, m.ThemeLight, p.Theme())

	store.AssertNotCalled(t, "WriteFileAtomic", mock.Anything, mock.Anything, mock.Anything)
}

func TestPatcher_ApplyUnsupportedTheme(t *testing.T) {
	ctx := context.Background()
	registry, err := NewRegistry(Signature{
		Label:   "light-only",
		Version: []byte("light-only"),
		Themes:  map[m.ThemeKind][]byte{m.ThemeLight: {0x75, 0x01}},
	})
	require.NoError(t, err)

	path := writeImage(t, []byte("light-only\x75\x01"))

	p := NewPatcher(adapter.NewLocalImageStore(), registry)
	readyPatcher(t, p, path)

	_, err = p.ApplyPatch(ctx, m.ThemeDark)
	require.ErrorIs(t, err, ErrUnsupportedTheme)
	assert.Equal(t, m.StateReady, p.State())
}

func TestPatcher_Reset(t *testing.T) {
	registry := builtinRegistry(t)

	p := NewPatcher(adapter.NewLocalImageStore(), registry)
	readyPatcher(t, p, writeImage(t, buildImage(t, registry, "2019.4.40f1", m.ThemeDark)))

	p.Reset()

	assert.Equal(t, m.StateUnbound, p.State())
	assert.Equal(t, m.ThemeNone, p.Theme())
	assert.Empty(t, p.Path())
}
