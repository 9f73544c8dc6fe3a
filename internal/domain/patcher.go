package domain

import (
	"context"
	"fmt"
	"log/slog"

	"darkskin.dev/pkg/darkskin/internal/adapter"
	m "darkskin.dev/pkg/darkskin/internal/model"
)

// PatcherOption configures a Patcher.
type PatcherOption func(*Patcher)

// WithMaxImageSize sets the size ceiling for bound executables.
func WithMaxImageSize(limit int64) PatcherOption {
	return func(p *Patcher) {
		p.maxSize = limit
	}
}

// WithBackup makes the patcher copy the executable to a backup before the
// first write.
func WithBackup(enabled bool) PatcherOption {
	return func(p *Patcher) {
		p.backup = enabled
	}
}

// Patcher owns one executable image and walks it through load, version
// detection, theme detection and patching.
//
// A Patcher is not safe for concurrent use; callers serialize operations.
type Patcher struct {
	store    adapter.ImageStore
	registry *Registry
	maxSize  int64
	backup   bool

	state   m.SessionState
	path    m.Path
	image   *Image
	release m.Release
	theme   m.ThemeKind
}

// NewPatcher constructs an unbound Patcher.
func NewPatcher(store adapter.ImageStore, registry *Registry, options ...PatcherOption) *Patcher {
	p := &Patcher{
		store:    store,
		registry: registry,
		maxSize:  DefaultMaxImageSize,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// State returns the current session state.
func (p *Patcher) State() m.SessionState { return p.state }

// Path returns the bound executable path.
func (p *Patcher) Path() m.Path { return p.path }

// Release returns the bound release, if any.
func (p *Patcher) Release() m.Release { return p.release }

// Theme returns the last detected or applied theme.
func (p *Patcher) Theme() m.ThemeKind { return p.theme }

// Bind drops any bound image and loads the executable at path. On failure
// the patcher is left unbound.
func (p *Patcher) Bind(ctx context.Context, path m.Path) error {
	p.Reset()

	img, err := LoadImage(ctx, p.store, path, p.maxSize)
	if err != nil {
		return err
	}

	p.image = img
	p.path = path
	p.state = m.StateLoaded

	slog.Info("Bound executable", "path", path, "size", img.Len())

	return nil
}

// DetectVersion resolves the release of the bound image. A miss keeps the
// session loaded and reports ok == false.
func (p *Patcher) DetectVersion() (m.Release, bool, error) {
	if err := p.require("detect version", m.StateLoaded); err != nil {
		return m.Release{}, false, err
	}

	release, ok := DetectVersion(p.image, p.registry)
	if !ok {
		slog.Warn("Unsupported executable", "path", p.path)
		return m.Release{}, false, nil
	}

	p.release = release
	p.state = m.StateVersionKnown

	return release, true, nil
}

// SelectRelease binds a release by label instead of detecting it, so theme
// detection runs against that release's fingerprints.
func (p *Patcher) SelectRelease(label string) (m.Release, error) {
	if err := p.require("select release", m.StateLoaded, m.StateVersionKnown, m.StateReady); err != nil {
		return m.Release{}, err
	}

	release, ok := p.registry.Lookup(label)
	if !ok {
		return m.Release{}, fmt.Errorf("%w: %q", ErrUnknownRelease, label)
	}

	p.release = release
	p.theme = m.ThemeNone
	p.state = m.StateVersionKnown

	slog.Info("Release selected", "release", label, "path", p.path)

	return release, nil
}

// DetectTheme reports the active theme of the bound image.
func (p *Patcher) DetectTheme() (m.ThemeKind, error) {
	if err := p.require("detect theme", m.StateVersionKnown); err != nil {
		return m.ThemeNone, err
	}

	p.theme = DetectTheme(p.image, p.registry, p.release)
	p.state = m.StateReady

	slog.Info("Detected theme", "path", p.path, "release", p.release.Label, "theme", p.theme)

	return p.theme, nil
}

// PlanPatch reports what ApplyPatch would change without writing anything.
func (p *Patcher) PlanPatch(theme m.ThemeKind) (m.PatchResult, error) {
	if err := p.require("plan patch", m.StateReady); err != nil {
		return m.PatchResult{}, err
	}

	return PlanPatch(p.image, p.registry, p.release, theme)
}

// ApplyPatch switches the bound executable to theme and saves it. When theme
// is already active nothing is written. On failure the image and the session
// are left as they were.
func (p *Patcher) ApplyPatch(ctx context.Context, theme m.ThemeKind) (m.PatchResult, error) {
	if err := p.require("apply patch", m.StateReady); err != nil {
		return m.PatchResult{}, err
	}

	plan, err := PlanPatch(p.image, p.registry, p.release, theme)
	if err != nil {
		return m.PatchResult{}, err
	}

	if !plan.Changed {
		p.theme = plan.From
		return plan, nil
	}

	if p.backup {
		created, err := p.store.Backup(ctx, p.path)
		if err != nil {
			slog.Error("Failed to back up executable", "path", p.path, "error", err)
			return m.PatchResult{}, fmt.Errorf("%w: backup %s: %w", ErrIO, p.path, err)
		}

		if created {
			slog.Info("Created backup", "path", p.path+adapter.BackupSuffix)
		}
	}

	result, err := ApplyPatch(p.image, p.registry, p.release, theme)
	if err != nil {
		return m.PatchResult{}, err
	}

	if err := p.image.Save(ctx, p.store, p.path); err != nil {
		if revertErr := p.image.Replace(result.Offset, result.After, result.Before); revertErr != nil {
			slog.Error("Failed to revert in-memory patch", "error", revertErr)
		}

		return m.PatchResult{}, err
	}

	result.Saved = true
	p.theme = result.To

	return result, nil
}

// Reset drops the bound image and release.
func (p *Patcher) Reset() {
	p.image = nil
	p.path = ""
	p.release = m.Release{}
	p.theme = m.ThemeNone
	p.state = m.StateUnbound
}

func (p *Patcher) require(op string, states ...m.SessionState) error {
	for _, s := range states {
		if p.state == s {
			return nil
		}
	}

	slog.Error("Patcher operation rejected", "op", op, "state", p.state)

	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidState, op, p.state)
}
