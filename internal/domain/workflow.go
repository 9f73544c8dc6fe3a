package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"darkskin.dev/pkg/darkskin/internal/adapter"
	"darkskin.dev/pkg/darkskin/internal/controller"
	m "darkskin.dev/pkg/darkskin/internal/model"
)

// FindArgs contains the arguments for searching editor executables.
type FindArgs struct {
	Root        m.Path // empty: last used directory, then DefaultRoot
	DefaultRoot m.Path
	FileName    string
	Threads     int
}

// DetectArgs contains the arguments for inspecting one executable.
type DetectArgs struct {
	Path    m.Path // empty: last selected executable
	Release string // optional release label overriding detection
}

// PatchArgs contains the arguments for switching the theme of an executable.
type PatchArgs struct {
	DetectArgs
	Theme  m.ThemeKind
	DryRun bool
}

// RestoreArgs contains the arguments for restoring a backup.
type RestoreArgs struct {
	Path m.Path
}

// Workflow defines the user-level operations of darkskin.
type Workflow interface {
	Find(ctx context.Context, args FindArgs) error
	Detect(ctx context.Context, args DetectArgs) error
	Patch(ctx context.Context, args PatchArgs) error
	Restore(ctx context.Context, args RestoreArgs) error
	Releases(ctx context.Context) error
}

type workflow struct {
	adapter.ImageStore
	adapter.FileFinder
	adapter.PrefsStore
	controller.UI
	registry *Registry
	options  []PatcherOption
}

// NewWorkflow creates a Workflow with the provided dependencies. Options are
// applied to every Patcher the workflow creates.
func NewWorkflow(
	store adapter.ImageStore,
	finder adapter.FileFinder,
	prefs adapter.PrefsStore,
	ui controller.UI,
	registry *Registry,
	options ...PatcherOption,
) Workflow {
	return &workflow{
		ImageStore: store,
		FileFinder: finder,
		PrefsStore: prefs,
		UI:         ui,
		registry:   registry,
		options:    options,
	}
}

// Find searches a directory for editor executables, asks the user to pick
// one and remembers both the directory and the selection.
func (w *workflow) Find(ctx context.Context, args FindArgs) error {
	prefs := w.loadPrefs(ctx)

	root := args.Root
	if root == "" {
		root = prefs.LastDirectory
	}

	if root == "" {
		root = args.DefaultRoot
	}

	if root == "" {
		return fmt.Errorf("%w: no search directory", ErrNoTarget)
	}

	var candidates []m.Candidate

	err := w.background(ctx, fmt.Sprintf("Searching %s", root), func(ctx context.Context) error {
		found, err := w.collectCandidates(ctx, root, args)
		candidates = found

		return err
	})
	if err != nil {
		slog.Error("Failed to search executables", "root", root, "error", err)
		return fmt.Errorf("search %s: %w", root, err)
	}

	prefs.LastDirectory = root

	if len(candidates) == 0 {
		w.savePrefs(ctx, prefs)
		return fmt.Errorf("%w: no %s under %s, try another directory", ErrNoCandidates, args.FileName, root)
	}

	if err := w.DisplayCandidates(ctx, candidates); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	chosen, err := w.SelectCandidate(ctx, candidates)
	if err != nil {
		w.savePrefs(ctx, prefs)
		return fmt.Errorf("select: %w", err)
	}

	prefs.LastFile = chosen.Path
	w.savePrefs(ctx, prefs)

	return w.Detect(ctx, DetectArgs{Path: chosen.Path})
}

func (w *workflow) collectCandidates(ctx context.Context, root m.Path, args FindArgs) ([]m.Candidate, error) {
	candidateChannel, errorChannel := w.FileFinder.Find(ctx, []m.Path{root}, args.FileName, args.Threads)

	var candidates []m.Candidate
	for c := range candidateChannel {
		candidates = append(candidates, c)
	}

	var err error
	for e := range errorChannel {
		err = errors.Join(err, e)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Path < candidates[j].Path
	})

	return candidates, err
}

// Detect loads an executable and reports its release and active theme. A
// known release without a recognized theme region fails with
// ErrNoActiveSignature after it has been displayed.
func (w *workflow) Detect(ctx context.Context, args DetectArgs) error {
	detection, _, err := w.inspect(ctx, args)
	if err != nil && !errors.Is(err, ErrUnsupportedFile) {
		return err
	}

	if displayErr := w.DisplayDetection(ctx, detection); displayErr != nil {
		return fmt.Errorf("display: %w", displayErr)
	}

	if err == nil && detection.Theme == m.ThemeNone {
		return fmt.Errorf("%w: release %s at %s", ErrNoActiveSignature, detection.Release.Label, detection.Path)
	}

	return err
}

// Patch switches the theme of an executable, or previews it on dry runs.
func (w *workflow) Patch(ctx context.Context, args PatchArgs) error {
	detection, patcher, err := w.inspect(ctx, args.DetectArgs)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFile) {
			_ = w.DisplayDetection(ctx, detection)
		}

		return err
	}

	var result m.PatchResult

	label := fmt.Sprintf("Switching to %s theme", args.Theme)
	if args.DryRun {
		label = fmt.Sprintf("Planning %s theme", args.Theme)
	}

	err = w.background(ctx, label, func(ctx context.Context) error {
		var patchErr error
		if args.DryRun {
			result, patchErr = patcher.PlanPatch(args.Theme)
		} else {
			result, patchErr = patcher.ApplyPatch(ctx, args.Theme)
		}

		return patchErr
	})
	if err != nil {
		return fmt.Errorf("patch %s: %w", detection.Path, err)
	}

	preview, err := PatchPreview(result, detection.Path)
	if err != nil {
		slog.Warn("Failed to render patch preview", "error", err)
	}

	if err := w.DisplayPatchResult(ctx, result, preview); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

// Restore copies the backup of an executable back over it.
func (w *workflow) Restore(ctx context.Context, args RestoreArgs) error {
	prefs := w.loadPrefs(ctx)

	path, err := w.resolveTarget(args.Path, prefs)
	if err != nil {
		return err
	}

	backup := path + adapter.BackupSuffix
	if _, err := w.FileInfo(ctx, backup); err != nil {
		slog.Error("Backup not found", "path", backup, "error", err)
		return fmt.Errorf("%w: no backup at %s: %w", ErrIO, backup, err)
	}

	err = w.background(ctx, "Restoring backup", func(ctx context.Context) error {
		return w.ImageStore.Restore(ctx, path)
	})
	if err != nil {
		slog.Error("Failed to restore backup", "path", path, "error", err)
		return fmt.Errorf("%w: restore %s: %w", ErrIO, path, err)
	}

	return w.DisplayRestore(ctx, path)
}

// Releases displays the signature registry.
func (w *workflow) Releases(ctx context.Context) error {
	releases := w.registry.Releases()
	infos := make([]m.ReleaseInfo, 0, len(releases))

	for _, release := range releases {
		info := m.ReleaseInfo{
			Release:        release,
			Themes:         w.registry.Themes(release),
			VersionPattern: FormatPattern(release.Version),
		}

		for _, fp := range w.registry.Fingerprints(release) {
			info.PatternLength = len(fp.Pattern)
			break
		}

		infos = append(infos, info)
	}

	return w.DisplayReleases(ctx, infos)
}

// inspect binds a new patcher to the target and runs version and theme
// detection on a worker goroutine.
func (w *workflow) inspect(ctx context.Context, args DetectArgs) (m.Detection, *Patcher, error) {
	prefs := w.loadPrefs(ctx)

	path, err := w.resolveTarget(args.Path, prefs)
	if err != nil {
		return m.Detection{}, nil, err
	}

	patcher := NewPatcher(w.ImageStore, w.registry, w.options...)
	detection := m.Detection{Path: path}

	err = w.background(ctx, fmt.Sprintf("Inspecting %s", path), func(ctx context.Context) error {
		if err := patcher.Bind(ctx, path); err != nil {
			return err
		}

		if args.Release != "" {
			if _, err := patcher.SelectRelease(args.Release); err != nil {
				return err
			}
		} else {
			if _, ok, err := patcher.DetectVersion(); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
			}
		}

		_, err := patcher.DetectTheme()

		return err
	})

	detection.Release = patcher.Release()
	detection.Known = patcher.State() >= m.StateVersionKnown
	detection.Theme = patcher.Theme()

	if err != nil {
		return detection, nil, err
	}

	prefs.LastFile = path
	w.savePrefs(ctx, prefs)

	return detection, patcher, nil
}

// background runs fn on a worker goroutine while the UI shows progress, and
// hands the outcome back once both have finished.
func (w *workflow) background(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	done := make(chan struct{})

	var group errgroup.Group

	group.Go(func() error {
		defer close(done)
		return fn(ctx)
	})

	w.Busy(ctx, label, done)

	return group.Wait()
}

func (w *workflow) resolveTarget(path m.Path, prefs m.Prefs) (m.Path, error) {
	if path != "" {
		return path, nil
	}

	if prefs.LastFile != "" {
		return prefs.LastFile, nil
	}

	return "", fmt.Errorf("%w: pass a path or run find first", ErrNoTarget)
}

func (w *workflow) loadPrefs(ctx context.Context) m.Prefs {
	prefs, err := w.LoadPrefs(ctx)
	if err != nil {
		slog.Warn("Failed to load preferences, using defaults", "error", err)
		return m.Prefs{}
	}

	return prefs
}

func (w *workflow) savePrefs(ctx context.Context, prefs m.Prefs) {
	if err := w.SavePrefs(ctx, prefs); err != nil {
		slog.Warn("Failed to save preferences", "error", err)
	}
}
