package adapter

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

// FileFinder discovers editor executables under one or more directory roots.
type FileFinder interface {
	// Find walks every root and streams files whose base name matches
	// fileName (case-insensitive). Both channels are closed once all roots
	// are walked; at most one error is delivered.
	Find(ctx context.Context, roots []m.Path, fileName string, threads int) (<-chan m.Candidate, <-chan error)
}

// LocalFileFinder walks the local filesystem.
type LocalFileFinder struct{}

// NewLocalFileFinder constructs a LocalFileFinder.
func NewLocalFileFinder() *LocalFileFinder {
	return &LocalFileFinder{}
}

// Find implements FileFinder.
func (a *LocalFileFinder) Find(ctx context.Context, roots []m.Path, fileName string, threads int) (<-chan m.Candidate, <-chan error) {
	candidates := make(chan m.Candidate)
	errs := make(chan error, 1)

	go func() {
		defer close(candidates)
		defer close(errs)

		group, groupCtx := errgroup.WithContext(ctx)
		if threads > 0 {
			group.SetLimit(threads)
		}

		for _, root := range roots {
			group.Go(func() error {
				return a.walkRoot(groupCtx, root, fileName, candidates)
			})
		}

		if err := group.Wait(); err != nil {
			errs <- err
		}
	}()

	return candidates, errs
}

func (a *LocalFileFinder) walkRoot(ctx context.Context, root m.Path, fileName string, out chan<- m.Candidate) error {
	rootStr := string(root)

	return filepath.WalkDir(rootStr, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == rootStr {
				return err
			}

			// Unreadable subdirectories are common under install roots.
			slog.Debug("skipping unreadable path", "path", path, "error", err)

			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() || !strings.EqualFold(d.Name(), fileName) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}

			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- m.Candidate{Path: m.Path(path), Size: info.Size()}:
		}

		return nil
	})
}
