// Package adapter contains the infrastructure adapters used by the darkskin
// domain layer: disk access for executable images, executable discovery and
// preferences persistence.
package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

// BackupSuffix is appended to an executable path to name its backup copy.
const BackupSuffix = ".bak"

// ErrFileTooLarge is returned by ReadFile when the file exceeds the limit.
var ErrFileTooLarge = errors.New("file exceeds size limit")

// ImageStore abstracts the disk operations the patch engine relies on. It
// hides direct `os` access so the domain can be tested without touching the
// real executable.
type ImageStore interface {
	// ReadFile loads the whole file. Files larger than limit bytes fail with
	// ErrFileTooLarge before their contents are buffered. A limit <= 0
	// disables the check.
	ReadFile(ctx context.Context, path m.Path, limit int64) ([]byte, error)

	// WriteFileAtomic replaces path with content. The original file is never
	// left half-written: content goes to a temporary sibling that is renamed
	// over path once fully flushed.
	WriteFileAtomic(ctx context.Context, path m.Path, content []byte) error

	// Backup copies path to path+BackupSuffix unless a backup already exists.
	// It reports whether a new backup was written.
	Backup(ctx context.Context, path m.Path) (bool, error)

	// Restore copies path+BackupSuffix back over path.
	Restore(ctx context.Context, path m.Path) error

	// FileInfo returns metadata for a path.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)
}

// LocalImageStore is the ImageStore backed by the local filesystem.
type LocalImageStore struct{}

// NewLocalImageStore constructs a LocalImageStore.
func NewLocalImageStore() *LocalImageStore {
	return &LocalImageStore{}
}

// ReadFile loads file contents from disk, enforcing the size limit.
func (a *LocalImageStore) ReadFile(ctx context.Context, path m.Path, limit int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path is the executable chosen by the user
	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	if limit > 0 && info.Size() > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, path, info.Size(), limit)
	}

	var r io.Reader = f
	if limit > 0 {
		// The file may grow between Stat and Read.
		r = io.LimitReader(f, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s grew past limit %d", ErrFileTooLarge, path, limit)
	}

	return data, nil
}

// WriteFileAtomic writes content to a temporary file next to path and renames
// it over path, keeping the permissions of the file being replaced.
func (a *LocalImageStore) WriteFileAtomic(ctx context.Context, path m.Path, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return atomic.WriteFile(string(path), bytes.NewReader(content))
}

// Backup copies the executable to its backup path once.
func (a *LocalImageStore) Backup(ctx context.Context, path m.Path) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	backupPath := string(path) + BackupSuffix
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	info, err := os.Stat(string(path))
	if err != nil {
		return false, err
	}

	if err := a.copyFile(string(path), backupPath, info.Mode().Perm()); err != nil {
		return false, err
	}

	return true, nil
}

// Restore copies the backup over the executable.
func (a *LocalImageStore) Restore(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	backupPath := string(path) + BackupSuffix

	info, err := os.Stat(backupPath)
	if err != nil {
		return err
	}

	tmpPath := string(path) + ".restore"
	if err := a.copyFile(backupPath, tmpPath, info.Mode().Perm()); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := atomic.ReplaceFile(tmpPath, string(path)); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalImageStore) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// copyFile copies a single file.
func (a *LocalImageStore) copyFile(src, dst string, mode os.FileMode) error {
	// #nosec G304 - src is the user's executable or its backup
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	// #nosec G304 - dst is derived from src
	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}

	if err := destFile.Sync(); err != nil {
		_ = destFile.Close()
		return err
	}

	return destFile.Close()
}
