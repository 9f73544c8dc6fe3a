package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"darkskin.dev/pkg/darkskin/internal/adapter"
	m "darkskin.dev/pkg/darkskin/internal/model"
)

// DefaultMaxImageSize is the default ceiling for loaded executables.
const DefaultMaxImageSize int64 = 512 << 20

// Image is the in-memory, mutable content of one executable.
type Image struct {
	data []byte
}

// NewImage wraps data without copying it.
func NewImage(data []byte) *Image {
	return &Image{data: data}
}

// LoadImage reads the executable at path. Files larger than maxSize bytes
// are rejected with ErrImageTooLarge; maxSize <= 0 disables the ceiling.
func LoadImage(ctx context.Context, store adapter.ImageStore, path m.Path, maxSize int64) (*Image, error) {
	data, err := store.ReadFile(ctx, path, maxSize)
	if err != nil {
		slog.Error("Failed to load image", "path", path, "maxSize", maxSize, "error", err)

		if errors.Is(err, adapter.ErrFileTooLarge) {
			return nil, fmt.Errorf("%w: %w: %w", ErrIO, ErrImageTooLarge, err)
		}

		return nil, fmt.Errorf("%w: load %s: %w", ErrIO, path, err)
	}

	slog.Debug("Loaded image", "path", path, "size", len(data))

	return NewImage(data), nil
}

// Len returns the image size in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Bytes returns a copy of the image content.
func (img *Image) Bytes() []byte {
	return bytes.Clone(img.data)
}

// FindFirst returns the lowest offset >= from at which pattern occurs.
func (img *Image) FindFirst(pattern []byte, from int) (int, bool) {
	if len(pattern) == 0 || from < 0 || from > len(img.data)-len(pattern) {
		return 0, false
	}

	idx := bytes.Index(img.data[from:], pattern)
	if idx < 0 {
		return 0, false
	}

	return from + idx, true
}

// Replace overwrites len(pattern) bytes at offset with replacement. Length
// changes and out-of-bounds ranges fail with ErrRange and leave the image
// untouched.
func (img *Image) Replace(at int, pattern, replacement []byte) error {
	if len(replacement) != len(pattern) {
		return fmt.Errorf("%w: replacement is %d bytes, pattern is %d", ErrRange, len(replacement), len(pattern))
	}

	if at < 0 || at > len(img.data)-len(pattern) {
		return fmt.Errorf("%w: [%d, %d) outside image of %d bytes", ErrRange, at, at+len(pattern), len(img.data))
	}

	copy(img.data[at:at+len(pattern)], replacement)

	return nil
}

// Save writes the image back to path atomically.
func (img *Image) Save(ctx context.Context, store adapter.ImageStore, path m.Path) error {
	if err := store.WriteFileAtomic(ctx, path, img.data); err != nil {
		slog.Error("Failed to save image", "path", path, "error", err)
		return fmt.Errorf("%w: save %s: %w", ErrIO, path, err)
	}

	slog.Debug("Saved image", "path", path, "size", len(img.data))

	return nil
}

// slice returns a copy of n bytes at offset.
func (img *Image) slice(at, n int) []byte {
	return bytes.Clone(img.data[at : at+n])
}
