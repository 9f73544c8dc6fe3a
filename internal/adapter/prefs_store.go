package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

// PrefsStore persists the preferences record between runs.
type PrefsStore interface {
	LoadPrefs(ctx context.Context) (m.Prefs, error)
	SavePrefs(ctx context.Context, prefs m.Prefs) error
}

// YAMLPrefsStore keeps preferences in a YAML file.
type YAMLPrefsStore struct {
	path m.Path
}

// NewYAMLPrefsStore constructs a YAMLPrefsStore writing to path.
func NewYAMLPrefsStore(path m.Path) *YAMLPrefsStore {
	return &YAMLPrefsStore{path: path}
}

// LoadPrefs reads the preferences file. A missing file yields empty prefs.
func (s *YAMLPrefsStore) LoadPrefs(ctx context.Context) (m.Prefs, error) {
	if err := ctx.Err(); err != nil {
		return m.Prefs{}, err
	}

	data, err := os.ReadFile(string(s.path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m.Prefs{}, nil
		}

		return m.Prefs{}, err
	}

	var prefs m.Prefs
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return m.Prefs{}, fmt.Errorf("parse %s: %w", s.path, err)
	}

	return prefs, nil
}

// SavePrefs writes the preferences file, creating its directory if needed.
func (s *YAMLPrefsStore) SavePrefs(ctx context.Context, prefs m.Prefs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(string(s.path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}

	return os.WriteFile(string(s.path), data, 0o600)
}
