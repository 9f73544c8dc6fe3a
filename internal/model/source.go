// Package model defines the data structures shared by the darkskin layers.
package model

// Path represents a file system path.
type Path string

// Candidate is an editor executable discovered on disk.
type Candidate struct {
	Path Path
	Size int64
}

// Prefs is the small preferences record persisted between runs.
type Prefs struct {
	LastDirectory Path `yaml:"last_directory,omitempty"`
	LastFile      Path `yaml:"last_file,omitempty"`
}
