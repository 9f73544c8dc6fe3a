// Package controller provides the user-facing front ends for darkskin.
package controller

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

var (
	// ErrAmbiguousSelection is returned when several candidates exist and the
	// front end cannot ask the user to pick one.
	ErrAmbiguousSelection = errors.New("several executables found, pass one explicitly")
	// ErrSelectionCancelled is returned when the user leaves the picker.
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// UI defines how workflow progress and results reach the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Busy blocks until done is closed, showing label as progress.
	Busy(ctx context.Context, label string, done <-chan struct{})
	DisplayReleases(ctx context.Context, releases []m.ReleaseInfo) error
	DisplayCandidates(ctx context.Context, candidates []m.Candidate) error
	SelectCandidate(ctx context.Context, candidates []m.Candidate) (m.Candidate, error)
	DisplayDetection(ctx context.Context, detection m.Detection) error
	DisplayPatchResult(ctx context.Context, result m.PatchResult, preview string) error
	DisplayRestore(ctx context.Context, path m.Path) error
}

// NewUI picks the interactive TUI on terminals and plain output otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
