package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

// SimpleUI implements UI with plain text written to the cobra command output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Busy prints the label and waits for the work to finish.
func (s *SimpleUI) Busy(ctx context.Context, label string, done <-chan struct{}) {
	if ctx.Err() == nil {
		s.printf("%s...\n", label)
	}

	<-done
}

// DisplayReleases prints the signature registry as a table.
func (s *SimpleUI) DisplayReleases(ctx context.Context, releases []m.ReleaseInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderReleaseTable(releases))

	return nil
}

// DisplayCandidates lists discovered executables.
func (s *SimpleUI) DisplayCandidates(ctx context.Context, candidates []m.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderCandidateTable(candidates))

	return nil
}

// SelectCandidate returns the only candidate; plain output cannot prompt.
func (s *SimpleUI) SelectCandidate(ctx context.Context, candidates []m.Candidate) (m.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return m.Candidate{}, err
	}

	switch len(candidates) {
	case 0:
		return m.Candidate{}, ErrSelectionCancelled
	case 1:
		return candidates[0], nil
	default:
		return m.Candidate{}, ErrAmbiguousSelection
	}
}

// DisplayDetection prints the detected release and theme.
func (s *SimpleUI) DisplayDetection(ctx context.Context, detection m.Detection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("File:    %s\n", detection.Path)

	if !detection.Known {
		s.printf("Release: unsupported\n")
		return nil
	}

	s.printf("Release: %s\n", detection.Release.Label)
	s.printf("Theme:   %s\n", detection.Theme)

	if detection.Theme == m.ThemeNone {
		s.printf("Could not find a theme signature for this release\n")
	}

	return nil
}

// DisplayPatchResult prints the outcome of a patch and the optional preview.
func (s *SimpleUI) DisplayPatchResult(ctx context.Context, result m.PatchResult, preview string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", describePatch(result))

	if preview != "" {
		s.printf("\n%s", preview)
	}

	return nil
}

// DisplayRestore confirms a restored backup.
func (s *SimpleUI) DisplayRestore(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Restored %s from backup\n", path)

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func describePatch(result m.PatchResult) string {
	switch {
	case !result.Changed:
		return fmt.Sprintf("%s already uses the %s theme, nothing to do", result.Release.Label, result.To)
	case result.Saved:
		return fmt.Sprintf("Switched %s from %s to %s at offset 0x%X", result.Release.Label, result.From, result.To, result.Offset)
	default:
		return fmt.Sprintf("Would switch %s from %s to %s at offset 0x%X", result.Release.Label, result.From, result.To, result.Offset)
	}
}

func renderReleaseTable(releases []m.ReleaseInfo) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Release", "Themes", "Pattern bytes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, info := range releases {
		themes := make([]string, 0, len(info.Themes))
		for _, kind := range info.Themes {
			themes = append(themes, kind.String())
		}

		table.Append([]string{info.Release.Label, strings.Join(themes, ", "), fmt.Sprintf("%d", info.PatternLength)})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Releases %d", len(releases)), "", ""})
	table.Render()

	return tableBuffer.String()
}

func renderCandidateTable(candidates []m.Candidate) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Path", "Size"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for i, c := range candidates {
		table.Append([]string{fmt.Sprintf("%d", i+1), string(c.Path), formatSize(c.Size)})
	}

	table.Render()

	return tableBuffer.String()
}

func formatSize(size int64) string {
	const unit = 1024

	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
