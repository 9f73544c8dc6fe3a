package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

const pickerHeight = 14

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Faint(true).Width(9)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lightBadge   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("235")).Background(lipgloss.Color("252"))
	darkBadge    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	noneBadge    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("214")).Faint(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
)

// TUI implements UI using Bubble Tea for progress and selection.
type TUI struct {
	cmd    *cobra.Command
	output io.Writer
	input  io.Reader
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{
		cmd:    cmd,
		output: cmd.OutOrStdout(),
		input:  cmd.InOrStdin(),
	}
}

// Busy shows a spinner until done is closed. The work itself runs on the
// caller's goroutine; leaving the spinner early does not interrupt it.
func (t *TUI) Busy(ctx context.Context, label string, done <-chan struct{}) {
	if ctx.Err() != nil {
		<-done
		return
	}

	program := tea.NewProgram(newBusyModel(label, done), tea.WithOutput(t.output), tea.WithInput(t.input), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		slog.Debug("spinner stopped", "error", err)
	}

	<-done
}

// DisplayReleases renders the registry table inside a frame.
func (t *TUI) DisplayReleases(ctx context.Context, releases []m.ReleaseInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(t.output, boxStyle.Render(titleStyle.Render("Known editor releases")+"\n"+strings.TrimRight(renderReleaseTable(releases), "\n")))

	return err
}

// DisplayCandidates renders discovered executables.
func (t *TUI) DisplayCandidates(ctx context.Context, candidates []m.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	header := titleStyle.Render(fmt.Sprintf("Found %d editor executable(s)", len(candidates)))
	_, err := fmt.Fprintln(t.output, header)

	return err
}

// SelectCandidate lets the user pick one executable from a list.
func (t *TUI) SelectCandidate(ctx context.Context, candidates []m.Candidate) (m.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return m.Candidate{}, err
	}

	switch len(candidates) {
	case 0:
		return m.Candidate{}, ErrSelectionCancelled
	case 1:
		return candidates[0], nil
	}

	model := newPickerModel(candidates)

	final, err := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithInput(t.input), tea.WithContext(ctx)).Run()
	if err != nil {
		return m.Candidate{}, err
	}

	picked, ok := final.(pickerModel)
	if !ok || !picked.selected {
		return m.Candidate{}, ErrSelectionCancelled
	}

	return picked.chosen, nil
}

// DisplayDetection renders the detected release and a theme badge.
func (t *TUI) DisplayDetection(ctx context.Context, detection m.Detection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString(labelStyle.Render("File") + valueStyle.Render(string(detection.Path)) + "\n")

	if !detection.Known {
		b.WriteString(labelStyle.Render("Release") + warnStyle.Render("unsupported"))
	} else {
		b.WriteString(labelStyle.Render("Release") + valueStyle.Render(detection.Release.Label) + "\n")
		b.WriteString(labelStyle.Render("Theme") + themeBadge(detection.Theme))

		if detection.Theme == m.ThemeNone {
			b.WriteString("\n" + warnStyle.Render("Could not find a theme signature for this release"))
		}
	}

	_, err := fmt.Fprintln(t.output, boxStyle.Render(b.String()))

	return err
}

// DisplayPatchResult renders the patch outcome and the optional preview.
func (t *TUI) DisplayPatchResult(ctx context.Context, result m.PatchResult, preview string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line := describePatch(result)
	if result.Saved {
		line = successStyle.Render(line)
	}

	var b strings.Builder

	b.WriteString(themeBadge(result.From) + " → " + themeBadge(result.To) + "\n" + line)

	if preview != "" {
		b.WriteString("\n\n" + strings.TrimRight(preview, "\n"))
	}

	_, err := fmt.Fprintln(t.output, boxStyle.Render(b.String()))

	return err
}

// DisplayRestore confirms a restored backup.
func (t *TUI) DisplayRestore(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(t.output, successStyle.Render(fmt.Sprintf("Restored %s from backup", path)))

	return err
}

func themeBadge(kind m.ThemeKind) string {
	switch kind {
	case m.ThemeLight:
		return lightBadge.Render("light")
	case m.ThemeDark:
		return darkBadge.Render("dark")
	default:
		return noneBadge.Render("none")
	}
}

// workDoneMsg is delivered once the background work has finished.
type workDoneMsg struct{}

func waitForDone(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return workDoneMsg{}
	}
}

// busyModel shows a spinner next to a label until the work is done.
type busyModel struct {
	label   string
	done    <-chan struct{}
	spinner spinner.Model
}

func newBusyModel(label string, done <-chan struct{}) busyModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return busyModel{label: label, done: done, spinner: s}
}

func (bm busyModel) Init() tea.Cmd {
	return tea.Batch(bm.spinner.Tick, waitForDone(bm.done))
}

func (bm busyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		return bm, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return bm, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		bm.spinner, cmd = bm.spinner.Update(msg)

		return bm, cmd
	}

	return bm, nil
}

func (bm busyModel) View() string {
	return fmt.Sprintf("%s %s...\n", bm.spinner.View(), bm.label)
}

// candidateItem adapts a candidate to the bubbles list.
type candidateItem struct {
	candidate m.Candidate
}

func (ci candidateItem) Title() string       { return string(ci.candidate.Path) }
func (ci candidateItem) Description() string { return formatSize(ci.candidate.Size) }
func (ci candidateItem) FilterValue() string { return string(ci.candidate.Path) }

// pickerModel lets the user choose one executable.
type pickerModel struct {
	list     list.Model
	chosen   m.Candidate
	selected bool
}

func newPickerModel(candidates []m.Candidate) pickerModel {
	items := make([]list.Item, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, candidateItem{candidate: c})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, pickerHeight)
	l.Title = "Select the editor executable to patch"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)

	return pickerModel{list: l}
}

func (pm pickerModel) Init() tea.Cmd {
	return nil
}

func (pm pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.list.SetSize(msg.Width, min(msg.Height, pickerHeight))
		return pm, nil

	case tea.KeyMsg:
		if pm.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := pm.list.SelectedItem().(candidateItem); ok {
				pm.chosen = item.candidate
				pm.selected = true
			}

			return pm, tea.Quit
		case "ctrl+c", "esc", "q":
			pm.selected = false
			return pm, tea.Quit
		}
	}

	var cmd tea.Cmd
	pm.list, cmd = pm.list.Update(msg)

	return pm, cmd
}

func (pm pickerModel) View() string {
	return pm.list.View()
}
