package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"darkskin.dev/pkg/darkskin/internal/domain"
	domainmocks "darkskin.dev/pkg/darkskin/internal/domain/mocks"
	m "darkskin.dev/pkg/darkskin/internal/model"
)

func withMockWorkflow(t *testing.T, sub *cobra.Command) (*cobra.Command, *domainmocks.MockWorkflow) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(sub)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	return cmd, mockWorkflow
}

func TestFindCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow := withMockWorkflow(t, newFindCmd())

	mockWorkflow.On("Find", mock.Anything, mock.MatchedBy(func(args domain.FindArgs) bool {
		return args.Root == "" &&
			args.FileName == "Unity.exe" &&
			args.Threads == defaultSearchParallel
	})).Return(nil)

	cmd.SetArgs([]string{"find"})
	require.NoError(t, cmd.Execute())
}

func TestFindCmd_DirAndFlags(t *testing.T) {
	cmd, mockWorkflow := withMockWorkflow(t, newFindCmd())

	mockWorkflow.On("Find", mock.Anything, mock.MatchedBy(func(args domain.FindArgs) bool {
		return args.Root == m.Path("/opt/unity") &&
			args.FileName == "Unity" &&
			args.Threads == 8
	})).Return(nil)

	cmd.SetArgs([]string{"find", "/opt/unity", "-p", "8", "--file-name", "Unity"})
	require.NoError(t, cmd.Execute())
}

func TestFindCmd_ParallelFlagDefault(t *testing.T) {
	flag := findCmd.Flags().Lookup(parallelFlagName)
	require.NotNil(t, flag)

	assert.Equal(t, "4", flag.DefValue)
	assert.Equal(t, "4", newFindCmd().Flags().Lookup(parallelFlagName).DefValue)
}

func TestFindCmd_TooManyArgs(t *testing.T) {
	cmd, _ := withMockWorkflow(t, newFindCmd())

	cmd.SetArgs([]string{"find", "/a", "/b"})
	require.Error(t, cmd.Execute())
}

func TestDetectCmd(t *testing.T) {
	cmd, mockWorkflow := withMockWorkflow(t, newDetectCmd())

	mockWorkflow.On("Detect", mock.Anything, domain.DetectArgs{Path: "/opt/Unity.exe", Release: "2019.4.40f1"}).Return(nil)

	cmd.SetArgs([]string{"detect", "/opt/Unity.exe", "--release", "2019.4.40f1"})
	require.NoError(t, cmd.Execute())
}

func TestDetectCmd_LastFile(t *testing.T) {
	cmd, mockWorkflow := withMockWorkflow(t, newDetectCmd())

	mockWorkflow.On("Detect", mock.Anything, domain.DetectArgs{}).Return(nil)

	cmd.SetArgs([]string{"detect"})
	require.NoError(t, cmd.Execute())
}

func TestDetectCmd_PropagatesError(t *testing.T) {
	cmd, mockWorkflow := withMockWorkflow(t, newDetectCmd())

	mockWorkflow.On("Detect", mock.Anything, mock.Anything).Return(domain.ErrUnsupportedFile)

	cmd.SetArgs([]string{"detect", "notepad.exe"})
	require.ErrorIs(t, cmd.Execute(), domain.ErrUnsupportedFile)
}

func TestPatchCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.PatchArgs
	}{
		{
			name: "dark on last file",
			args: []string{"patch", "dark"},
			want: domain.PatchArgs{Theme: m.ThemeDark},
		},
		{
			name: "light on explicit file",
			args: []string{"patch", "Light", "/opt/Unity.exe"},
			want: domain.PatchArgs{DetectArgs: domain.DetectArgs{Path: "/opt/Unity.exe"}, Theme: m.ThemeLight},
		},
		{
			name: "dry run with release",
			args: []string{"patch", "dark", "--dry-run", "--release", "2020.3.48f1"},
			want: domain.PatchArgs{DetectArgs: domain.DetectArgs{Release: "2020.3.48f1"}, Theme: m.ThemeDark, DryRun: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow := withMockWorkflow(t, newPatchCmd())

			mockWorkflow.On("Patch", mock.Anything, tt.want).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestPatchCmd_InvalidTheme(t *testing.T) {
	cmd, mockWorkflow := withMockWorkflow(t, newPatchCmd())

	cmd.SetArgs([]string{"patch", "blue"})
	err := cmd.Execute()
	require.ErrorIs(t, err, domain.ErrUnsupportedTheme)

	mockWorkflow.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything)
}

func TestPatchCmd_MissingTheme(t *testing.T) {
	cmd, _ := withMockWorkflow(t, newPatchCmd())

	cmd.SetArgs([]string{"patch"})
	require.Error(t, cmd.Execute())
}

func TestRestoreCmd(t *testing.T) {
	cmd, mockWorkflow := withMockWorkflow(t, newRestoreCmd())

	mockWorkflow.On("Restore", mock.Anything, domain.RestoreArgs{Path: "/opt/Unity.exe"}).Return(nil)

	cmd.SetArgs([]string{"restore", "/opt/Unity.exe"})
	require.NoError(t, cmd.Execute())
}

func TestReleasesCmd(t *testing.T) {
	cmd, mockWorkflow := withMockWorkflow(t, newReleasesCmd())

	mockWorkflow.On("Releases", mock.Anything).Return(nil)

	cmd.SetArgs([]string{"releases"})
	require.NoError(t, cmd.Execute())
}

func TestReleasesCmd_RejectsArgs(t *testing.T) {
	cmd, mockWorkflow := withMockWorkflow(t, newReleasesCmd())

	cmd.SetArgs([]string{"releases", "extra"})
	require.Error(t, cmd.Execute())
	assert.Empty(t, mockWorkflow.Calls)
}
