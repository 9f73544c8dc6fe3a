package model

// Detection is the outcome of inspecting one executable.
type Detection struct {
	Path    Path
	Release Release
	Known   bool // false when no registered version fingerprint matched
	Theme   ThemeKind
}

// PatchResult describes a theme switch applied to an image.
type PatchResult struct {
	Release Release
	From    ThemeKind
	To      ThemeKind
	Offset  int
	Before  []byte
	After   []byte
	Changed bool // false when the requested theme was already active
	Saved   bool
}

// ReleaseInfo summarizes one registry entry for display.
type ReleaseInfo struct {
	Release        Release
	Themes         []ThemeKind
	PatternLength  int
	VersionPattern string
}
