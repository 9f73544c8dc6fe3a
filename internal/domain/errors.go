package domain

import "errors"

var (
	// ErrIO reports a failure to load or save an executable image.
	ErrIO = errors.New("image i/o failed")
	// ErrImageTooLarge reports an image above the configured size ceiling.
	// It always wraps ErrIO.
	ErrImageTooLarge = errors.New("image exceeds size limit")
	// ErrRange reports an out-of-bounds or length-changing replacement.
	ErrRange = errors.New("replacement out of range")
	// ErrUnsupportedTheme reports a theme the release has no fingerprint for.
	ErrUnsupportedTheme = errors.New("theme not supported for release")
	// ErrNoActiveSignature reports an image whose theme region is unrecognized.
	ErrNoActiveSignature = errors.New("no known theme signature found")
	// ErrInvalidState reports an operation invoked outside its valid session state.
	ErrInvalidState = errors.New("invalid patcher state")
	// ErrUnknownRelease reports a release label missing from the registry.
	ErrUnknownRelease = errors.New("unknown release")
	// ErrInvalidRegistry reports a malformed signature registry.
	ErrInvalidRegistry = errors.New("invalid signature registry")
	// ErrUnsupportedFile reports an executable that matches no registered release.
	ErrUnsupportedFile = errors.New("unsupported editor version")
	// ErrNoTarget reports that no executable path was given or remembered.
	ErrNoTarget = errors.New("no executable selected")
	// ErrNoCandidates reports a search that found no editor executables.
	ErrNoCandidates = errors.New("no editor executable found")
)
