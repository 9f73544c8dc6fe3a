package domain

import (
	"fmt"
	"log/slog"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

// PlanPatch resolves what switching img to target would do without touching
// the image. The returned result has Changed set when bytes would be written.
func PlanPatch(img *Image, registry *Registry, release m.Release, target m.ThemeKind) (m.PatchResult, error) {
	fingerprints := registry.Fingerprints(release)

	targetFP, ok := fingerprints[target]
	if !ok || target == m.ThemeNone {
		slog.Error("Theme not supported", "release", release.Label, "theme", target)
		return m.PatchResult{}, fmt.Errorf("%w: %s has no %s fingerprint", ErrUnsupportedTheme, release.Label, target)
	}

	active, offset := locateTheme(img, fingerprints)
	if active == m.ThemeNone {
		slog.Error("No active theme signature", "release", release.Label)
		return m.PatchResult{}, fmt.Errorf("%w: release %s", ErrNoActiveSignature, release.Label)
	}

	activeFP := fingerprints[active]
	result := m.PatchResult{
		Release: release,
		From:    active,
		To:      target,
		Offset:  offset,
		Before:  img.slice(offset, len(activeFP.Pattern)),
	}

	if active == target {
		result.After = result.Before
		return result, nil
	}

	if len(targetFP.Replacement) != len(activeFP.Pattern) {
		return m.PatchResult{}, fmt.Errorf("%w: %s replacement is %d bytes, active %s pattern is %d",
			ErrRange, target, len(targetFP.Replacement), active, len(activeFP.Pattern))
	}

	result.After = append([]byte(nil), targetFP.Replacement...)
	result.Changed = true

	return result, nil
}

// ApplyPatch switches the theme region of img to target in memory. When the
// active theme already is target the image is left untouched and the result
// reports Changed == false. Persisting the image is up to the caller.
func ApplyPatch(img *Image, registry *Registry, release m.Release, target m.ThemeKind) (m.PatchResult, error) {
	result, err := PlanPatch(img, registry, release, target)
	if err != nil {
		return m.PatchResult{}, err
	}

	if !result.Changed {
		slog.Info("Theme already active", "release", release.Label, "theme", target)
		return result, nil
	}

	if err := img.Replace(result.Offset, result.Before, result.After); err != nil {
		slog.Error("Failed to replace theme region", "offset", result.Offset, "error", err)
		return m.PatchResult{}, err
	}

	slog.Info("Patched theme region", "release", release.Label, "from", result.From, "to", result.To, "offset", result.Offset)

	return result, nil
}
