package domain

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	m "darkskin.dev/pkg/darkskin/internal/model"
)

const previewRowWidth = 16

// PatchPreview renders the patched region as a unified diff of hex rows.
// It returns an empty string when the result changes nothing.
func PatchPreview(result m.PatchResult, path m.Path) (string, error) {
	if !result.Changed {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        hexRows(result.Before, result.Offset),
		B:        hexRows(result.After, result.Offset),
		FromFile: fmt.Sprintf("%s (%s)", path, result.From),
		ToFile:   fmt.Sprintf("%s (%s)", path, result.To),
		Context:  1,
	}

	return difflib.GetUnifiedDiffString(diff)
}

func hexRows(data []byte, base int) []string {
	var rows []string

	for start := 0; start < len(data); start += previewRowWidth {
		end := min(start+previewRowWidth, len(data))

		var b strings.Builder

		fmt.Fprintf(&b, "%08x ", base+start)

		for _, c := range data[start:end] {
			fmt.Fprintf(&b, " %02x", c)
		}

		b.WriteString("\n")
		rows = append(rows, b.String())
	}

	return rows
}
