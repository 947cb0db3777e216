package generator

import (
	"strings"

	"github.com/gork-labs/bdd2doc/internal/bdd"
)

const (
	useCaseMarker    = "?"
	limitationMarker = "!"
)

// Code lines containing any of these are left out of snippets.
var skippedCodeMarkers = []string{
	"//#skip#",
	"done()",
	"expect(",
}

// applyStatement attaches the use case or limitation declared by an it
// block to target. Blocks with neither marker are ignored.
func applyStatement(block *bdd.Block, target annotated) bool {
	switch {
	case strings.HasPrefix(block.Contents, limitationMarker):
		target.addLimitation(extractAnnotation(block))
	case strings.HasPrefix(block.Contents, useCaseMarker):
		target.addUseCase(extractAnnotation(block))
	default:
		return false
	}
	return true
}

func extractAnnotation(block *bdd.Block) *Annotation {
	return &Annotation{
		Title:       block.Contents[1:],
		Description: describe(block),
		Code:        cleanCode(block.Code),
	}
}

// describe joins the trimmed, non-empty comment lines of a block.
func describe(block *bdd.Block) string {
	lines := make([]string, 0, len(block.Comments))
	for _, c := range block.Comments {
		if c = strings.TrimSpace(c); c != "" {
			lines = append(lines, c)
		}
	}
	return strings.Join(lines, "\n")
}

func cleanCode(code string) string {
	rows := strings.Split(code, "\n")
	kept := rows[:0]
	for _, r := range rows {
		if !isSkippedRow(r) {
			kept = append(kept, r)
		}
	}
	return strings.Join(kept, "\n")
}

func isSkippedRow(row string) bool {
	for _, marker := range skippedCodeMarkers {
		if strings.Contains(row, marker) {
			return true
		}
	}
	return false
}
