// Package paste turns raw clipboard text into a task draft: bulleted or
// numbered lines become substeps, everything else becomes the description.
// This is a line-classification heuristic, not a grammar; nested lists are
// not recognized.
package paste

import (
	"regexp"
	"strings"
)

// FallbackTitle is used when the pasted text has no description line.
const FallbackTitle = "New task"

// confirmBreakThreshold: sources with this many line breaks or more need an
// explicit confirmation before a task is created from them.
const confirmBreakThreshold = 3

var listItemPattern = regexp.MustCompile(`^(\d+\.|[-*•])\s+`)

type Draft struct {
	Title       string
	Description string
	Steps       []string
	// NeedsConfirm tells the caller to prompt before applying the draft.
	NeedsConfirm bool
}

// Parse normalizes line endings, splits the text into lines and classifies
// each non-blank line: lines with a leading ordinal or bullet marker become
// steps (markers kept intact), the rest joins into the description. The
// title is the first non-blank description line.
func Parse(raw string) Draft {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	draft := Draft{
		NeedsConfirm: strings.Count(normalized, "\n") >= confirmBreakThreshold,
	}

	descLines := make([]string, 0)
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if listItemPattern.MatchString(line) {
			draft.Steps = append(draft.Steps, line)
			continue
		}
		descLines = append(descLines, line)
	}

	draft.Description = strings.Join(descLines, "\n")
	if len(descLines) > 0 {
		draft.Title = descLines[0]
	} else {
		draft.Title = FallbackTitle
	}
	return draft
}

// IsEmpty reports whether the draft carries nothing worth creating.
func (d Draft) IsEmpty() bool {
	return d.Description == "" && len(d.Steps) == 0
}

// StripMarker removes the leading list marker from a step line so the bare
// text can become a substep.
func StripMarker(step string) string {
	return listItemPattern.ReplaceAllString(step, "")
}
