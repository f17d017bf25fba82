package diagnostic

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// SuggestName suggests the closest valid name for an unknown one.
// It uses Levenshtein distance and returns "" when nothing is close.
func SuggestName(unknown string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}

	minDistance := -1
	var bestMatch string
	for _, name := range valid {
		dist := levenshtein.Distance(strings.ToLower(unknown), strings.ToLower(name), nil)
		if minDistance < 0 || dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	// Only suggest if the distance is reasonable (< 5 edits)
	if minDistance < 5 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}
