package taskgen

import (
	"regexp"
	"strings"
)

// MaxBatch caps how many titles a single generation may contribute.
const MaxBatch = 8

var (
	numberingRe = regexp.MustCompile(`^\s*\d+[.)]\s*`)
	bulletRe    = regexp.MustCompile(`^\s*[-*•◦]\s*`)
)

// Normalize turns raw generation output into clean item titles. The service
// promises one candidate per line but guarantees nothing about markers, so
// this strips leading numbering ("1.", "1)") and bullets, trims whitespace,
// drops empty lines, dedupes case-insensitively preserving first occurrence,
// and caps the result at MaxBatch.
func Normalize(raw string) []string {
	seen := make(map[string]bool)
	var titles []string

	for _, line := range strings.Split(raw, "\n") {
		title := numberingRe.ReplaceAllString(line, "")
		title = bulletRe.ReplaceAllString(title, "")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}

		key := strings.ToLower(title)
		if seen[key] {
			continue
		}
		seen[key] = true

		titles = append(titles, title)
		if len(titles) == MaxBatch {
			break
		}
	}

	return titles
}
