package indexer

import (
	"regexp"
	"strings"
)

var (
	tagPattern       = regexp.MustCompile(`<[^>]+>`)
	horizontalSpaces = regexp.MustCompile(`[ \t]+`)
)

// CleanText normalizes extracted document text before chunking. Residual
// markup tags are stripped, runs of spaces and tabs collapse to one space,
// consecutive duplicate lines collapse to one, and blank-line runs collapse
// to a single blank line so paragraph boundaries survive for the splitter.
func CleanText(text string) string {
	text = tagPattern.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	prev := ""
	prevBlank := false
	for _, line := range lines {
		line = strings.TrimSpace(horizontalSpaces.ReplaceAllString(line, " "))
		if line == "" {
			if !prevBlank && len(cleaned) > 0 {
				cleaned = append(cleaned, "")
			}
			prevBlank = true
			continue
		}
		if line == prev {
			continue
		}
		cleaned = append(cleaned, line)
		prev = line
		prevBlank = false
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
