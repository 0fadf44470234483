package rag

import (
	"regexp"
	"strconv"
	"strings"
)

// sourcesMarker matches the citation marker the model is instructed to emit,
// e.g. "[Sources: 1, 3]" or "[Source: 2]", case insensitive.
var sourcesMarker = regexp.MustCompile(`(?i)\[Sources?:\s*([\d,\s]+)\]`)

// ExtractUsedSources maps the citation marker in a generated answer back to
// the retrieved passages and strips the marker from the visible text.
//
// Indices are 1-based, out-of-range ones are silently dropped and repeats
// keep their first appearance. Without a marker, or when every index drops,
// all passages are considered used. The function never fails: malformed
// markers degrade, they do not error.
func ExtractUsedSources(answer string, passages []Passage) (string, []Passage) {
	match := sourcesMarker.FindStringSubmatch(answer)
	if match == nil {
		return answer, passages
	}

	seen := make(map[int]bool)
	used := make([]Passage, 0, len(passages))
	for _, token := range strings.Split(match[1], ",") {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || n < 1 || n > len(passages) || seen[n] {
			continue
		}
		seen[n] = true
		used = append(used, passages[n-1])
	}
	if len(used) == 0 {
		used = passages
	}

	clean := strings.TrimSpace(sourcesMarker.ReplaceAllString(answer, ""))
	return clean, used
}
