// Package queryparse extracts retrieval filters from a user question:
// the document type being asked about and the person it concerns. Both are
// best-effort; absence of a match is a normal outcome, never an error.
package queryparse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"dossier-ai/internal/indexer"
)

// ParsedQuery is the result of parsing one user question.
type ParsedQuery struct {
	Clean   string // The question itself, trimmed
	Person  string // Detected person name, "" when none
	DocType string // Detected document type tag, "" when none
}

// docTypeKeywords maps document-type tags to the query keywords that select
// them. Order matters: the first tag with any keyword appearing as a
// substring of the lower-cased query wins.
var docTypeKeywords = []struct {
	tag      string
	keywords []string
}{
	{"contrat", []string{"contrat", "accord", "convention"}},
	{"note", []string{"note", "note interne", "mémo", "memorandum"}},
	{"jurisprudence", []string{"jurisprudence", "arrêt", "jugement", "décision"}},
	{"litige", []string{"litige", "contentieux", "procédure", "mise en demeure"}},
	{"facture", []string{"facture", "devis", "honoraire"}},
	{"consultation", []string{"consultation", "avis juridique", "conseil"}},
	{"correspondance", []string{"courrier", "lettre", "email"}},
}

const namePart = `[A-ZÉÈÊË][a-zéèêëàâôûç]+(?:\s+[A-ZÉÈÊË][a-zéèêëàâôûç]+)*`

// Anchored patterns tie the name to a phrase shape and are matched case
// insensitively; their capture is normalized to Title Case.
var anchoredPersonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:contrat|accord|document|note|facture|courrier).*?(?:de|concernant|pour|avec)\s+(` + namePart + `)`),
	regexp.MustCompile(`(?i)(?:M\.|Monsieur|Mme|Madame)\s+(` + namePart + `)`),
	regexp.MustCompile(`(?i)(?:client|partie|personne)\s+(` + namePart + `)`),
}

// capitalizedRun is the generic fallback: two or three consecutive
// capitalized words anywhere in the query, case sensitive.
var capitalizedRun = regexp.MustCompile(`\b([A-ZÉÈÊË][a-zéèêëàâôûç]+(?:\s+[A-ZÉÈÊË][a-zéèêëàâôûç]+){1,2})\b`)

// capitalizedNonNames are common capitalized query words that the generic
// fallback must not mistake for names.
var capitalizedNonNames = map[string]bool{
	"Monsieur": true, "Madame": true, "Client": true,
	"Contrat": true, "Document": true, "Note": true,
}

// personExtractor is one strategy for finding a person name in a query.
// Strategies run in priority order; the first non-empty result wins.
type personExtractor func(query string) string

var personExtractors = []personExtractor{
	extractAnchoredPerson,
	extractCapitalizedPerson,
}

// Parse extracts filters from a raw user question. The cleaned question is
// the trimmed input; filters are left empty when nothing matches.
func Parse(query string) ParsedQuery {
	return ParsedQuery{
		Clean:   strings.TrimSpace(query),
		Person:  ExtractPerson(query),
		DocType: DetectDocType(query),
	}
}

// DetectDocType returns the tag of the first document-type keyword found in
// the query, or "" when none matches.
func DetectDocType(query string) string {
	queryLower := strings.ToLower(query)
	for _, entry := range docTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(queryLower, keyword) {
				return entry.tag
			}
		}
	}
	return ""
}

// ExtractPerson runs the person extraction strategies in order and returns
// the first hit, or "" when no strategy matches.
func ExtractPerson(query string) string {
	for _, extract := range personExtractors {
		if name := extract(query); name != "" {
			return name
		}
	}
	return ""
}

func extractAnchoredPerson(query string) string {
	for _, pattern := range anchoredPersonPatterns {
		match := pattern.FindStringSubmatch(query)
		if match == nil {
			continue
		}
		return indexer.NormalizePersonName(match[1])
	}
	return ""
}

func extractCapitalizedPerson(query string) string {
	for _, match := range capitalizedRun.FindAllStringSubmatch(query, -1) {
		name := match[1]
		if capitalizedNonNames[name] || utf8.RuneCountInString(name) <= 3 {
			continue
		}
		return name
	}
	return ""
}
