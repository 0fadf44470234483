package indexer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"dossier-ai/internal/vectorstore"
)

// Rune prefixes of the text inspected by each extractor.
const (
	docTypeScanRunes = 1000
	personScanRunes  = 2000
	dateScanRunes    = 500
)

// DefaultDocType tags chunks that match no document-type pattern.
const DefaultDocType = "autre"

// docTypePatterns map French keywords to document-type tags. Order matters:
// the first matching tag wins, on the filename first and the content second.
var docTypePatterns = []struct {
	tag     string
	pattern *regexp.Regexp
}{
	{"contrat", regexp.MustCompile(`contrat|accord|convention|engagement`)},
	{"note", regexp.MustCompile(`note|mémo|memorandum`)},
	{"jurisprudence", regexp.MustCompile(`jurisprudence|arrêt|jugement|décision|cour`)},
	{"litige", regexp.MustCompile(`litige|contentieux|procédure|assignation|mise\s+en\s+demeure`)},
	{"facture", regexp.MustCompile(`facture|devis|honoraires`)},
	{"consultation", regexp.MustCompile(`consultation|avis\s+juridique|conseil`)},
	{"correspondance", regexp.MustCompile(`courrier|lettre|email|correspondance`)},
}

// namePart matches a capitalized French name, possibly several words.
const namePart = `[A-ZÉÈÊË][a-zéèêëàâôûç]+(?:\s+[A-ZÉÈÊË][a-zéèêëàâôûç]+)*`

// contentPersonPatterns locate a person name in document text. Tried in
// order; the first capture of at least 3 runes wins.
var contentPersonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Client\s*:\s*(` + namePart + `)`),
	regexp.MustCompile(`M\.\s+(` + namePart + `)`),
	regexp.MustCompile(`Mme\s+(` + namePart + `)`),
	regexp.MustCompile(`Monsieur\s+(` + namePart + `)`),
	regexp.MustCompile(`Madame\s+(` + namePart + `)`),
	regexp.MustCompile(`Entre\s*:\s*.*?(` + namePart + `)`),
	regexp.MustCompile(`(?:contrat|accord).*?(?:de|avec)\s+(` + namePart + `)`),
}

// filenameSkipWords are domain keywords that never form part of a person
// name when tokenizing a filename.
var filenameSkipWords = map[string]bool{
	"contrat": true, "note": true, "facture": true, "interne": true,
	"projet": true, "accord": true, "convention": true, "courrier": true,
	"lettre": true, "email": true, "memo": true, "memorandum": true,
	"litige": true, "procedure": true, "commercial": true, "partenaire": true,
	"partenariat": true, "impaye": true, "client": true, "clientz": true,
	"droit": true, "societes": true, "societe": true, "fiscal": true,
	"fiscalite": true, "consultation": true, "juridique": true,
	"jurisprudence": true, "historique": true, "contentieux": true,
	"demeure": true, "mise": true,
}

var (
	filenameExt       = regexp.MustCompile(`\.(txt|csv|html|htm|md|pdf)$`)
	filenameTimestamp = regexp.MustCompile(`\d{8}_\d{6}_?`)
	filenameSplit     = regexp.MustCompile(`[_\-\s]+`)
	datePattern       = regexp.MustCompile(`\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}`)
	multiSpace        = regexp.MustCompile(`\s+`)
)

// ExtractMetadata derives the full metadata record for one chunk from its
// source filename and text. Extraction is pure and never fails: absent
// attributes stay empty and the type falls back to DefaultDocType.
func ExtractMetadata(source, chunkText string, chunkID int) vectorstore.ChunkMetadata {
	return vectorstore.ChunkMetadata{
		Source:      source,
		ChunkID:     chunkID,
		TypeDoc:     DetectDocType(source, chunkText),
		Personne:    ExtractPersonName(chunkText, source),
		Length:      utf8.RuneCountInString(chunkText),
		DateMention: firstDateMention(chunkText),
	}
}

// DetectDocType classifies a document by keyword patterns, checking the
// filename first and then the start of the text.
func DetectDocType(filename, text string) string {
	filenameLower := strings.ToLower(filename)
	for _, p := range docTypePatterns {
		if p.pattern.MatchString(filenameLower) {
			return p.tag
		}
	}

	textSample := strings.ToLower(runePrefix(text, docTypeScanRunes))
	for _, p := range docTypePatterns {
		if p.pattern.MatchString(textSample) {
			return p.tag
		}
	}
	return DefaultDocType
}

// ExtractPersonName finds a person name in the filename or document text.
// Filename tokens are tried first (contrat_jean_dupont.txt yields
// "Jean Dupont"); content patterns are the fallback. Returns "" when no
// name is found.
func ExtractPersonName(text, filename string) string {
	if name := personFromFilename(filename); name != "" {
		return name
	}
	return personFromContent(text)
}

// NormalizePersonName cleans a name for filtering: collapsed spaces, Title Case.
func NormalizePersonName(name string) string {
	name = strings.TrimSpace(multiSpace.ReplaceAllString(name, " "))
	if name == "" {
		return ""
	}
	words := strings.Split(name, " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func personFromFilename(filename string) string {
	clean := strings.ToLower(filename)
	clean = filenameExt.ReplaceAllString(clean, "")
	clean = filenameTimestamp.ReplaceAllString(clean, "")

	words := filenameSplit.Split(clean, -1)
	nameWords := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" || filenameSkipWords[w] || utf8.RuneCountInString(w) < 2 {
			continue
		}
		nameWords = append(nameWords, w)
	}

	// Two or more remaining tokens are taken as first and last name.
	if len(nameWords) < 2 {
		return ""
	}
	return titleWord(nameWords[0]) + " " + titleWord(nameWords[1])
}

func personFromContent(text string) string {
	sample := runePrefix(text, personScanRunes)
	for _, pattern := range contentPersonPatterns {
		match := pattern.FindStringSubmatch(sample)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		if utf8.RuneCountInString(name) >= 3 {
			return name
		}
	}
	return ""
}

// firstDateMention returns the first date-like token near the start of the
// text, or "" when there is none.
func firstDateMention(text string) string {
	return datePattern.FindString(runePrefix(text, dateScanRunes))
}

func runePrefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
