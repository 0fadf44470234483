package indexer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// minChunkRunes is the floor below which a trimmed fragment carries too
// little content to be worth indexing.
const minChunkRunes = 50

// defaultSeparators are tried in order, coarsest first. The empty string is
// the terminal fallback: a hard character boundary when nothing else splits.
var defaultSeparators = []string{"\n\n", "\n", ". ", ", ", " ", ""}

// Chunk is one contiguous piece of a document produced by the splitter.
type Chunk struct {
	Index int    // Zero-based position within the document
	Text  string // Trimmed chunk text
}

// Chunker splits cleaned document text into overlapping chunks. Splitting is
// deterministic: the same text always yields the same chunks.
type Chunker struct {
	chunkSize  int
	overlap    int
	separators []string
}

// NewChunker creates a chunker with the given target size and overlap, both
// measured in runes. Overlap must be smaller than the chunk size.
func NewChunker(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be in [0, %d), got %d", chunkSize, overlap)
	}
	return &Chunker{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: defaultSeparators,
	}, nil
}

// Split breaks text into chunks of at most the configured size, preferring
// paragraph and sentence boundaries over hard cuts. Consecutive chunks share
// up to the configured overlap. Fragments shorter than minChunkRunes after
// trimming are dropped.
func (c *Chunker) Split(text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	pieces := c.splitText(text, c.separators)

	chunks := make([]Chunk, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if utf8.RuneCountInString(piece) < minChunkRunes {
			continue
		}
		chunks = append(chunks, Chunk{Index: len(chunks), Text: piece})
	}
	return chunks
}

// splitText recursively splits text using the first separator present in it,
// then re-splits oversized pieces with the remaining finer separators and
// merges small adjacent pieces back up to the chunk size.
func (c *Chunker) splitText(text string, separators []string) []string {
	separator := ""
	var remaining []string
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	splits := splitKeepSeparator(text, separator)

	var final []string
	var pending []string
	for _, piece := range splits {
		if utf8.RuneCountInString(piece) < c.chunkSize {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			final = append(final, c.mergeSplits(pending)...)
			pending = nil
		}
		if len(remaining) == 0 {
			final = append(final, piece)
		} else {
			final = append(final, c.splitText(piece, remaining)...)
		}
	}
	if len(pending) > 0 {
		final = append(final, c.mergeSplits(pending)...)
	}
	return final
}

// splitKeepSeparator splits text on sep, keeping the separator attached to
// the piece that follows it. The empty separator splits into single runes.
func splitKeepSeparator(text, sep string) []string {
	if sep == "" {
		runes := []rune(text)
		out := make([]string, len(runes))
		for i, r := range runes {
			out[i] = string(r)
		}
		return out
	}

	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		if i > 0 {
			part = sep + part
		}
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// mergeSplits greedily packs small pieces into chunks of at most chunkSize
// runes. When a chunk is emitted, trailing pieces totalling at most the
// overlap are carried into the next chunk.
func (c *Chunker) mergeSplits(splits []string) []string {
	var docs []string
	var current []string
	total := 0

	for _, split := range splits {
		n := utf8.RuneCountInString(split)
		if total+n > c.chunkSize && len(current) > 0 {
			doc := strings.TrimSpace(strings.Join(current, ""))
			if doc != "" {
				docs = append(docs, doc)
			}
			for total > c.overlap || (total+n > c.chunkSize && total > 0) {
				total -= utf8.RuneCountInString(current[0])
				current = current[1:]
			}
		}
		current = append(current, split)
		total += n
	}

	doc := strings.TrimSpace(strings.Join(current, ""))
	if doc != "" {
		docs = append(docs, doc)
	}
	return docs
}
