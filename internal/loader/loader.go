// Package loader reads raw document bytes into plain text.
// It is the "text producer" boundary: each supported format has a reader
// that extracts text, and unrecognized extensions or blank results are
// reported with the shared error taxonomy.
package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"dossier-ai/internal/service"
)

// Supported reports whether the filename has a readable extension.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".csv", ".html", ".htm", ".md":
		return true
	}
	return false
}

// Read extracts plain text from the given file content based on its extension.
// Supported formats: .txt, .csv, .html, .htm, .md.
// Returns service.ErrUnsupportedFormat for unrecognized extensions and
// service.ErrEmptyContent when the file yields no usable text.
func Read(filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)
	switch ext {
	case ".txt":
		text, err = readText(content)
	case ".csv":
		text, err = readCSV(content)
	case ".html", ".htm":
		text, err = readHTML(content)
	case ".md":
		text, err = readMarkdown(content)
	default:
		return "", fmt.Errorf("%w: %s (supported: txt, csv, html, md)", service.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", filename, service.ErrEmptyContent)
	}
	return text, nil
}

// readText decodes the content as UTF-8, replacing invalid sequences.
func readText(content []byte) (string, error) {
	if utf8.Valid(content) {
		return string(content), nil
	}
	return strings.ToValidUTF8(string(content), ""), nil
}

// readCSV renders tabular content as structured text, one labeled block per
// row, so column context survives chunking.
func readCSV(content []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1 // Tolerate ragged rows

	header, err := r.Read()
	if err == io.EOF {
		return "", service.ErrEmptyContent
	}
	if err != nil {
		return "", fmt.Errorf("failed to parse CSV header: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Colonnes: " + strings.Join(header, ", ") + "\n\n")

	row := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed rows, keep the rest
			continue
		}
		row++
		sb.WriteString(fmt.Sprintf("Ligne %d:\n", row))
		for i, value := range record {
			if i >= len(header) || strings.TrimSpace(value) == "" {
				continue
			}
			sb.WriteString(fmt.Sprintf("  - %s: %s\n", header[i], value))
		}
		sb.WriteString("\n")
	}

	if row == 0 {
		return "", service.ErrEmptyContent
	}
	return sb.String(), nil
}
