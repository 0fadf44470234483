// Package docstore manages the on-disk collection of raw documents.
// Files are the durable source of truth; the vector index is derived from
// them and reconciled separately.
package docstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when a name does not refer to a stored document.
var ErrNotFound = errors.New("document not found")

// timestampPrefix matches the "YYYYMMDD_HHMMSS_" prefix stamped on uploads,
// with the optional collision counter inserted by Save.
var timestampPrefix = regexp.MustCompile(`^\d{8}_\d{6}(?:_\d+)?_`)

// Store provides access to the raw document directory.
type Store struct {
	dir string
	now func() time.Time
}

// New creates a Store rooted at the given directory.
func New(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// List returns the names of all documents in the store, sorted.
// Dotfiles and subdirectories are ignored.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Save writes uploaded content under a timestamped name derived from the
// original filename, and returns the stored name. The timestamp prefix keeps
// names unique and chronologically ordered; when the same filename arrives
// twice within one second, a counter is inserted after the timestamp instead
// of overwriting the earlier upload.
func (s *Store) Save(originalName string, content []byte) (string, error) {
	base := filepath.Base(originalName)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid document name: %q", originalName)
	}

	stamp := s.now().Format("20060102_150405")
	name := stamp + "_" + base
	for i := 1; ; i++ {
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			if os.IsExist(err) {
				name = fmt.Sprintf("%s_%d_%s", stamp, i, base)
				continue
			}
			return "", fmt.Errorf("failed to write document %s: %w", name, err)
		}
		if _, err := f.Write(content); err != nil {
			_ = f.Close()
			return "", fmt.Errorf("failed to write document %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to write document %s: %w", name, err)
		}
		return name, nil
	}
}

// Delete removes a document from the store. The index keeps its chunks until
// the next rebuild; the reconciler reports them as orphaned in the meantime.
func (s *Store) Delete(name string) error {
	base := filepath.Base(name)
	if base != name || strings.HasPrefix(name, ".") {
		// Names with path separators or a leading dot can never refer to a
		// stored document.
		return fmt.Errorf("invalid document name %q: %w", name, ErrNotFound)
	}

	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return fmt.Errorf("failed to delete document %s: %w", name, err)
	}
	return nil
}

// ReadFile returns the raw bytes of a stored document.
func (s *Store) ReadFile(name string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", name, err)
	}
	return content, nil
}

// StripTimestamp removes the upload timestamp prefix from a stored name.
func StripTimestamp(name string) string {
	return timestampPrefix.ReplaceAllString(name, "")
}
