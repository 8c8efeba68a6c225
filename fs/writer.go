package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docmirror"
)

// Ensure Writer implements docmirror.PageWriter at compile time.
var _ docmirror.PageWriter = (*Writer)(nil)

// Writer persists pages beneath a single output directory. Each write goes
// to a temporary file in the destination directory and is renamed into
// place, so readers never observe partial pages.
type Writer struct {
	dir          string
	skipExisting bool

	mu      sync.Mutex
	written map[string]uint64 // relPath -> content hash, this run only
}

// NewWriter creates a Writer rooted at dir. When skipExisting is set,
// destinations that already exist on disk are left untouched.
func NewWriter(dir string, skipExisting bool) *Writer {
	return &Writer{
		dir:          dir,
		skipExisting: skipExisting,
		written:      make(map[string]uint64),
	}
}

// Persist writes body to relPath under the output directory.
//
// With skip-existing enabled, a destination present before this run is
// skipped without any write I/O. A second write to the same path within one
// run replaces the first and reports OutcomeOverwritten, unless the content
// is identical.
func (w *Writer) Persist(ctx context.Context, relPath string, body []byte) (docmirror.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cleaned := filepath.Clean(relPath)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return 0, docmirror.Errorf(docmirror.EFORBIDDEN, "path %q escapes the output directory", relPath)
	}

	hash := xxhash.Sum64(body)

	w.mu.Lock()
	prev, writtenThisRun := w.written[cleaned]
	w.written[cleaned] = hash
	w.mu.Unlock()

	fullPath := filepath.Join(w.dir, cleaned)

	if w.skipExisting && !writtenThisRun {
		if _, err := os.Stat(fullPath); err == nil {
			w.mu.Lock()
			delete(w.written, cleaned)
			w.mu.Unlock()
			return docmirror.OutcomeSkipped, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return 0, docmirror.Errorf(docmirror.EINTERNAL, "create directory for %s: %v", cleaned, err)
	}

	if err := writeAtomic(fullPath, body); err != nil {
		return 0, docmirror.Errorf(docmirror.EINTERNAL, "write %s: %v", cleaned, err)
	}

	if writtenThisRun && prev != hash {
		return docmirror.OutcomeOverwritten, nil
	}
	return docmirror.OutcomeWritten, nil
}

// writeAtomic writes body to a temporary file next to the destination and
// renames it into place.
func writeAtomic(fullPath string, body []byte) error {
	dir := filepath.Dir(fullPath)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
