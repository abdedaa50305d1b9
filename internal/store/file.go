package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// File is a Mirror persisted as a single JSON object on disk.  The whole map
// is rewritten on every mutation, matching the mirror's last-writer-wins
// policy.  Write errors are logged, not returned; a read-only disk degrades
// the mirror to in-memory behavior.
type File struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFile opens (or creates) the mirror at path.  A missing file starts
// empty; a corrupt file is discarded with a log line rather than failing.
func NewFile(path string) (*File, error) {
	f := &File{path: path, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		log.Printf("mirror: %s is corrupt, starting empty: %v", path, err)
		f.data = make(map[string]string)
	}
	return f, nil
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *File) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.flushLocked()
}

func (f *File) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	f.flushLocked()
}

func (f *File) flushLocked() {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		log.Printf("mirror: marshal failed: %v", err)
		return
	}
	if dir := filepath.Dir(f.path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		log.Printf("mirror: write %s failed: %v", f.path, err)
	}
}
