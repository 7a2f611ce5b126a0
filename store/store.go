// Package store owns the durable persistence surface and the entity
// repositories built on top of it.
// File: store/store.go
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go-bet-tips/logger"
)

// ------------------- named slots -------------------

// One logical slot per entity kind. Each slot holds the JSON serialization
// of the whole collection (or record) and is always replaced wholesale.
const (
	SlotUsers       = "allUsers"
	SlotSession     = "currentUser"
	SlotSettings    = "siteSettings"
	SlotPredictions = "predictions"
	SlotComments    = "allComments"
)

// ------------------- durable store adapter -------------------

// Persister is the narrow persistence contract the repositories depend on.
type Persister interface {
	Load(slot string, dst interface{}) bool
	Save(slot string, v interface{})
}

// FileStore keeps each slot as a JSON file under a data directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(slot string) string {
	return filepath.Join(fs.dir, slot+".json")
}

// Load reads a slot into dst. It fails soft: a missing file, an unreadable
// file or a corrupt payload all leave dst untouched and return false, so the
// caller's default stands. Decode problems are logged, never surfaced.
func (fs *FileStore) Load(slot string, dst interface{}) bool {
	data, err := os.ReadFile(fs.path(slot))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn.Printf("Load: cannot read slot %q: %v", slot, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Warn.Printf("Load: corrupt payload in slot %q, falling back to defaults: %v", slot, err)
		return false
	}
	return true
}

// Save serializes v and replaces the slot. Writes are fire-and-forget:
// a failure is logged and the in-memory state stays authoritative.
func (fs *FileStore) Save(slot string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Error.Printf("Save: cannot marshal slot %q: %v", slot, err)
		return
	}
	if err := os.WriteFile(fs.path(slot), data, 0600); err != nil {
		logger.Error.Printf("Save: cannot write slot %q: %v", slot, err)
	}
}

// Delete removes a slot entirely. Used when a session snapshot is cleared.
func (fs *FileStore) Delete(slot string) {
	if err := os.Remove(fs.path(slot)); err != nil && !os.IsNotExist(err) {
		logger.Warn.Printf("Delete: cannot remove slot %q: %v", slot, err)
	}
}
