// Package storage persists the schedule state in a durable key-value slot
// and converts it to and from the portable backup file.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"weekplan/internal/fsutil"
)

// ErrInvalidKey is returned for keys that cannot name a file.
var ErrInvalidKey = errors.New("invalid slot key")

// Slot is a durable string key-value store.
type Slot interface {
	// Get returns the stored value. ok is false when the key has never been set.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// backupSlot is implemented by slots that keep the previous value of a key.
type backupSlot interface {
	GetBackup(key string) (value string, ok bool, err error)
}

// quarantiner is implemented by slots that can move an unusable value out of
// the way so it does not overwrite the backup on the next Set.
type quarantiner interface {
	Quarantine(key string) (string, error)
}

// FileSlot keeps each key in <dir>/<key>.json.
type FileSlot struct {
	dir string
	now func() time.Time
}

// NewFileSlot creates dir if needed and returns a slot rooted there.
func NewFileSlot(dir string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, fsutil.DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileSlot{dir: dir, now: time.Now}, nil
}

// Dir returns the slot's directory.
func (s *FileSlot) Dir() string {
	return s.dir
}

// Path returns the file that backs key.
func (s *FileSlot) Path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileSlot) Get(key string) (string, bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return "", false, err
	}
	data, ok, err := fsutil.ReadIfExists(path)
	if err != nil || !ok {
		return "", false, err
	}
	return string(data), true, nil
}

// Set writes value atomically, first copying the previous value to a .bak
// file next to it.
func (s *FileSlot) Set(key, value string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	fsutil.BestEffortBackup(path, fsutil.FilePerm)
	if err := fsutil.WriteFileAtomic(path, []byte(value), fsutil.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// GetBackup returns the value that was current before the last Set.
func (s *FileSlot) GetBackup(key string) (string, bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return "", false, err
	}
	data, ok, err := fsutil.ReadIfExists(path + ".bak")
	if err != nil || !ok || len(bytes.TrimSpace(data)) == 0 {
		return "", false, err
	}
	return string(data), true, nil
}

// Quarantine renames the file behind key to <file>.corrupt.<timestamp> and
// returns the new path.
func (s *FileSlot) Quarantine(key string) (string, error) {
	path, err := s.Path(key)
	if err != nil {
		return "", err
	}
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, s.now().Format("20060102-150405"))
	if err := os.Rename(path, corruptPath); err != nil {
		return "", fmt.Errorf("quarantine %s: %w", filepath.Base(path), err)
	}
	return corruptPath, nil
}

// MemorySlot is an in-process Slot.
type MemorySlot struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string]string)}
}

func (s *MemorySlot) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemorySlot) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
