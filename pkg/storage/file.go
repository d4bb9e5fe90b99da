package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/uhrzeit/pkg/errors"
)

// File stores each key as a JSON file in a directory. It is the default
// backend of the CLI.
type File struct {
	mu  sync.RWMutex
	dir string
}

// NewFile creates a file backend in dir. The directory will be created if
// it doesn't exist. An empty dir defaults to ~/.local/share/uhrzeit.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageUnavailable, err, "create storage dir")
	}
	return &File{dir: dir}, nil
}

// DefaultDir returns $XDG_DATA_HOME/uhrzeit, or ~/.local/share/uhrzeit.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "uhrzeit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorageUnavailable, err, "get home dir")
	}
	return filepath.Join(home, ".local", "share", "uhrzeit"), nil
}

// fileEntry wraps stored data with its key so Keys can list them.
type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get implements Backend.
func (f *File) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entry, ok, err := readEntry(f.path(key))
	if err != nil || !ok {
		return nil, false, err
	}
	return entry.Data, true, nil
}

// Set implements Backend.
func (f *File) Set(ctx context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.Marshal(fileEntry{Key: key, Data: data, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	path := f.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(errors.ErrCodeStorageUnavailable, err, "create storage dir")
	}

	// write-then-rename keeps readers from seeing partial entries
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeStorageUnavailable, err, "write %s", key)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeStorageUnavailable, err, "write %s", key)
	}
	return nil
}

// Delete implements Backend.
func (f *File) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorageUnavailable, err, "delete %s", key)
	}
	return nil
}

// Keys implements Backend.
func (f *File) Keys(ctx context.Context, prefix string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var keys []string
	err := filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		entry, ok, err := readEntry(path)
		if err != nil || !ok {
			return err
		}
		if strings.HasPrefix(entry.Key, prefix) {
			keys = append(keys, entry.Key)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageUnavailable, err, "list keys")
	}
	sort.Strings(keys)
	return keys, nil
}

// Close does nothing for the file backend.
func (f *File) Close() error {
	return nil
}

// Dir returns the storage directory.
func (f *File) Dir() string { return f.dir }

// path converts a key to a file path. The first two hash characters name a
// subdirectory to keep directories small.
func (f *File) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(f.dir, hash[:2], hash[2:]+".json")
}

func readEntry(path string) (fileEntry, bool, error) {
	var entry fileEntry
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return entry, false, nil
	}
	if err != nil {
		return entry, false, errors.Wrap(errors.ErrCodeStorageUnavailable, err, "read %s", filepath.Base(path))
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		// corrupt entry - treat as missing
		_ = os.Remove(path)
		return entry, false, nil
	}
	return entry, true, nil
}

// Hash computes a SHA-256 hash of the input data as a 64-character hex
// string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Ensure File implements Backend.
var _ Backend = (*File)(nil)
