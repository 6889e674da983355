// Package storage persists named JSON values under a data directory.
//
// Values are stored as base64-wrapped JSON. The wrapping keeps payloads from
// being human-readable at rest but is NOT encryption: anyone with the file and
// the encoding scheme can recover the plaintext. This mirrors the obfuscation
// the vault has always used and is documented as a known limitation.
package storage

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const fileExt = ".dat"

// Store is a file-backed key-value store. Each key maps to one file.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: directory is required")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	return &Store{
		dir: dir,
	}, nil
}

func (s *Store) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}

	return filepath.Join(s.dir, key+fileExt), nil
}

// Save serializes value to JSON, encodes it and writes it under key. The write
// goes through a temp file and rename so a crash never leaves a torn payload.
func (s *Store) Save(key string, value any) error {
	path, err := s.path(key)

	if err != nil {
		return err
	}

	data, err := json.Marshal(value)

	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(data)

	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, []byte(encoded), 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// Load decodes the value stored under key into out. It reports whether a
// usable value was found; a missing, undecodable or unparsable payload yields
// (false, nil) so callers can fall back to a default.
func (s *Store) Load(key string, out any) (bool, error) {
	path, err := s.path(key)

	if err != nil {
		return false, err
	}

	raw, err := os.ReadFile(path)

	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))

	if err != nil {
		return false, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, nil
	}

	return true, nil
}

// Read returns the value stored under key, or def when the key is absent or
// its payload is corrupt.
func Read[T any](s *Store, key string, def T) T {
	var value T

	ok, err := s.Load(key, &value)

	if err != nil || !ok {
		return def
	}

	return value
}

// ClearAll removes every value this store has written.
func (s *Store) ClearAll() error {
	entries, err := os.ReadDir(s.dir)

	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}
