// Package storage persists JSON upload payloads under the uploads directory.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const uploadPrefix = "upload_"

// Store writes uploads as pretty-printed JSON files named
// upload_<YYYYMMDD_HHMMSS>_<4-hex-random>.json. The timestamp plus random
// suffix keeps concurrent writers on distinct filenames; two uploads in the
// same second with a colliding suffix remain a narrow, accepted race.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates the uploads directory if needed and returns the store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the uploads directory path.
func (s *Store) Dir() string { return s.dir }

// Save persists doc and returns the generated filename.
func (s *Store) Save(doc any) (string, error) {
	suffix := make([]byte, 2)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("upload suffix: %w", err)
	}
	name := fmt.Sprintf("%s%s_%s.json", uploadPrefix, s.now().Format("20060102_150405"), hex.EncodeToString(suffix))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode upload: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return name, nil
}

// Sweep deletes upload files whose modification time is older than maxAge
// and returns how many were removed.
func (s *Store) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read uploads dir: %w", err)
	}
	cutoff := s.now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), uploadPrefix) || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
