package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/conf-verify/internal/conference"
)

// Results is the persisted output of a single verification run.
type Results struct {
	GeneratedAt string                   `json:"generated_at"`
	Input       string                   `json:"input"`
	Report      string                   `json:"report"`
	Conferences []*conference.Conference `json:"conferences"`
}

// Storage writes run results to a fixed file path.
type Storage struct {
	path string
}

// New creates a Storage for the given file path. A leading ~/ expands to the
// home directory and the parent directory is created if needed.
func New(path string) (*Storage, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating results directory: %w", err)
		}
	}

	return &Storage{path: path}, nil
}

// SaveResults writes the results to disk, stamping GeneratedAt.
func (s *Storage) SaveResults(res *Results) error {
	res.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	return nil
}
