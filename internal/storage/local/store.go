package local

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/duke-git/lancet/v2/fileutil"
)

// Store manages the directory that completed downloads are served from.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create downloads directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the serving directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Resolve maps a client-supplied filename to a path inside the serving
// directory. Names containing path separators, traversal segments or a
// leading dot are rejected.
func (s *Store) Resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	return filepath.Join(s.dir, filename), nil
}

// Exists reports whether filename is present in the serving directory.
func (s *Store) Exists(filename string) bool {
	path, err := s.Resolve(filename)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Publish moves a completed file from its scratch location into the serving
// directory and returns the published filename. Rename keeps partially
// written files from ever being visible through the serving directory; a
// staged copy handles scratch roots on a different device.
func (s *Store) Publish(srcPath string) (string, error) {
	filename := filepath.Base(srcPath)
	dest, err := s.Resolve(filename)
	if err != nil {
		return "", err
	}

	if err := os.Rename(srcPath, dest); err != nil {
		part := dest + ".part"
		if copyErr := fileutil.CopyFile(srcPath, part); copyErr != nil {
			os.Remove(part)
			return "", fmt.Errorf("failed to publish %s: %w", filename, err)
		}
		if err := os.Rename(part, dest); err != nil {
			os.Remove(part)
			return "", fmt.Errorf("failed to publish %s: %w", filename, err)
		}
		os.Remove(srcPath)
	}

	return filename, nil
}
