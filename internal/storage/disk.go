// Package storage stores uploaded files on local disk and serves them
// back by URL path.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Disk writes blobs under a root directory. Files are named by a fresh
// UUID plus the original extension, so names never collide and never
// leak user input into the filesystem.
type Disk struct {
	root      string
	publicURL string
}

// NewDisk creates the store and its root directory.
func NewDisk(root, publicURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &Disk{root: root, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Root returns the directory files are written to, for the static file
// server.
func (d *Disk) Root() string {
	return d.root
}

// Save writes a blob and returns its public URL.
func (d *Disk) Save(data []byte, ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		ext = "bin"
	}

	name := uuid.New().String() + "." + ext
	if err := os.WriteFile(filepath.Join(d.root, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return d.publicURL + "/" + name, nil
}

// Delete removes a previously saved blob by its public URL. Unknown
// URLs are ignored.
func (d *Disk) Delete(url string) error {
	name := filepath.Base(url)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(d.root, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

// CleanupOrphans removes files past the retention window that are not
// in the keep set (URLs still referenced by a profile row). Called from
// the nightly job.
func (d *Disk) CleanupOrphans(age time.Duration, keep map[string]bool) (int, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return 0, fmt.Errorf("failed to read uploads dir: %w", err)
	}

	cutoff := time.Now().Add(-age)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if keep[e.Name()] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(d.root, e.Name())); err != nil {
			log.WithError(err).WithField("file", e.Name()).Warn("Failed to remove stale upload")
			continue
		}
		removed++
	}
	return removed, nil
}
