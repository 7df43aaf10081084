// Package output persists unpacked images.
//
// Writes are all-or-nothing: data goes to a temporary file next to the
// destination, is synced, and is renamed into place. A failed write leaves
// neither the destination nor the temporary file behind.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Pending is a synced temporary file waiting to be renamed over its
// destination. Exactly one of Commit or Discard should be called.
type Pending struct {
	path string
	tmp  string
	done bool
}

// Stage writes data to a temporary file beside path and syncs it. The
// destination is untouched until Commit.
func Stage(path string, data []byte, perm os.FileMode) (*Pending, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("output path is empty")
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, err
	}
	tmp := f.Name()

	// If anything below fails, drop the temp file.
	ok := false
	defer func() {
		if !ok {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return nil, err
	}
	if err := f.Chmod(perm); err != nil {
		return nil, err
	}
	if err := f.Sync(); err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	ok = true
	return &Pending{path: path, tmp: tmp}, nil
}

// Path returns the destination.
func (p *Pending) Path() string {
	return p.path
}

// Commit renames the temporary file over the destination and syncs the
// directory.
func (p *Pending) Commit() error {
	if p.done {
		return errors.New("pending write already finished")
	}
	p.done = true
	if err := os.Rename(p.tmp, p.path); err != nil {
		_ = os.Remove(p.tmp)
		return err
	}
	return syncDir(filepath.Dir(p.path))
}

// Discard removes the temporary file. It is a no-op after Commit.
func (p *Pending) Discard() {
	if p.done {
		return
	}
	p.done = true
	_ = os.Remove(p.tmp)
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	p, err := Stage(path, data, perm)
	if err != nil {
		return err
	}
	return p.Commit()
}
